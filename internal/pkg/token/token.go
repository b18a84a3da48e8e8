package token

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"
)

// NewEmailToken returns a random (version 4) UUID in its canonical 36-character form.
func NewEmailToken() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate email token: %w", err)
	}
	return u.String(), nil
}

// NewOTP returns a uniformly random integer in [0, 10^digits) in decimal.
// The result is not zero-padded, so it may be shorter than digits.
func NewOTP(digits int) (string, error) {
	if digits < 1 || digits > 18 {
		return "", fmt.Errorf("otp length %d out of range", digits)
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return strconv.FormatInt(n.Int64(), 10), nil
}
