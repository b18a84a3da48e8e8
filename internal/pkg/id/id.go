package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a ULID string. Delivery requests carry one so the downstream
// sender can de-duplicate and correlate them; ULIDs sort by creation time.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
