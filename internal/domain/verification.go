package domain

import (
	"fmt"
	"strings"
	"time"
)

// Channel is the contact medium being verified.
type Channel string

const (
	ChannelEmail  Channel = "EMAIL"
	ChannelMobile Channel = "MOBILE"
)

// Slug is the lower-case channel name used in links and storage keys.
func (c Channel) Slug() string { return strings.ToLower(string(c)) }

// Method is the kind of secret issued on a channel.
type Method string

const (
	MethodToken Method = "TOKEN"
	MethodOTP   Method = "OTP"
)

// ParseMethod accepts a method name case-insensitively. An empty string
// returns the zero Method so callers can apply the channel default.
func ParseMethod(s string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case string(MethodToken):
		return MethodToken, nil
	case string(MethodOTP):
		return MethodOTP, nil
	default:
		return "", fmt.Errorf("unknown method %q: %w", s, ErrUnsupportedMethod)
	}
}

// DefaultMethod returns the method issued on c when the caller names none.
func (c Channel) DefaultMethod() Method {
	if c == ChannelMobile {
		return MethodOTP
	}
	return MethodToken
}

// Supports reports whether m can be issued on c.
// Email carries opaque tokens, mobile carries numeric codes.
func (c Channel) Supports(m Method) bool {
	switch c {
	case ChannelEmail:
		return m == MethodToken
	case ChannelMobile:
		return m == MethodOTP
	}
	return false
}

// CredentialKey addresses the single live credential of a subject on a channel.
type CredentialKey struct {
	SubjectID string
	Channel   Channel
}

func (k CredentialKey) String() string {
	return "verification:" + k.Channel.Slug() + ":" + k.SubjectID
}

// Credential is a stored verification secret.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type Credential struct {
	UserID    string `json:"user_id" dynamodbav:"user_id"`
	Channel   string `json:"channel" dynamodbav:"channel"` // "email" | "mobile"
	Secret    string `json:"secret" dynamodbav:"secret"`
	IssuedAt  int64  `json:"issued_at" dynamodbav:"issued_at"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// IssueRequest names the subject to issue for: by id, or by the channel
// address (email or mobile number). ID takes priority when both are set.
type IssueRequest struct {
	ID      string
	Address string
	Method  Method
}

// DeliveryOutcome reports whether a delivery request was handed to the bus.
// Cause is nil when Delivered is true.
type DeliveryOutcome struct {
	Delivered bool
	Cause     error
}

// OTPIssue is returned synchronously by mobile issuance.
type OTPIssue struct {
	Code      string
	ExpiresAt time.Time
	Outcome   DeliveryOutcome
}

// ValidateRequest presents Secret on behalf of an already authenticated subject.
type ValidateRequest struct {
	SubjectID string
	Method    Method
	Secret    string
}
