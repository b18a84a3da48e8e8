package verification

import (
	"context"
	"time"

	"github.com/go-verify-api/internal/domain"
)

// IdentityResolver maps an identifier or contact address to a subject.
// Implementations return an error wrapping domain.ErrNotFound when nothing matches.
type IdentityResolver interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByMobile(ctx context.Context, mobileNo string) (*domain.User, error)
}

// CredentialStore keeps one secret per key for a bounded time.
// Set overwrites any live value. Get returns an error wrapping domain.ErrNotFound
// when the key was never written or its TTL has elapsed.
type CredentialStore interface {
	Set(ctx context.Context, key domain.CredentialKey, secret string, ttl time.Duration) error
	Get(ctx context.Context, key domain.CredentialKey) (string, error)
}

// NotificationBus hands a serialized delivery request to a named topic.
// A nil error means the bus accepted the payload, not that it was delivered.
type NotificationBus interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}
