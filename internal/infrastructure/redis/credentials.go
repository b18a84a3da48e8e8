package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/go-verify-api/internal/domain"
)

// CredentialStore keeps one verification secret per subject and channel,
// relying on Redis key expiry for the TTL.
type CredentialStore struct {
	client goredis.Cmdable
}

func NewCredentialStore(client goredis.Cmdable) *CredentialStore {
	return &CredentialStore{client: client}
}

func (s *CredentialStore) Set(ctx context.Context, key domain.CredentialKey, secret string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("credential ttl must be positive, got %s", ttl)
	}
	if err := s.client.Set(ctx, key.String(), secret, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *CredentialStore) Get(ctx context.Context, key domain.CredentialKey) (string, error) {
	v, err := s.client.Get(ctx, key.String()).Result()
	if errors.Is(err, goredis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}
