package verification

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/go-verify-api/internal/domain"
)

type mockIdentities struct{ mock.Mock }

func (m *mockIdentities) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockIdentities) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockIdentities) GetByMobile(ctx context.Context, mobileNo string) (*domain.User, error) {
	args := m.Called(ctx, mobileNo)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockStore struct{ mock.Mock }

func (m *mockStore) Set(ctx context.Context, key domain.CredentialKey, secret string, ttl time.Duration) error {
	return m.Called(ctx, key, secret, ttl).Error(0)
}
func (m *mockStore) Get(ctx context.Context, key domain.CredentialKey) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// recordingBus captures published payloads and fails when err is set.
type recordingBus struct {
	mu       sync.Mutex
	err      error
	messages []published
}

type published struct {
	topic   string
	payload []byte
}

func (b *recordingBus) Publish(_ context.Context, topic string, payload []byte) error {
	if b.err != nil {
		return b.err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, published{topic: topic, payload: payload})
	return nil
}
