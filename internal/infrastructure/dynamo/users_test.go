package dynamo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-verify-api/internal/domain"
)

func seededUsers(t *testing.T) *UserRepo {
	t.Helper()
	repo := NewUserRepo(newFakeAPI(), "users")
	require.NoError(t, repo.Put(context.Background(), &domain.User{
		UserID: "u1", Email: "alice@example.com", MobileNo: "+15550100", FirstName: "Alice",
	}))
	return repo
}

func TestUserRepo_Get(t *testing.T) {
	repo := seededUsers(t)

	u, err := repo.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "Alice", u.FirstName)

	_, err = repo.Get(context.Background(), "u2")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserRepo_GetByEmail(t *testing.T) {
	repo := seededUsers(t)

	u, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.UserID)

	_, err = repo.GetByEmail(context.Background(), "bob@example.com")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserRepo_GetByMobile(t *testing.T) {
	repo := seededUsers(t)

	u, err := repo.GetByMobile(context.Background(), "+15550100")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.UserID)

	_, err = repo.GetByMobile(context.Background(), "+15550199")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserRepo_BackendError(t *testing.T) {
	api := newFakeAPI()
	api.err = errors.New("throttled")
	repo := NewUserRepo(api, "users")

	_, err := repo.Get(context.Background(), "u1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}
