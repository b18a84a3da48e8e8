package dynamo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-verify-api/internal/config"
	"github.com/go-verify-api/internal/domain"
	"github.com/go-verify-api/internal/logging"
)

func newTestVerificationRepo(api *fakeAPI, clock *time.Time) *VerificationRepo {
	repo := NewVerificationRepo(api, "user_verifications")
	repo.now = func() time.Time { return *clock }
	return repo
}

func TestVerificationRepo_SetGet(t *testing.T) {
	api := newFakeAPI()
	clock := time.Unix(1_700_000_000, 0)
	repo := newTestVerificationRepo(api, &clock)
	key := domain.CredentialKey{SubjectID: "u1", Channel: domain.ChannelEmail}

	require.NoError(t, repo.Set(context.Background(), key, "tok", 10*time.Minute))

	got, err := repo.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "tok", got)

	item := api.items["user_verifications"]["u1|email|"]
	require.NotNil(t, item)
	assert.Equal(t, &types.AttributeValueMemberN{Value: "1700000600"}, item["expires_at"])
}

func TestVerificationRepo_ExpiredItemIsNotFound(t *testing.T) {
	api := newFakeAPI()
	clock := time.Unix(1_700_000_000, 0)
	repo := newTestVerificationRepo(api, &clock)
	key := domain.CredentialKey{SubjectID: "u1", Channel: domain.ChannelMobile}

	require.NoError(t, repo.Set(context.Background(), key, "1234", time.Minute))
	clock = clock.Add(59 * time.Second)
	_, err := repo.Get(context.Background(), key)
	require.NoError(t, err)

	clock = clock.Add(time.Second)
	_, err = repo.Get(context.Background(), key)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestVerificationRepo_OverwriteAndChannels(t *testing.T) {
	api := newFakeAPI()
	clock := time.Unix(1_700_000_000, 0)
	repo := newTestVerificationRepo(api, &clock)
	ctx := context.Background()
	email := domain.CredentialKey{SubjectID: "u1", Channel: domain.ChannelEmail}
	mobile := domain.CredentialKey{SubjectID: "u1", Channel: domain.ChannelMobile}

	require.NoError(t, repo.Set(ctx, email, "first", time.Minute))
	require.NoError(t, repo.Set(ctx, email, "second", time.Minute))
	require.NoError(t, repo.Set(ctx, mobile, "42", time.Minute))

	got, err := repo.Get(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
	got, err = repo.Get(ctx, mobile)
	require.NoError(t, err)
	assert.Equal(t, "42", got)
}

func TestVerificationRepo_Missing(t *testing.T) {
	clock := time.Now()
	repo := newTestVerificationRepo(newFakeAPI(), &clock)
	_, err := repo.Get(context.Background(), domain.CredentialKey{SubjectID: "u9", Channel: domain.ChannelEmail})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestVerificationRepo_RejectsNonPositiveTTL(t *testing.T) {
	clock := time.Now()
	repo := newTestVerificationRepo(newFakeAPI(), &clock)
	err := repo.Set(context.Background(), domain.CredentialKey{SubjectID: "u1", Channel: domain.ChannelEmail}, "x", 0)
	assert.Error(t, err)
}

func TestBootstrap_CreatesTablesAndTTL(t *testing.T) {
	api := newFakeAPI()
	tables := config.DynamoTables{Users: "users", UserVerifications: "user_verifications"}

	Bootstrap(context.Background(), api, tables, logging.Discard())
	// Second run hits ResourceInUseException and must stay quiet.
	Bootstrap(context.Background(), api, tables, logging.Discard())

	assert.Equal(t, []string{"users", "user_verifications"}, api.created)
	assert.Equal(t, "expires_at", api.ttl["user_verifications"])
}
