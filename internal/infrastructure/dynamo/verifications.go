package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/go-verify-api/internal/domain"
)

// VerificationRepo stores one credential per subject and channel.
// PK: user_id, SK: channel ("email" | "mobile"). expires_at is the table TTL attribute.
type VerificationRepo struct {
	client    API
	tableName string
	now       func() time.Time
}

func NewVerificationRepo(client API, tableName string) *VerificationRepo {
	return &VerificationRepo{client: client, tableName: tableName, now: time.Now}
}

// Set overwrites the subject's credential on the key's channel.
func (r *VerificationRepo) Set(ctx context.Context, key domain.CredentialKey, secret string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("credential ttl must be positive, got %s", ttl)
	}
	now := r.now()
	item, err := attributevalue.MarshalMap(domain.Credential{
		UserID:    key.SubjectID,
		Channel:   key.Channel.Slug(),
		Secret:    secret,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put credential: %w", err)
	}
	return nil
}

// Get returns the live secret. DynamoDB deletes expired items lazily, so an
// item past expires_at is reported as not found.
func (r *VerificationRepo) Get(ctx context.Context, key domain.CredentialKey) (string, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            compositeKey(attrUserID, key.SubjectID, attrChannel, key.Channel.Slug()),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get credential: %w", err)
	}
	if out.Item == nil {
		return "", fmt.Errorf("credential %s: %w", key, domain.ErrNotFound)
	}
	var c domain.Credential
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return "", fmt.Errorf("unmarshal credential: %w", err)
	}
	if r.now().Unix() >= c.ExpiresAt {
		return "", fmt.Errorf("credential %s expired: %w", key, domain.ErrNotFound)
	}
	return c.Secret, nil
}
