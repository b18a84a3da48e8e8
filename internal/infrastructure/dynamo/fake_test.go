package dynamo

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeAPI is an in-memory DynamoDB covering the calls this package makes.
// Items are keyed by table and the string values of the key attributes.
type fakeAPI struct {
	mu      sync.Mutex
	keys    map[string][]string
	items   map[string]map[string]map[string]types.AttributeValue
	created []string
	ttl     map[string]string
	err     error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		keys: map[string][]string{
			"users":              {"user_id"},
			"user_verifications": {"user_id", "channel"},
		},
		items: map[string]map[string]map[string]types.AttributeValue{},
		ttl:   map[string]string{},
	}
}

func (f *fakeAPI) itemKey(table string, item map[string]types.AttributeValue) string {
	k := ""
	for _, name := range f.keys[table] {
		if s, ok := item[name].(*types.AttributeValueMemberS); ok {
			k += s.Value + "|"
		}
	}
	return k
}

func (f *fakeAPI) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.items[*in.TableName][f.itemKey(*in.TableName, in.Key)]}, nil
}

func (f *fakeAPI) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.items[*in.TableName] == nil {
		f.items[*in.TableName] = map[string]map[string]types.AttributeValue{}
	}
	f.items[*in.TableName][f.itemKey(*in.TableName, in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeAPI) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	attr := in.ExpressionAttributeNames["#a"]
	want, _ := in.ExpressionAttributeValues[":v"].(*types.AttributeValueMemberS)
	var out []map[string]types.AttributeValue
	for _, item := range f.items[*in.TableName] {
		if got, ok := item[attr].(*types.AttributeValueMemberS); ok && want != nil && got.Value == want.Value {
			out = append(out, item)
		}
	}
	return &dynamodb.QueryOutput{Items: out, Count: int32(len(out))}, nil
}

func (f *fakeAPI) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.created {
		if t == *in.TableName {
			return nil, &types.ResourceInUseException{Message: in.TableName}
		}
	}
	f.created = append(f.created, *in.TableName)
	return &dynamodb.CreateTableOutput{}, nil
}

func (f *fakeAPI) UpdateTimeToLive(_ context.Context, in *dynamodb.UpdateTimeToLiveInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateTimeToLiveOutput, error) {
	if in.TimeToLiveSpecification == nil || in.TimeToLiveSpecification.AttributeName == nil {
		return nil, errors.New("missing time to live specification")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ttl[*in.TableName] = *in.TimeToLiveSpecification.AttributeName
	return &dynamodb.UpdateTimeToLiveOutput{}, nil
}
