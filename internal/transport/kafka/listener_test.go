package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/go-verify-api/internal/domain"
	"github.com/go-verify-api/internal/logging"
)

type mockIssuer struct{ mock.Mock }

func (m *mockIssuer) IssueEmailVerification(ctx context.Context, req domain.IssueRequest) (domain.DeliveryOutcome, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.DeliveryOutcome), args.Error(1)
}

func (m *mockIssuer) IssueMobileVerification(ctx context.Context, req domain.IssueRequest) (*domain.OTPIssue, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*domain.OTPIssue); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestListener(svc issuer) *Listener {
	return NewListener(nil, svc, logging.Discard())
}

func TestHandle_EmailEvent(t *testing.T) {
	svc := &mockIssuer{}
	svc.On("IssueEmailVerification", mock.Anything, domain.IssueRequest{ID: "u1", Address: "a@example.com"}).
		Return(domain.DeliveryOutcome{Delivered: true}, nil)

	err := newTestListener(svc).handle(context.Background(), TopicVerifyEmail, []byte(`{"id":"u1","email":"a@example.com"}`))

	require.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestHandle_MobileEvent(t *testing.T) {
	svc := &mockIssuer{}
	svc.On("IssueMobileVerification", mock.Anything, domain.IssueRequest{Address: "+15550100"}).
		Return(&domain.OTPIssue{Code: "1234", Outcome: domain.DeliveryOutcome{Delivered: true}}, nil)

	err := newTestListener(svc).handle(context.Background(), TopicVerifyMobile, []byte(`{"mobileNo":"+15550100"}`))

	require.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestHandle_UndeliveredIsReported(t *testing.T) {
	cause := errors.New("broker down")
	svc := &mockIssuer{}
	svc.On("IssueEmailVerification", mock.Anything, mock.Anything).
		Return(domain.DeliveryOutcome{Cause: cause}, nil)

	err := newTestListener(svc).handle(context.Background(), TopicVerifyEmail, []byte(`{"id":"u1"}`))
	assert.ErrorIs(t, err, cause)
}

func TestHandle_IssuerError(t *testing.T) {
	svc := &mockIssuer{}
	svc.On("IssueMobileVerification", mock.Anything, mock.Anything).Return(nil, domain.ErrSubjectNotFound)

	err := newTestListener(svc).handle(context.Background(), TopicVerifyMobile, []byte(`{"id":"ghost"}`))
	assert.ErrorIs(t, err, domain.ErrSubjectNotFound)
}

func TestHandle_BadPayloadAndTopic(t *testing.T) {
	l := newTestListener(&mockIssuer{})

	assert.Error(t, l.handle(context.Background(), TopicVerifyEmail, []byte("not json")))
	assert.Error(t, l.handle(context.Background(), "user.deleted", []byte(`{"id":"u1"}`)))
}
