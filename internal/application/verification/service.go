package verification

import (
	"context"
	"log/slog"

	"github.com/go-verify-api/internal/domain"
	"github.com/go-verify-api/internal/metrics"
)

type Service interface {
	IssueEmailVerification(ctx context.Context, req domain.IssueRequest) (domain.DeliveryOutcome, error)
	IssueMobileVerification(ctx context.Context, req domain.IssueRequest) (*domain.OTPIssue, error)
	ValidateEmailVerification(ctx context.Context, req domain.ValidateRequest) (bool, error)
	ValidateMobileVerification(ctx context.Context, req domain.ValidateRequest) (bool, error)
}

type ServiceDeps struct {
	Identities IdentityResolver
	Store      CredentialStore
	Bus        NotificationBus
	Config     Config
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

type service struct {
	*Issuer
	*Validator
}

func NewService(deps ServiceDeps) Service {
	return &service{
		Issuer:    NewIssuer(deps.Identities, deps.Store, deps.Bus, deps.Config, deps.Logger, deps.Metrics),
		Validator: NewValidator(deps.Identities, deps.Store, deps.Logger, deps.Metrics),
	}
}
