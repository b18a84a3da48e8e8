package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-verify-api/internal/domain"
	"github.com/go-verify-api/internal/metrics"
)

// Validator compares a presented secret with the subject's stored credential.
// It never mutates the store: a matching secret keeps validating until its TTL
// elapses or a new issuance overwrites it.
type Validator struct {
	identities IdentityResolver
	store      CredentialStore
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewValidator(identities IdentityResolver, store CredentialStore, logger *slog.Logger, m *metrics.Metrics) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{identities: identities, store: store, logger: logger, metrics: m}
}

func (v *Validator) ValidateEmailVerification(ctx context.Context, req domain.ValidateRequest) (bool, error) {
	return v.validate(ctx, domain.ChannelEmail, req)
}

func (v *Validator) ValidateMobileVerification(ctx context.Context, req domain.ValidateRequest) (bool, error) {
	return v.validate(ctx, domain.ChannelMobile, req)
}

func (v *Validator) validate(ctx context.Context, ch domain.Channel, req domain.ValidateRequest) (bool, error) {
	if _, err := methodFor(ch, req.Method); err != nil {
		return false, err
	}
	if req.SubjectID == "" {
		return false, fmt.Errorf("no authenticated subject: %w", domain.ErrUnauthorized)
	}
	if req.Secret == "" {
		v.metrics.ObserveValidation(ch.Slug(), false)
		return false, nil
	}
	log := v.logger.With("user_id", req.SubjectID, "channel", ch.Slug())

	if _, err := v.identities.Get(ctx, req.SubjectID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn("resolve subject for validation", "err", err)
		}
		v.metrics.ObserveValidation(ch.Slug(), false)
		return false, nil
	}

	stored, err := v.store.Get(ctx, domain.CredentialKey{SubjectID: req.SubjectID, Channel: ch})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn("read stored credential", "err", err)
		}
		v.metrics.ObserveValidation(ch.Slug(), false)
		return false, nil
	}

	ok := req.Secret == stored
	v.metrics.ObserveValidation(ch.Slug(), ok)
	log.Info("credential validated", "match", ok)
	return ok, nil
}
