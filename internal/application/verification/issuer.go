package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-verify-api/internal/domain"
	"github.com/go-verify-api/internal/metrics"
	"github.com/go-verify-api/internal/pkg/id"
	pkgtoken "github.com/go-verify-api/internal/pkg/token"
)

// Config tunes credential issuance.
type Config struct {
	OTPLength   int
	EmailTTL    time.Duration
	MobileTTL   time.Duration
	LinkBaseURL string
	EmailTopic  string
	MobileTopic string
}

// Issuer generates credentials, stores them with a TTL and requests their delivery.
type Issuer struct {
	identities IdentityResolver
	store      CredentialStore
	bus        NotificationBus
	cfg        Config
	logger     *slog.Logger
	metrics    *metrics.Metrics

	now      func() time.Time
	newToken func() (string, error)
	newOTP   func(digits int) (string, error)
}

func NewIssuer(identities IdentityResolver, store CredentialStore, bus NotificationBus, cfg Config, logger *slog.Logger, m *metrics.Metrics) *Issuer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Issuer{
		identities: identities,
		store:      store,
		bus:        bus,
		cfg:        cfg,
		logger:     logger,
		metrics:    m,
		now:        time.Now,
		newToken:   pkgtoken.NewEmailToken,
		newOTP:     pkgtoken.NewOTP,
	}
}

// IssueEmailVerification stores a fresh email token for the subject and publishes
// a verification link to the email topic. Store and publish failures are reported
// through the outcome; only resolution and request errors are returned.
func (s *Issuer) IssueEmailVerification(ctx context.Context, req domain.IssueRequest) (domain.DeliveryOutcome, error) {
	if _, err := methodFor(domain.ChannelEmail, req.Method); err != nil {
		return domain.DeliveryOutcome{}, err
	}
	u, err := s.resolve(ctx, req, s.identities.GetByEmail, "email")
	if err != nil {
		return domain.DeliveryOutcome{}, err
	}
	if u.Email == "" {
		return domain.DeliveryOutcome{}, fmt.Errorf("no email address on account: %w", domain.ErrBadRequest)
	}
	log := s.logger.With("user_id", u.UserID, "channel", domain.ChannelEmail.Slug())

	outcome := s.issueEmail(ctx, log, u)
	s.metrics.ObserveIssued(domain.ChannelEmail.Slug(), outcome.Delivered)
	return outcome, nil
}

func (s *Issuer) issueEmail(ctx context.Context, log *slog.Logger, u *domain.User) domain.DeliveryOutcome {
	tok, err := s.newToken()
	if err != nil {
		log.Error("generate email token", "err", err)
		return failed(err)
	}
	key := domain.CredentialKey{SubjectID: u.UserID, Channel: domain.ChannelEmail}
	if err := s.store.Set(ctx, key, tok, s.cfg.EmailTTL); err != nil {
		log.Warn("store email token", "err", err)
		s.metrics.ObserveStoreWriteError(domain.ChannelEmail.Slug())
		return failed(fmt.Errorf("store credential: %w", err))
	}
	link, err := BuildLink(s.cfg.LinkBaseURL, domain.ChannelEmail, tok)
	if err != nil {
		log.Error("build verification link", "err", err)
		return failed(err)
	}
	return s.publish(ctx, log, s.cfg.EmailTopic, domain.NotificationRequest{
		ID:        id.New(),
		Channel:   domain.ChannelEmail,
		Recipient: u.Email,
		Subject:   emailSubject,
		Content:   emailContentPrefix + link,
	})
}

// IssueMobileVerification stores a fresh numeric code for the subject, publishes
// it to the mobile topic and returns it with its expiry. A failed store write is
// returned as domain.ErrDeliveryFailure since the code would never validate; a
// failed publish is reported through the outcome.
func (s *Issuer) IssueMobileVerification(ctx context.Context, req domain.IssueRequest) (*domain.OTPIssue, error) {
	if _, err := methodFor(domain.ChannelMobile, req.Method); err != nil {
		return nil, err
	}
	u, err := s.resolve(ctx, req, s.identities.GetByMobile, "mobile number")
	if err != nil {
		return nil, err
	}
	if u.MobileNo == "" {
		return nil, fmt.Errorf("no mobile number on account: %w", domain.ErrBadRequest)
	}
	log := s.logger.With("user_id", u.UserID, "channel", domain.ChannelMobile.Slug())

	code, err := s.newOTP(s.cfg.OTPLength)
	if err != nil {
		log.Error("generate otp", "err", err)
		return nil, fmt.Errorf("generate otp: %w: %w", domain.ErrDeliveryFailure, err)
	}
	expiresAt := s.now().Add(s.cfg.MobileTTL)

	key := domain.CredentialKey{SubjectID: u.UserID, Channel: domain.ChannelMobile}
	if err := s.store.Set(ctx, key, code, s.cfg.MobileTTL); err != nil {
		log.Warn("store otp", "err", err)
		s.metrics.ObserveStoreWriteError(domain.ChannelMobile.Slug())
		s.metrics.ObserveIssued(domain.ChannelMobile.Slug(), false)
		return nil, fmt.Errorf("store credential: %w: %w", domain.ErrDeliveryFailure, err)
	}

	outcome := s.publish(ctx, log, s.cfg.MobileTopic, domain.NotificationRequest{
		ID:        id.New(),
		Channel:   domain.ChannelMobile,
		Recipient: u.MobileNo,
		Content:   otpContent(code, s.cfg.MobileTTL),
	})
	s.metrics.ObserveIssued(domain.ChannelMobile.Slug(), outcome.Delivered)
	return &domain.OTPIssue{Code: code, ExpiresAt: expiresAt, Outcome: outcome}, nil
}

// resolve looks the subject up by id when given, otherwise by address.
func (s *Issuer) resolve(ctx context.Context, req domain.IssueRequest, byAddress func(context.Context, string) (*domain.User, error), addressName string) (*domain.User, error) {
	var (
		u   *domain.User
		err error
	)
	userID, address := strings.TrimSpace(req.ID), strings.TrimSpace(req.Address)
	switch {
	case userID != "":
		u, err = s.identities.Get(ctx, userID)
	case address != "":
		u, err = byAddress(ctx, address)
	default:
		return nil, fmt.Errorf("id or %s required: %w", addressName, domain.ErrBadRequest)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("user not found: %w", domain.ErrSubjectNotFound)
		}
		return nil, fmt.Errorf("resolve subject: %w", err)
	}
	return u, nil
}

func (s *Issuer) publish(ctx context.Context, log *slog.Logger, topic string, n domain.NotificationRequest) domain.DeliveryOutcome {
	payload, err := encodeNotification(n)
	if err != nil {
		log.Error("encode delivery request", "err", err)
		return failed(err)
	}
	if err := s.bus.Publish(ctx, topic, payload); err != nil {
		log.Warn("publish delivery request", "topic", topic, "request_id", n.ID, "err", err)
		s.metrics.ObservePublishFailure(topic)
		return failed(fmt.Errorf("publish to %s: %w", topic, err))
	}
	log.Info("delivery request published", "topic", topic, "request_id", n.ID)
	return domain.DeliveryOutcome{Delivered: true}
}

func failed(cause error) domain.DeliveryOutcome {
	return domain.DeliveryOutcome{Cause: fmt.Errorf("%w: %w", domain.ErrDeliveryFailure, cause)}
}

// methodFor applies the channel default and rejects methods the channel cannot carry.
func methodFor(ch domain.Channel, m domain.Method) (domain.Method, error) {
	if m == "" {
		return ch.DefaultMethod(), nil
	}
	if !ch.Supports(m) {
		return "", fmt.Errorf("%s over %s: %w", m, ch, domain.ErrUnsupportedMethod)
	}
	return m, nil
}
