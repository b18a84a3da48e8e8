package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/go-verify-api/internal/domain"
)

// Topics the listener subscribes to.
const (
	TopicVerifyEmail  = "user.verify.email"
	TopicVerifyMobile = "user.verify.mobileNo"
)

// issueEvent is published by the user service when a contact address needs verifying.
type issueEvent struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	MobileNo string `json:"mobileNo"`
}

type issuer interface {
	IssueEmailVerification(ctx context.Context, req domain.IssueRequest) (domain.DeliveryOutcome, error)
	IssueMobileVerification(ctx context.Context, req domain.IssueRequest) (*domain.OTPIssue, error)
}

type fetchPoller interface {
	PollFetches(ctx context.Context) kgo.Fetches
	Close()
}

// Listener issues credentials for verification events consumed from Kafka.
type Listener struct {
	client fetchPoller
	svc    issuer
	logger *slog.Logger
}

// NewConsumerClient joins group and subscribes to both verification topics.
func NewConsumerClient(brokers []string, group string) (*kgo.Client, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not configured")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(group),
		kgo.ConsumeTopics(TopicVerifyEmail, TopicVerifyMobile),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtEnd()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}
	return client, nil
}

func NewListener(client fetchPoller, svc issuer, logger *slog.Logger) *Listener {
	return &Listener{client: client, svc: svc, logger: logger}
}

// Run polls until ctx is canceled, then closes the client.
func (l *Listener) Run(ctx context.Context) {
	defer l.client.Close()
	for {
		fetches := l.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			if !errors.Is(err, context.Canceled) {
				l.logger.Error("kafka fetch", "topic", topic, "partition", partition, "err", err)
			}
		})
		fetches.EachRecord(func(r *kgo.Record) {
			if err := l.handle(ctx, r.Topic, r.Value); err != nil {
				l.logger.Warn("verification event not handled", "topic", r.Topic, "offset", r.Offset, "err", err)
			}
		})
	}
}

func (l *Listener) handle(ctx context.Context, topic string, value []byte) error {
	var ev issueEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	switch topic {
	case TopicVerifyEmail:
		out, err := l.svc.IssueEmailVerification(ctx, domain.IssueRequest{ID: ev.ID, Address: ev.Email})
		if err != nil {
			return err
		}
		if !out.Delivered {
			return out.Cause
		}
	case TopicVerifyMobile:
		res, err := l.svc.IssueMobileVerification(ctx, domain.IssueRequest{ID: ev.ID, Address: ev.MobileNo})
		if err != nil {
			return err
		}
		if !res.Outcome.Delivered {
			return res.Outcome.Cause
		}
	default:
		return fmt.Errorf("unexpected topic %q", topic)
	}
	return nil
}
