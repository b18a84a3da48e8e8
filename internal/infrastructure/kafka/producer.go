package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/go-verify-api/internal/metrics"
)

// recordProducer is the part of *kgo.Client the producer uses.
type recordProducer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
	Flush(ctx context.Context) error
	Close()
}

// Producer hands notification payloads to Kafka without waiting for the
// broker acknowledgement. Delivery failures are logged and counted.
type Producer struct {
	client  recordProducer
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu     sync.RWMutex
	closed bool
}

// NewClient builds a franz-go client for producing delivery requests.
func NewClient(brokers []string) (*kgo.Client, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not configured")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(5*time.Millisecond),
		kgo.RecordDeliveryTimeout(30*time.Second),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return client, nil
}

func NewProducer(client recordProducer, logger *slog.Logger, m *metrics.Metrics) *Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer{client: client, logger: logger, metrics: m}
}

// Publish buffers payload for topic. A nil error means the record was accepted
// by the client, not that a broker stored it.
func (p *Producer) Publish(ctx context.Context, topic string, payload []byte) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return fmt.Errorf("producer is closed")
	}

	record := &kgo.Record{Topic: topic, Value: payload}
	// The request context usually ends before the broker acks.
	p.client.Produce(context.WithoutCancel(ctx), record, func(r *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("kafka delivery failed", "topic", r.Topic, "partition", r.Partition, "err", err)
			p.metrics.ObservePublishFailure(r.Topic)
		}
	})
	return nil
}

// Close flushes buffered records for up to timeout and closes the client.
func (p *Producer) Close(timeout time.Duration) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil {
		p.logger.Warn("kafka producer closed with unflushed records", "err", err)
	}
	p.client.Close()
}
