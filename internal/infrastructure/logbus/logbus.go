// Package logbus provides a notification bus for local development that logs
// delivery requests instead of sending them.
package logbus

import (
	"context"
	"log/slog"
)

type Bus struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Bus {
	return &Bus{logger: logger}
}

// Publish logs the topic and payload size. Payloads carry secrets and are not logged.
func (b *Bus) Publish(ctx context.Context, topic string, payload []byte) error {
	b.logger.InfoContext(ctx, "delivery request", "topic", topic, "bytes", len(payload))
	return nil
}
