package logbus

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_LogsWithoutPayload(t *testing.T) {
	var buf bytes.Buffer
	bus := New(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, bus.Publish(context.Background(), "mobile.send", []byte(`{"content":"Your OTP is 1234."}`)))

	out := buf.String()
	assert.Contains(t, out, "topic=mobile.send")
	assert.NotContains(t, out, "1234")
}
