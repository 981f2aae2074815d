package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actavc/pkg/requestcontext"
)

type recordingEmitter struct {
	events []Event
	err    error
}

func (r *recordingEmitter) Emit(_ context.Context, event Event) error {
	r.events = append(r.events, event)
	return r.err
}

func TestLogger(t *testing.T) {
	t.Run("emits lifted attributes with request id", func(t *testing.T) {
		emitter := &recordingEmitter{}
		var buf bytes.Buffer
		logger := NewLogger(slog.New(slog.NewJSONHandler(&buf, nil)), emitter)

		ctx := requestcontext.WithRequestID(context.Background(), "req-1")
		logger.Log(ctx, EventVCIssued, "wallet", "GABC", "subject", "cred_1", "tx_id", "tx-9")

		require.Len(t, emitter.events, 1)
		got := emitter.events[0]
		assert.Equal(t, "vc_issued", got.Action)
		assert.Equal(t, CategoryCompliance, got.Category)
		assert.Equal(t, "GABC", got.Wallet)
		assert.Equal(t, "cred_1", got.Subject)
		assert.Equal(t, "tx-9", got.TxID)
		assert.Equal(t, "req-1", got.RequestID)
		assert.Contains(t, buf.String(), `"log_type":"audit"`)
	})

	t.Run("emit failure is logged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(slog.New(slog.NewJSONHandler(&buf, nil)), &recordingEmitter{err: errors.New("sink down")})

		logger.Log(context.Background(), EventDIDSaved)
		assert.Contains(t, buf.String(), "failed to emit audit event")
	})

	t.Run("nil logger is a no-op", func(t *testing.T) {
		var logger *Logger
		assert.NotPanics(t, func() { logger.Log(context.Background(), EventDIDCleared) })
	})
}
