package audit

import (
	"context"
	"log/slog"

	"actavc/pkg/requestcontext"
)

// Emitter is the interface for audit event emission.
// Satisfied by publisher.Publisher.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Logger writes audit events to the structured log and, when an emitter is
// configured, to the audit sink.
type Logger struct {
	textLogger *slog.Logger
	emitter    Emitter
}

// NewLogger creates an audit logger. Both arguments are optional.
func NewLogger(textLogger *slog.Logger, emitter Emitter) *Logger {
	return &Logger{
		textLogger: textLogger,
		emitter:    emitter,
	}
}

// Log records event with the given key/value attributes. The keys "wallet",
// "subject", "reason" and "tx_id" are lifted into the emitted Event.
//
//	logger.Log(ctx, audit.EventVCIssued, "wallet", addr, "subject", vcID, "tx_id", txID)
func (l *Logger) Log(ctx context.Context, event AuditEvent, attributes ...any) {
	if l == nil {
		return
	}
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}

	if l.textLogger != nil {
		args := append(attributes, "event", string(event), "log_type", "audit")
		l.textLogger.InfoContext(ctx, string(event), args...)
	}

	if l.emitter == nil {
		return
	}
	err := l.emitter.Emit(ctx, Event{
		Category:  event.Category(),
		Action:    string(event),
		Wallet:    extractString(attributes, "wallet"),
		Subject:   extractString(attributes, "subject"),
		Reason:    extractString(attributes, "reason"),
		TxID:      extractString(attributes, "tx_id"),
		RequestID: requestID,
	})
	if err != nil && l.textLogger != nil {
		l.textLogger.ErrorContext(ctx, "failed to emit audit event",
			"error", err,
			"event", string(event),
		)
	}
}

func extractString(attributes []any, key string) string {
	for i := 0; i+1 < len(attributes); i += 2 {
		if k, ok := attributes[i].(string); ok && k == key {
			if v, ok := attributes[i+1].(string); ok {
				return v
			}
		}
	}
	return ""
}
