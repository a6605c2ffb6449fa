package goSession

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Audit event types emitted by the reconciler.
const (
	auditEventLoginSuccess     = "login_success"
	auditEventLoginFailure     = "login_failure"
	auditEventLoginValidation  = "login_validation"
	auditEventLoginTransport   = "login_transport_error"
	auditEventLogout           = "logout"
	auditEventRestoreBackup    = "restore_backup"
	auditEventRestoreUser      = "restore_user"
	auditEventRestoreNone      = "restore_none"
	auditEventSessionAdopted   = "session_adopted"
	auditEventSessionRevoked   = "session_revoked"
	auditEventSilentCheckError = "silent_check_error"
	auditEventStaleDiscard     = "stale_epoch_discard"
	auditEventStoreCorrupt     = "store_corrupt"
	auditEventRenew            = "session_renewed"
	auditEventRenewFailed      = "session_renew_failed"
)

// AuditEvent records one observable reconciler decision.
type AuditEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	Username  string            `json:"username,omitempty"`
	State     string            `json:"state,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// AuditSink receives audit events from the dispatcher goroutine. Emit must
// be safe for concurrent use and should not block for long; slow sinks cause
// drops (or engine backpressure when DropIfFull is off).
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent)
}

// NoOpSink discards all events.
type NoOpSink struct{}

// Emit implements AuditSink.
func (NoOpSink) Emit(context.Context, AuditEvent) {}

// ChannelSink forwards events to a channel, mainly for tests and embedders
// that run their own fan-out.
type ChannelSink struct {
	events chan AuditEvent
}

// NewChannelSink returns a sink buffering up to buffer events.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan AuditEvent, buffer),
	}
}

// Emit implements AuditSink.
func (s *ChannelSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// Events exposes the receiving side of the sink.
func (s *ChannelSink) Events() <-chan AuditEvent {
	return s.events
}

// JSONWriterSink writes one JSON object per line to a writer.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink returns a line-delimited JSON sink.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

// Emit implements AuditSink.
func (s *JSONWriterSink) Emit(ctx context.Context, event AuditEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
