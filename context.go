package goSession

import (
	"context"

	"github.com/google/uuid"
)

type requestIDContextKey struct{}

// WithRequestID attaches a correlation id to ctx. The HTTP oracle forwards it
// as X-Request-ID and audit events carry it, so one console action can be
// traced across client logs and server logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

// RequestIDFromContext returns the correlation id attached to ctx, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok && id != ""
}

func ensureRequestID(ctx context.Context) (context.Context, string) {
	if id, ok := RequestIDFromContext(ctx); ok {
		return ctx, id
	}
	id := uuid.NewString()
	return WithRequestID(ctx, id), id
}
