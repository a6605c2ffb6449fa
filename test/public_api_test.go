package test

import (
	"context"
	"testing"

	goSession "github.com/campusauth/goSession"
	"github.com/campusauth/goSession/gate"
	"github.com/campusauth/goSession/persist"
	"github.com/campusauth/goSession/records"
)

// This test intentionally guards public API compile-compat for consumers.
func TestPublicAPISurfaceCompile(t *testing.T) {
	_ = goSession.New

	var _ *goSession.Reconciler
	var _ goSession.Config
	var _ goSession.AuthState
	var _ goSession.UserIdentity
	var _ goSession.LoginResult
	var _ goSession.SessionOracle
	var _ goSession.AuditSink
	var _ goSession.AuthCallback
	var _ *goSession.Subscription

	var _ error = goSession.ErrValidation
	var _ error = goSession.ErrInvalidCredentials
	var _ error = goSession.ErrOracleUnreachable
	var _ error = goSession.ErrNotInitialized
	var _ error = goSession.ErrAlreadyInitialized
	var _ error = goSession.ErrReconcilerClosed

	var _ error = persist.ErrNotFound
	var _ error = persist.ErrCorrupt
	var _ error = persist.ErrUnavailable

	var _ error = records.ErrUnauthorized
	var _ error = records.ErrNotFound
	var _ error = records.ErrUnavailable

	var _ error = gate.ErrLoginRequired
	var _ error = gate.ErrForbidden

	var _ func(*goSession.Reconciler, context.Context) error = (*goSession.Reconciler).Initialize
	var _ func(*goSession.Reconciler, context.Context, string, string) (goSession.LoginResult, error) = (*goSession.Reconciler).Login
	var _ func(*goSession.Reconciler, context.Context) error = (*goSession.Reconciler).Logout
	var _ func(*goSession.Reconciler, context.Context) = (*goSession.Reconciler).CheckSessionSilently
	var _ func(*goSession.Reconciler) bool = (*goSession.Reconciler).IsAuthenticated
	var _ func(*goSession.Reconciler) *goSession.UserIdentity = (*goSession.Reconciler).CurrentUser
	var _ func(*goSession.Reconciler, goSession.AuthCallback) *goSession.Subscription = (*goSession.Reconciler).OnAuthChange
}
