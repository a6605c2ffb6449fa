package goSession

import (
	"context"
	"time"

	"github.com/campusauth/goSession/persist"
)

const connectivityMessage = "No se pudo conectar con el servidor. Intente nuevamente."

// Login presents credentials to the oracle. It is allowed in any state.
//
// Empty credentials fail with [ErrValidation] before any network call. An
// explicit rejection returns a LoginResult carrying the oracle's message and
// [ErrInvalidCredentials]; a transport failure returns a generic
// connectivity message and [ErrOracleUnreachable]. Local state is untouched
// on every failure path, and there is no automatic retry.
func (r *Reconciler) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if username == "" || password == "" {
		r.metrics.Inc(MetricLoginValidation)
		r.emitAudit(ctx, auditEventLoginValidation, username, false, ErrValidation.Error(), nil)
		return LoginResult{}, ErrValidation
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return LoginResult{}, ErrReconcilerClosed
	}
	// The explicit action supersedes anything in flight.
	epoch := r.bumpEpochLocked()
	r.mu.Unlock()

	ctx, _ = ensureRequestID(ctx)

	start := time.Now()
	reply, err := r.oracle.Login(ctx, username, password)
	r.metrics.Observe(MetricOracleLatency, time.Since(start))

	if err != nil {
		r.metrics.Inc(MetricLoginTransportError)
		r.emitAudit(ctx, auditEventLoginTransport, username, false, err.Error(), nil)
		return LoginResult{OK: false, Message: connectivityMessage}, ErrOracleUnreachable
	}

	if !reply.Success {
		r.metrics.Inc(MetricLoginFailure)
		r.emitAudit(ctx, auditEventLoginFailure, username, false, reply.Message, nil)
		message := reply.Message
		if message == "" {
			message = ErrInvalidCredentials.Error()
		}
		return LoginResult{OK: false, Message: message}, ErrInvalidCredentials
	}

	user := reply.Identity

	r.transMu.Lock()
	defer r.transMu.Unlock()

	r.mu.Lock()
	if r.closed || r.epoch != epoch {
		r.mu.Unlock()
		r.metrics.Inc(MetricStaleEpochDiscard)
		r.emitAudit(ctx, auditEventStaleDiscard, user.Username, false, "", map[string]string{
			"source": "login",
		})
		return LoginResult{}, ErrReconcilerClosed
	}
	r.commitLocked(StateAuthenticated, &user)
	r.mu.Unlock()

	if err := r.saveIdentity(ctx, user); err != nil {
		r.logger.Warn("persisting identity after login failed", "error", err)
	}
	// A fresh login obsoletes any reload bridge from a previous session.
	r.clearSlot(ctx, persist.SlotBackup)

	r.metrics.Inc(MetricLoginSuccess)
	r.emitAudit(ctx, auditEventLoginSuccess, user.Username, true, "", nil)
	r.notifyAuthChange(true, &user)
	r.startHeartbeat()

	result := user
	return LoginResult{OK: true, User: &result}, nil
}

// Logout clears local state unconditionally and always succeeds: the server
// notification is fire-and-forget, and local clearing is authoritative
// regardless of the network outcome. Calling it twice is the same as calling
// it once.
func (r *Reconciler) Logout(ctx context.Context) error {
	ctx, _ = ensureRequestID(ctx)

	r.transMu.Lock()
	defer r.transMu.Unlock()

	r.stopTimers()

	r.mu.Lock()
	r.bumpEpochLocked()
	wasAuthenticated := r.current != nil
	username := ""
	if r.current != nil {
		username = r.current.Username
	}
	r.commitLocked(StateUnauthenticated, nil)
	r.mu.Unlock()

	// Best-effort server teardown; a failure here never blocks the local
	// logout.
	requestID, _ := RequestIDFromContext(ctx)
	go func() {
		bg, cancel := context.WithTimeout(context.Background(), r.config.Oracle.RequestTimeout)
		defer cancel()
		if err := r.oracle.Logout(WithRequestID(bg, requestID)); err != nil {
			r.logger.Debug("server logout notification failed", "error", err)
		}
	}()

	r.clearBothSlots(ctx)

	r.metrics.Inc(MetricLogout)
	r.emitAudit(ctx, auditEventLogout, username, true, "", nil)
	if wasAuthenticated {
		r.notifyAuthChange(false, nil)
	}

	return nil
}

// Renew asks the oracle to extend the server-side session. It never mutates
// local state; an expired session will surface through the next silent check.
func (r *Reconciler) Renew(ctx context.Context) (bool, error) {
	ctx, _ = ensureRequestID(ctx)

	start := time.Now()
	renewed, err := r.oracle.Renew(ctx)
	r.metrics.Observe(MetricOracleLatency, time.Since(start))

	if err != nil {
		r.metrics.Inc(MetricRenewFailure)
		r.emitAudit(ctx, auditEventRenewFailed, "", false, err.Error(), nil)
		return false, ErrOracleUnreachable
	}
	if !renewed {
		r.metrics.Inc(MetricRenewFailure)
		r.emitAudit(ctx, auditEventRenewFailed, "", false, "", nil)
		return false, nil
	}

	r.metrics.Inc(MetricRenewSuccess)
	r.emitAudit(ctx, auditEventRenew, "", true, "", nil)
	return true, nil
}
