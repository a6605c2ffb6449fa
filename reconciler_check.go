package goSession

import (
	"context"
	"time"
)

// CheckSessionSilently asks the oracle whether the session cookie is still
// valid and reconciles the answer. It is triggered by timers (the delayed
// post-restore confirmation, the heartbeat); nothing user-facing calls it.
//
// Trust is asymmetric: a positive answer with a different identity
// is adopted, an identical identity is a no-op (no notification storm), an
// explicit negation clears local state and both persisted slots — but a
// transport error changes nothing, because a flaky network must never log a
// user out. Responses that lost a race against an explicit login, logout, or
// Close are discarded by the epoch check.
func (r *Reconciler) CheckSessionSilently(ctx context.Context) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	epoch := r.epoch
	r.mu.Unlock()

	ctx, _ = ensureRequestID(ctx)

	start := time.Now()
	reply, err := r.oracle.Me(ctx)
	r.metrics.Observe(MetricOracleLatency, time.Since(start))

	r.transMu.Lock()
	defer r.transMu.Unlock()

	r.mu.Lock()
	if r.closed || r.epoch != epoch {
		r.mu.Unlock()
		r.metrics.Inc(MetricStaleEpochDiscard)
		r.emitAudit(ctx, auditEventStaleDiscard, "", false, "", map[string]string{
			"source": "silent_check",
		})
		return
	}

	if err != nil {
		r.mu.Unlock()
		r.metrics.Inc(MetricSilentCheckError)
		r.logger.Debug("silent session check failed; keeping local state", "error", err)
		r.emitAudit(ctx, auditEventSilentCheckError, "", false, err.Error(), nil)
		return
	}

	if reply.Authenticated {
		if r.current != nil && r.current.Equal(reply.Identity) {
			r.mu.Unlock()
			r.metrics.Inc(MetricSilentCheckNoop)
			return
		}

		user := reply.Identity
		if r.current != nil && user.SessionToken == "" {
			// /auth/me answers carry no token; keep the one from login.
			user.SessionToken = r.current.SessionToken
		}
		r.commitLocked(StateAuthenticated, &user)
		r.mu.Unlock()

		if err := r.saveIdentity(ctx, user); err != nil {
			r.logger.Warn("persisting server-confirmed identity failed", "error", err)
		}

		r.metrics.Inc(MetricSilentCheckAdopted)
		r.emitAudit(ctx, auditEventSessionAdopted, user.Username, true, "", map[string]string{
			"source": "silent_check",
		})
		r.notifyAuthChange(true, &user)
		r.startHeartbeat()
		return
	}

	// Explicit negation.
	if r.current == nil {
		r.mu.Unlock()
		return
	}
	username := r.current.Username
	r.commitLocked(StateUnauthenticated, nil)
	r.mu.Unlock()

	r.stopTimers()
	r.clearBothSlots(ctx)

	r.metrics.Inc(MetricSilentCheckRevoked)
	r.emitAudit(ctx, auditEventSessionRevoked, username, true, "", nil)
	r.notifyAuthChange(false, nil)
}

// checkSilentlyBackground runs a silent check under the configured oracle
// timeout; used by timers that have no caller context.
func (r *Reconciler) checkSilentlyBackground() {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Oracle.RequestTimeout)
	defer cancel()
	r.CheckSessionSilently(ctx)
}
