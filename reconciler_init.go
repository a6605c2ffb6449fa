package goSession

import (
	"context"
	"time"

	"github.com/campusauth/goSession/persist"
)

// Initialize runs the startup restore decision tree exactly once:
//
//  1. A fresh, authenticated backup-slot record is adopted immediately, the
//     backup is consumed (cleared, re-persisted to the user slot), and a
//     silent remote check is scheduled without blocking.
//  2. Otherwise a user-slot record is adopted optimistically and a silent
//     remote check is scheduled after Restore.SilentCheckDelay.
//  3. With nothing persisted, Initialize blocks on the oracle and settles
//     into authenticated or unauthenticated; a transport failure here is
//     fail-closed unauthenticated, since there is no prior state to protect.
//
// On paths 1 and 2 subscribers are notified before the remote confirmation
// is issued: that is the no-unauthenticated-flash ordering guarantee, and it
// holds structurally, not by timing.
func (r *Reconciler) Initialize(ctx context.Context) error {
	r.transMu.Lock()
	defer r.transMu.Unlock()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrReconcilerClosed
	}
	if r.initialized {
		r.mu.Unlock()
		return ErrAlreadyInitialized
	}
	r.initialized = true
	r.state = StateRestoring
	r.mu.Unlock()

	ctx, _ = ensureRequestID(ctx)

	// Path 1: reload bridge.
	if rec := r.loadBackupSlot(ctx); rec != nil {
		if rec.Authenticated && rec.Fresh(time.Now(), r.config.Restore.BackupFreshness) {
			r.restoreFromBackup(ctx, *rec)
			return nil
		}
		// Stale or unauthenticated bridges are spent either way.
		r.clearSlot(ctx, persist.SlotBackup)
	}

	// Path 2: optimistic user-slot restore.
	if user := r.loadIdentitySlot(ctx); user != nil {
		r.restoreFromUserSlot(ctx, *user)
		return nil
	}

	// Path 3: nothing persisted; ask the oracle before settling.
	return r.restoreBlocking(ctx)
}

func (r *Reconciler) restoreFromBackup(ctx context.Context, rec persist.BackupRecord) {
	user := fromPersistIdentity(rec.User)

	r.mu.Lock()
	r.commitLocked(StateAuthenticated, &user)
	r.mu.Unlock()

	r.clearSlot(ctx, persist.SlotBackup)
	if err := r.saveIdentity(ctx, user); err != nil {
		r.logger.Warn("persisting restored identity failed", "error", err)
	}

	r.metrics.Inc(MetricRestoreBackup)
	r.emitAudit(ctx, auditEventRestoreBackup, user.Username, true, "", nil)
	r.notifyAuthChange(true, &user)

	// Confirm in the background; the adopted state stands until the oracle
	// explicitly says otherwise.
	go r.checkSilentlyBackground()
	r.startHeartbeat()
}

func (r *Reconciler) restoreFromUserSlot(ctx context.Context, user UserIdentity) {
	r.mu.Lock()
	r.commitLocked(StateAuthenticated, &user)
	r.mu.Unlock()

	r.metrics.Inc(MetricRestoreUser)
	r.emitAudit(ctx, auditEventRestoreUser, user.Username, true, "", nil)
	r.notifyAuthChange(true, &user)

	r.scheduleDelayedCheck(r.config.Restore.SilentCheckDelay)
	r.startHeartbeat()
}

func (r *Reconciler) restoreBlocking(ctx context.Context) error {
	r.mu.Lock()
	r.state = StateReconciling
	epoch := r.epoch
	r.mu.Unlock()

	r.metrics.Inc(MetricRestoreBlocking)

	start := time.Now()
	reply, err := r.oracle.Me(ctx)
	r.metrics.Observe(MetricOracleLatency, time.Since(start))

	r.mu.Lock()
	if r.closed || r.epoch != epoch {
		r.mu.Unlock()
		r.metrics.Inc(MetricStaleEpochDiscard)
		return nil
	}

	if err != nil {
		// Fail closed: no prior state exists to preserve.
		r.commitLocked(StateUnauthenticated, nil)
		r.mu.Unlock()
		r.logger.Warn("initial session check failed; starting unauthenticated", "error", err)
		r.emitAudit(ctx, auditEventRestoreNone, "", false, err.Error(), nil)
		r.notifyAuthChange(false, nil)
		return nil
	}

	if !reply.Authenticated {
		r.commitLocked(StateUnauthenticated, nil)
		r.mu.Unlock()
		r.emitAudit(ctx, auditEventRestoreNone, "", true, "", nil)
		r.notifyAuthChange(false, nil)
		return nil
	}

	user := reply.Identity
	r.commitLocked(StateAuthenticated, &user)
	r.mu.Unlock()

	if err := r.saveIdentity(ctx, user); err != nil {
		r.logger.Warn("persisting server-confirmed identity failed", "error", err)
	}
	r.emitAudit(ctx, auditEventSessionAdopted, user.Username, true, "", map[string]string{
		"source": "initial_check",
	})
	r.notifyAuthChange(true, &user)
	r.startHeartbeat()
	return nil
}
