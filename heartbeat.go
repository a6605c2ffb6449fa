package goSession

import (
	"context"
	"time"
)

// Timer handling. Two timers exist: the one-shot delayed confirmation
// scheduled after an optimistic restore, and the periodic revalidation
// heartbeat. Both are cancelled on logout and Close so no reconciliation
// dangles after the user has left. Cancellation is signal-only — a tick
// already past the signal is neutralized by the epoch check, not by waiting.

func (r *Reconciler) startHeartbeat() {
	if !r.config.Heartbeat.Enabled {
		return
	}

	r.timerMu.Lock()
	defer r.timerMu.Unlock()

	if r.hbStop != nil {
		return
	}
	stop := make(chan struct{})
	r.hbStop = stop

	r.hbWG.Add(1)
	go func() {
		defer r.hbWG.Done()

		ticker := time.NewTicker(r.config.Heartbeat.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.heartbeatTick()
			case <-stop:
				return
			}
		}
	}()
}

func (r *Reconciler) heartbeatTick() {
	r.checkSilentlyBackground()
	r.maybeRenew()
}

// maybeRenew issues a renewal when the session token is a readable JWT whose
// expiry falls inside the renew window. Opaque tokens never match and the
// feature stays dormant.
func (r *Reconciler) maybeRenew() {
	if !r.config.Renew.Enabled {
		return
	}
	user := r.CurrentUser()
	if user == nil {
		return
	}
	expiry, ok := r.inspector.ExpiresAt(user.SessionToken)
	if !ok {
		return
	}
	if time.Until(expiry) > r.config.Renew.Window {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Oracle.RequestTimeout)
	defer cancel()
	if _, err := r.Renew(ctx); err != nil {
		r.logger.Debug("scheduled session renewal failed", "error", err)
	}
}

func (r *Reconciler) scheduleDelayedCheck(delay time.Duration) {
	r.timerMu.Lock()
	defer r.timerMu.Unlock()

	if r.delayTimer != nil {
		r.delayTimer.Stop()
	}
	r.delayTimer = time.AfterFunc(delay, r.checkSilentlyBackground)
}

func (r *Reconciler) stopTimers() {
	r.timerMu.Lock()
	defer r.timerMu.Unlock()

	if r.hbStop != nil {
		close(r.hbStop)
		r.hbStop = nil
	}
	if r.delayTimer != nil {
		r.delayTimer.Stop()
		r.delayTimer = nil
	}
}
