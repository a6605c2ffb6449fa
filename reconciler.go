package goSession

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/campusauth/goSession/persist"
	"github.com/campusauth/goSession/token"
)

// Reconciler owns the authoritative in-memory auth state. It reconciles the
// persisted store, the remote oracle, and explicit login/logout actions into
// a single consistent state and notifies subscribers of every committed
// transition.
//
// Transitions are serialized: each one mutates state and notifies its
// subscribers before the next begins. Oracle I/O runs outside that critical
// section, so a slow network never blocks an explicit action; ordering
// between an in-flight check and a newer explicit action is resolved by the
// epoch counter instead. Subscribers must not call state-mutating methods
// synchronously from their callback.
type Reconciler struct {
	config    Config
	store     persist.Store
	oracle    SessionOracle
	audit     *auditDispatcher
	metrics   *Metrics
	logger    *slog.Logger
	inspector *token.Inspector

	// transMu serializes whole transitions (mutation + notification).
	transMu sync.Mutex
	// mu guards the fields below for readers.
	mu          sync.Mutex
	state       AuthState
	current     *UserIdentity
	epoch       uint64
	initialized bool
	closed      bool

	subs subscriberList

	timerMu    sync.Mutex
	hbStop     chan struct{}
	hbWG       sync.WaitGroup
	delayTimer *time.Timer

	closeOnce sync.Once
}

// State returns the current lifecycle state.
func (r *Reconciler) State() AuthState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// IsAuthenticated reports whether an identity is currently adopted.
func (r *Reconciler) IsAuthenticated() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current != nil
}

// CurrentUser returns a copy of the current identity, or nil.
func (r *Reconciler) CurrentUser() *UserIdentity {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return nil
	}
	user := *r.current
	return &user
}

// HasRole reports whether the current identity carries exactly role.
func (r *Reconciler) HasRole(role string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current != nil && r.current.Role == role
}

// CanAccess reports whether the current identity may use a surface gated on
// the given roles. An empty role list only requires authentication; unknown
// roles are legitimate (the role set is open) and simply will not match.
func (r *Reconciler) CanAccess(roles []string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if r.current.Role == role {
			return true
		}
	}
	return false
}

// MetricsSnapshot copies the reconciler's counters.
func (r *Reconciler) MetricsSnapshot() MetricsSnapshot {
	if r == nil || r.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return r.metrics.Snapshot()
}

// AuditDropped returns how many audit events were dropped under backpressure.
func (r *Reconciler) AuditDropped() uint64 {
	if r == nil || r.audit == nil {
		return 0
	}
	return r.audit.Dropped()
}

// Close stops all timers, snapshots the current identity into the backup
// slot (best-effort, so the next start can bridge the restart without an
// unauthenticated flash), and shuts the audit dispatcher down. In-memory
// state is left as-is; the process is expected to be exiting.
func (r *Reconciler) Close() {
	if r == nil {
		return
	}
	r.closeOnce.Do(func() {
		r.transMu.Lock()
		defer r.transMu.Unlock()

		r.stopTimers()

		r.mu.Lock()
		r.closed = true
		r.epoch++
		current := r.current
		r.mu.Unlock()

		if current != nil {
			rec := persist.BackupRecord{
				User:          toPersistIdentity(*current),
				Timestamp:     time.Now(),
				Authenticated: true,
			}
			if err := r.saveBackup(context.Background(), rec); err != nil {
				r.logger.Warn("backup snapshot on close failed", "error", err)
			}
		}

		r.audit.Close()
	})
}

// commitLocked mutates state under r.mu (held by the caller) and keeps the
// core invariant: authenticated exactly when an identity is present.
func (r *Reconciler) commitLocked(state AuthState, user *UserIdentity) {
	switch state {
	case StateAuthenticated:
		if user == nil {
			panic("goSession: authenticated commit without identity")
		}
	default:
		user = nil
	}
	r.state = state
	r.current = user
}

func (r *Reconciler) bumpEpochLocked() uint64 {
	r.epoch++
	return r.epoch
}

func (r *Reconciler) currentEpoch() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.epoch
}

func (r *Reconciler) emitAudit(ctx context.Context, eventType, username string, success bool, errMsg string, metadata map[string]string) {
	if r.audit == nil {
		return
	}
	requestID, _ := RequestIDFromContext(ctx)
	r.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		Username:  username,
		State:     r.State().String(),
		RequestID: requestID,
		Success:   success,
		Error:     errMsg,
		Metadata:  metadata,
	})
}

func toPersistIdentity(u UserIdentity) persist.Identity {
	return persist.Identity{
		Username:     u.Username,
		FullName:     u.FullName,
		Email:        u.Email,
		Role:         u.Role,
		SessionToken: u.SessionToken,
	}
}

func fromPersistIdentity(p persist.Identity) UserIdentity {
	return UserIdentity{
		Username:     p.Username,
		FullName:     p.FullName,
		Email:        p.Email,
		Role:         p.Role,
		SessionToken: p.SessionToken,
	}
}
