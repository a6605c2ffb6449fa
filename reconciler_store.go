package goSession

import (
	"context"
	"errors"

	"github.com/campusauth/goSession/persist"
)

// Slot readers translate persistence problems into restore decisions: absent
// slots read as nil, corrupt slots are cleared (and counted) so they read as
// nil on the next attempt too, and an unavailable medium reads as nil after
// a warning. In every case the caller falls through to the remote check.

func (r *Reconciler) loadIdentitySlot(ctx context.Context) *UserIdentity {
	data, err := r.store.Get(ctx, persist.SlotUser)
	if err != nil {
		if !errors.Is(err, persist.ErrNotFound) {
			r.logger.Warn("user slot unreadable", "error", err)
		}
		return nil
	}

	rec, err := persist.DecodeIdentity(data)
	if err != nil {
		r.dropCorruptSlot(ctx, persist.SlotUser, err)
		return nil
	}

	user := fromPersistIdentity(rec)
	return &user
}

func (r *Reconciler) loadBackupSlot(ctx context.Context) *persist.BackupRecord {
	data, err := r.store.Get(ctx, persist.SlotBackup)
	if err != nil {
		if !errors.Is(err, persist.ErrNotFound) {
			r.logger.Warn("backup slot unreadable", "error", err)
		}
		return nil
	}

	rec, err := persist.DecodeBackup(data)
	if err != nil {
		r.dropCorruptSlot(ctx, persist.SlotBackup, err)
		return nil
	}
	return &rec
}

func (r *Reconciler) dropCorruptSlot(ctx context.Context, slot string, cause error) {
	r.metrics.Inc(MetricStoreCorrupt)
	r.logger.Warn("clearing corrupt persisted slot", "slot", slot, "error", cause)
	r.emitAudit(ctx, auditEventStoreCorrupt, "", false, cause.Error(), map[string]string{
		"slot": slot,
	})
	if err := r.store.Delete(ctx, slot); err != nil {
		r.logger.Warn("clearing corrupt slot failed", "slot", slot, "error", err)
	}
}

// saveIdentity persists the identity to the user slot. Write failures are
// reported to the caller but never block a transition: the oracle, not the
// store, is the authority.
func (r *Reconciler) saveIdentity(ctx context.Context, user UserIdentity) error {
	data, err := persist.EncodeIdentity(toPersistIdentity(user))
	if err != nil {
		return err
	}
	return r.store.Set(ctx, persist.SlotUser, data)
}

func (r *Reconciler) saveBackup(ctx context.Context, rec persist.BackupRecord) error {
	data, err := persist.EncodeBackup(rec)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, persist.SlotBackup, data)
}

func (r *Reconciler) clearSlot(ctx context.Context, slot string) {
	if err := r.store.Delete(ctx, slot); err != nil {
		r.logger.Warn("clearing persisted slot failed", "slot", slot, "error", err)
	}
}

func (r *Reconciler) clearBothSlots(ctx context.Context) {
	r.clearSlot(ctx, persist.SlotUser)
	r.clearSlot(ctx, persist.SlotBackup)
}
