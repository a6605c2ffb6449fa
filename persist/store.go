package persist

import (
	"context"
	"errors"
)

// Slot names match the keys the original console used in browser storage.
const (
	// SlotUser holds the JSON-encoded identity snapshot.
	SlotUser = "user"
	// SlotBackup holds the JSON-encoded reload-bridge record.
	SlotBackup = "user_backup"
)

var (
	// ErrNotFound is returned by Get when a slot is empty.
	ErrNotFound = errors.New("slot not found")
	// ErrCorrupt is returned by the codec when a slot's value cannot be
	// decoded into a valid record. The reconciler clears the offending slot
	// and falls through to the remote check.
	ErrCorrupt = errors.New("persisted record corrupt")
	// ErrUnavailable is returned by backends whose underlying medium cannot
	// be reached (disk error, redis down).
	ErrUnavailable = errors.New("persisted store unavailable")
)

// Store is the durable two-slot key-value store. Values are opaque to
// backends; only the slots above are ever used.
type Store interface {
	// Get returns the value stored in slot, or ErrNotFound.
	Get(ctx context.Context, slot string) ([]byte, error)
	// Set writes value to slot, replacing any previous value.
	Set(ctx context.Context, slot string, value []byte) error
	// Delete removes slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, slot string) error
}
