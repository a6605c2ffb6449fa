package persist

import (
	"encoding/json"
	"fmt"
	"time"
)

// EncodeIdentity serializes an identity for SlotUser.
func EncodeIdentity(id Identity) ([]byte, error) {
	if id.Username == "" {
		return nil, fmt.Errorf("%w: empty username", ErrCorrupt)
	}
	return json.Marshal(id)
}

// DecodeIdentity parses a SlotUser value. A record without a username is
// treated as corrupt, not merely empty: it can never be reconciled against
// the oracle's identity key.
func DecodeIdentity(data []byte) (Identity, error) {
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if id.Username == "" {
		return Identity{}, fmt.Errorf("%w: empty username", ErrCorrupt)
	}
	return id, nil
}

// EncodeBackup serializes a backup record for SlotBackup, stamping the
// current schema version.
func EncodeBackup(rec BackupRecord) ([]byte, error) {
	if rec.User.Username == "" {
		return nil, fmt.Errorf("%w: empty username", ErrCorrupt)
	}
	rec.Version = backupRecordVersion
	return json.Marshal(rec)
}

// DecodeBackup parses a SlotBackup value.
func DecodeBackup(data []byte) (BackupRecord, error) {
	var rec BackupRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return BackupRecord{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if rec.Version > backupRecordVersion {
		return BackupRecord{}, fmt.Errorf("%w: unknown backup version %d", ErrCorrupt, rec.Version)
	}
	if rec.User.Username == "" || rec.Timestamp.IsZero() {
		return BackupRecord{}, fmt.Errorf("%w: incomplete backup record", ErrCorrupt)
	}
	return rec, nil
}

// Fresh reports whether the record is young enough to bridge a reload.
func (r BackupRecord) Fresh(now time.Time, window time.Duration) bool {
	return now.Sub(r.Timestamp) <= window
}
