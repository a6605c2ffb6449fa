package persist

import "time"

// Identity is the persisted snapshot of an authenticated user. Field names
// on the wire match the oracle's login response so a stored record and a
// fresh server answer are directly comparable.
type Identity struct {
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role"`
	SessionToken string `json:"sessionId,omitempty"`
}

// BackupRecord bridges a full console restart without a visible logout flash.
// It is written best-effort on shutdown and consumed (then cleared) by the
// next initialization; records older than the configured freshness window
// are ignored.
type BackupRecord struct {
	Version       int       `json:"version"`
	User          Identity  `json:"user"`
	Timestamp     time.Time `json:"timestamp"`
	Authenticated bool      `json:"authenticated"`
}

// backupRecordVersion is the current backup schema version. Version 0 records
// (written before the field existed) decode identically.
const backupRecordVersion = 1
