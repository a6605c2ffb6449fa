package internaldefs

import (
	goSession "github.com/campusauth/goSession"
)

// CounterDef binds a reconciler counter id to its exported metric name.
type CounterDef struct {
	ID   goSession.MetricID
	Name string
	Help string
}

// HistogramDef binds a reconciler histogram id to its exported metric name.
type HistogramDef struct {
	ID   goSession.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter, in a stable order shared by the
// Prometheus and OTel exporters.
var CounterDefs = []CounterDef{
	{ID: goSession.MetricLoginSuccess, Name: "gosession_login_success_total", Help: "Logins the oracle confirmed."},
	{ID: goSession.MetricLoginFailure, Name: "gosession_login_failure_total", Help: "Logins with explicitly rejected credentials."},
	{ID: goSession.MetricLoginValidation, Name: "gosession_login_validation_total", Help: "Logins refused before any network call."},
	{ID: goSession.MetricLoginTransportError, Name: "gosession_login_transport_error_total", Help: "Logins lost to transport failures."},
	{ID: goSession.MetricLogout, Name: "gosession_logout_total", Help: "Logout operations, including repeats."},
	{ID: goSession.MetricRestoreBackup, Name: "gosession_restore_backup_total", Help: "Initializations served by the fresh backup slot."},
	{ID: goSession.MetricRestoreUser, Name: "gosession_restore_user_total", Help: "Optimistic restores from the normal slot."},
	{ID: goSession.MetricRestoreBlocking, Name: "gosession_restore_blocking_total", Help: "Initializations that blocked on the remote check."},
	{ID: goSession.MetricSilentCheckAdopted, Name: "gosession_silent_check_adopted_total", Help: "Silent checks that adopted a refreshed identity."},
	{ID: goSession.MetricSilentCheckRevoked, Name: "gosession_silent_check_revoked_total", Help: "Silent checks where the oracle negated the session."},
	{ID: goSession.MetricSilentCheckNoop, Name: "gosession_silent_check_noop_total", Help: "Silent checks confirming the current identity unchanged."},
	{ID: goSession.MetricSilentCheckError, Name: "gosession_silent_check_error_total", Help: "Silent checks swallowed on transport error."},
	{ID: goSession.MetricStaleEpochDiscard, Name: "gosession_stale_epoch_discard_total", Help: "Oracle responses discarded by the epoch guard."},
	{ID: goSession.MetricStoreCorrupt, Name: "gosession_store_corrupt_total", Help: "Persisted slots cleared as unreadable."},
	{ID: goSession.MetricRenewSuccess, Name: "gosession_renew_success_total", Help: "Successful session renewals."},
	{ID: goSession.MetricRenewFailure, Name: "gosession_renew_failure_total", Help: "Renewals the oracle declined or lost."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: goSession.MetricOracleLatency, Name: "gosession_oracle_latency_seconds", Help: "Oracle round-trip latency histogram."},
}

// HistogramBounds are the upper bucket bounds, in seconds, matching the
// core's exponential milliseconds layout.
var HistogramBounds = []string{
	"0.001",
	"0.004",
	"0.016",
	"0.064",
	"0.256",
	"1",
	"4",
	"+Inf",
}

// HistogramBoundSuffix are metric-name-safe spellings of HistogramBounds.
var HistogramBoundSuffix = []string{
	"0_001",
	"0_004",
	"0_016",
	"0_064",
	"0_256",
	"1",
	"4",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form both
// exposition formats want.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
