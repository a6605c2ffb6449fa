package goSession

import (
	"errors"
	"time"
)

// Config groups every tunable of the reconciler. Build a baseline with
// [DefaultConfig], adjust, and hand it to [Builder.WithConfig]; Build calls
// Validate and refuses inconsistent settings.
type Config struct {
	Oracle    OracleConfig
	Restore   RestoreConfig
	Heartbeat HeartbeatConfig
	Renew     RenewConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
ORACLE CONFIG
====================================
*/

// OracleConfig bounds the reconciler's own calls to the session oracle.
// It does not configure the transport itself; see [NewHTTPOracle] for that.
type OracleConfig struct {
	// RequestTimeout caps background oracle calls (silent checks, renewals,
	// fire-and-forget logout) that run without a caller-supplied deadline.
	RequestTimeout time.Duration
}

/*
====================================
RESTORE CONFIG
====================================
*/

// RestoreConfig governs the page-load restore decision tree.
type RestoreConfig struct {
	// BackupFreshness is the maximum age of a backup-slot record before it
	// is considered stale and ignored.
	BackupFreshness time.Duration
	// SilentCheckDelay postpones the silent confirmation scheduled after an
	// optimistic normal-slot restore, leaving the rest of the console time
	// to finish bootstrapping. Must be at least one second.
	SilentCheckDelay time.Duration
}

/*
====================================
HEARTBEAT CONFIG
====================================
*/

// HeartbeatConfig drives periodic silent revalidation while authenticated.
type HeartbeatConfig struct {
	Enabled  bool
	Interval time.Duration
}

/*
====================================
RENEW CONFIG
====================================
*/

// RenewConfig enables renew-before-expiry when the oracle issues session
// tokens whose expiry the token package can read. With an opaque token the
// heartbeat simply never finds an expiry and renewal stays dormant.
type RenewConfig struct {
	Enabled bool
	// Window is how close to token expiry a heartbeat tick must be before
	// it also issues a renewal call.
	Window time.Duration
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the asynchronous audit event dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking the engine when the
	// buffer is full; drops are counted and observable via Dropped.
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled bool
	// EnableLatencyHistograms additionally records oracle round-trip
	// latency buckets.
	EnableLatencyHistograms bool
}

// DefaultConfig returns the production defaults: five-minute backup
// freshness, a two-second post-restore confirmation delay, and a five-minute
// heartbeat. Audit and metrics are opt-in.
func DefaultConfig() Config {
	return Config{
		Oracle: OracleConfig{
			RequestTimeout: 10 * time.Second,
		},
		Restore: RestoreConfig{
			BackupFreshness:  5 * time.Minute,
			SilentCheckDelay: 2 * time.Second,
		},
		Heartbeat: HeartbeatConfig{
			Enabled:  true,
			Interval: 5 * time.Minute,
		},
		Renew: RenewConfig{
			Enabled: false,
			Window:  10 * time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are values today; the copy is kept behind a helper so a
	// future reference-typed field has one place to deep-copy.
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Oracle.RequestTimeout <= 0 {
		return errors.New("Oracle RequestTimeout must be > 0")
	}

	if c.Restore.BackupFreshness <= 0 {
		return errors.New("Restore BackupFreshness must be > 0")
	}
	if c.Restore.SilentCheckDelay < time.Second {
		return errors.New("Restore SilentCheckDelay must be >= 1s")
	}

	if c.Heartbeat.Enabled {
		if c.Heartbeat.Interval <= 0 {
			return errors.New("Heartbeat Interval must be > 0 when heartbeat is enabled")
		}
	}

	if c.Renew.Enabled {
		if c.Renew.Window <= 0 {
			return errors.New("Renew Window must be > 0 when renewal is enabled")
		}
		if !c.Heartbeat.Enabled {
			return errors.New("Renew requires Heartbeat to be enabled")
		}
	}

	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
