package goSession

import (
	"errors"
	"log/slog"

	"github.com/campusauth/goSession/persist"
	"github.com/campusauth/goSession/token"
)

// Builder assembles a [Reconciler]. Construction is allocation-only; no I/O
// happens until [Reconciler.Initialize]. There is deliberately no package
// level singleton: every consumer receives the built instance explicitly.
type Builder struct {
	config Config

	store  persist.Store
	oracle SessionOracle

	auditSink AuditSink
	logger    *slog.Logger

	built bool
}

// New returns a builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStore sets the durable persisted store (required).
func (b *Builder) WithStore(store persist.Store) *Builder {
	b.store = store
	return b
}

// WithOracle sets the remote session oracle (required).
func (b *Builder) WithOracle(oracle SessionOracle) *Builder {
	b.oracle = oracle
	return b
}

// WithAuditSink sets the sink receiving audit events when audit is enabled.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger sets the structured logger; defaults to slog.Default.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetricsEnabled toggles metric counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the oracle latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and returns the reconciler in
// [StateUninitialized]. A builder can be used once.
func (b *Builder) Build() (*Reconciler, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.store == nil {
		return nil, errors.New("persisted store required")
	}
	if b.oracle == nil {
		return nil, errors.New("session oracle required")
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Reconciler{
		config:    cfg,
		store:     b.store,
		oracle:    b.oracle,
		logger:    logger,
		audit:     newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:   NewMetrics(cfg.Metrics),
		inspector: token.NewInspector(),
		state:     StateUninitialized,
	}

	b.built = true

	return r, nil
}
