package goSession

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one reconciler counter.
type MetricID uint16

const (
	// MetricLoginSuccess counts logins the oracle confirmed.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts explicit credential rejections.
	MetricLoginFailure
	// MetricLoginValidation counts logins refused before any network call.
	MetricLoginValidation
	// MetricLoginTransportError counts logins lost to transport failures.
	MetricLoginTransportError
	// MetricLogout counts logout calls (including repeats).
	MetricLogout
	// MetricRestoreBackup counts initializations served by the backup slot.
	MetricRestoreBackup
	// MetricRestoreUser counts optimistic normal-slot restores.
	MetricRestoreUser
	// MetricRestoreBlocking counts initializations that had to block on the
	// oracle because nothing was persisted.
	MetricRestoreBlocking
	// MetricSilentCheckAdopted counts silent checks that adopted a new
	// identity from the oracle.
	MetricSilentCheckAdopted
	// MetricSilentCheckRevoked counts silent checks where the oracle
	// explicitly negated the session.
	MetricSilentCheckRevoked
	// MetricSilentCheckNoop counts silent checks that confirmed the current
	// identity unchanged.
	MetricSilentCheckNoop
	// MetricSilentCheckError counts silent checks swallowed on transport
	// failure, leaving state untouched.
	MetricSilentCheckError
	// MetricStaleEpochDiscard counts oracle responses discarded because an
	// explicit action superseded them mid-flight.
	MetricStaleEpochDiscard
	// MetricStoreCorrupt counts persisted slots cleared as unreadable.
	MetricStoreCorrupt
	// MetricRenewSuccess counts successful session renewals.
	MetricRenewSuccess
	// MetricRenewFailure counts renewals the oracle declined or lost.
	MetricRenewFailure
	// MetricOracleLatency is the oracle round-trip histogram id.
	MetricOracleLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds the reconciler's in-process counters. All methods are safe
// for concurrent use; a nil *Metrics is a valid no-op receiver.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of all counters and histograms.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics returns a metrics recorder honoring cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are being recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc increments a counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records an oracle round-trip duration.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricOracleLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value returns a single counter's current value.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter and histogram.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricOracleLatency].buckets[i])
		}
		s.Histograms[MetricOracleLatency] = buckets
	}

	return s
}

// bucketIndex maps a duration onto exponential buckets:
// <1ms, <4ms, <16ms, <64ms, <256ms, <1s, <4s, >=4s.
func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()
	switch {
	case ms < 1:
		return 0
	case ms < 4:
		return 1
	case ms < 16:
		return 2
	case ms < 64:
		return 3
	case ms < 256:
		return 4
	case ms < 1000:
		return 5
	case ms < 4000:
		return 6
	default:
		return 7
	}
}
