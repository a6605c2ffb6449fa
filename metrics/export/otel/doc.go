// Package otel provides OpenTelemetry metric exporter bindings for the
// reconciler's counters and histograms.
//
// [NewOTelExporter] registers an Int64ObservableCounter per counter and an
// Int64ObservableGauge per histogram bucket. A single callback reads
// [goSession.Reconciler.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate reconciler state.
package otel
