// Package prometheus renders reconciler metrics in Prometheus text
// exposition format.
//
// [NewPrometheusExporter] accepts a [goSession.Reconciler] and exposes an
// [http.Handler] serving all counters and histograms. Counter names are
// prefixed gosession_*_total; the single histogram is
// gosession_oracle_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the
//     Handler.
//   - Mutate reconciler state.
package prometheus
