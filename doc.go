// Package goSession provides the session reconciliation engine for the academic
// records administration console: a client-side authority over "who is logged in"
// that reconciles a durable persisted store, a remote session oracle, and explicit
// login/logout actions into one consistent, observable auth state.
//
// The package is designed for event-driven client workloads: Reconciler methods are
// safe to call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goSession is the public surface. It exposes [Reconciler], [Builder], [Config],
// and value types (UserIdentity, LoginResult, AuditEvent, MetricsSnapshot). Durable
// persistence lives behind the persist.Store interface, remote confirmation behind
// [SessionOracle], and neither is trusted alone: the persisted store may be adopted
// optimistically for rendering, but the oracle remains the single authority for
// session validity.
//
// # What this package must NOT do
//
//   - Verify credentials or session cookies itself (the oracle owns that).
//   - Trust the persisted store for anything beyond optimistic restore.
//   - Log a user out because of a transport error; only an explicit negative
//     answer from the oracle revokes local state.
//   - Render anything. UI gating belongs to the gate package and its consumers.
//
// # Ordering contract
//
// Optimistic restore commits and notifies subscribers before any asynchronous
// remote confirmation is even issued, so a user with a valid persisted session
// never sees an unauthenticated flash on a slow network. Responses from oracle
// calls that predate the latest explicit login, logout, or Close are discarded
// by a monotonic epoch counter.
package goSession
