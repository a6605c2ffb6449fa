package goSession

import "context"

// SessionOracle is the remote authority on session validity. The HTTP
// implementation is [HTTPOracle]; tests substitute their own.
//
// Transport failures are reported through the error return. A non-nil error
// means "the oracle could not answer", never "the oracle said no": explicit
// rejection travels inside the reply values, and the reconciler treats the
// two very differently (errors never revoke local state).
type SessionOracle interface {
	// Login asks the oracle to establish a session for the credentials.
	Login(ctx context.Context, username, password string) (LoginReply, error)
	// Logout tears the server-side session down; best-effort by contract.
	Logout(ctx context.Context) error
	// Me answers the single authoritative question: is the current session
	// cookie valid, and for whom.
	Me(ctx context.Context) (MeReply, error)
	// Renew extends the server-side session lifetime.
	Renew(ctx context.Context) (bool, error)
}

// LoginReply is the oracle's answer to a credential presentation.
type LoginReply struct {
	Success bool
	// Message is the oracle's user-displayable rejection reason.
	Message  string
	Identity UserIdentity
}

// MeReply is the oracle's answer to "am I logged in".
type MeReply struct {
	Authenticated bool
	Identity      UserIdentity
}
