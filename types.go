package goSession

// AuthState is the reconciler's position in the session lifecycle.
//
// StateRestoring and StateReconciling are transitional: subscribers are only
// notified on committed transitions into StateAuthenticated or
// StateUnauthenticated.
type AuthState uint8

const (
	// StateUninitialized is the state before Initialize has been called.
	StateUninitialized AuthState = iota
	// StateRestoring is the state while persisted slots are being read.
	StateRestoring
	// StateAuthenticated is the state with a current identity adopted.
	StateAuthenticated
	// StateUnauthenticated is the state with no current identity.
	StateUnauthenticated
	// StateReconciling is the state during a blocking remote check with
	// nothing persisted to restore from.
	StateReconciling
)

// String implements fmt.Stringer for log and audit output.
func (s AuthState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateReconciling:
		return "reconciling"
	default:
		return "unknown"
	}
}

// UserIdentity is the immutable identity snapshot the reconciler holds while a
// session is current. Username is the primary identity key; Role is an open
// set and unknown values pass through for display. SessionToken is an opaque
// server-issued token (when the oracle issues JWTs, the token package can read
// its expiry to drive renewal; it is never verified client-side).
type UserIdentity struct {
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role"`
	SessionToken string `json:"sessionId,omitempty"`
}

// Equal reports whether two identities refer to the same authenticated user
// for reconciliation purposes. The session token is deliberately excluded:
// the oracle's /auth/me answer carries no token, and a token rotation alone
// must not trigger a notification storm.
func (u UserIdentity) Equal(other UserIdentity) bool {
	return u.Username == other.Username &&
		u.FullName == other.FullName &&
		u.Email == other.Email &&
		u.Role == other.Role
}

// LoginResult is returned by [Reconciler.Login]. When OK is false, Message
// carries a user-displayable reason (inline form error, never a dialog).
type LoginResult struct {
	OK      bool
	Message string
	User    *UserIdentity
}

// AuthCallback receives every committed auth transition. The user pointer is
// a copy owned by the callback; it is nil exactly when authenticated is false.
type AuthCallback func(authenticated bool, user *UserIdentity)
