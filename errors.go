package goSession

import "errors"

var (
	// ErrValidation is returned by Login when username or password is empty;
	// no network call is made.
	ErrValidation = errors.New("username and password are required")
	// ErrInvalidCredentials is returned by Login when the oracle explicitly
	// rejects the credentials. Local state is untouched.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrOracleUnreachable is returned when a transport failure prevents the
	// oracle from answering at all. Local state is untouched.
	ErrOracleUnreachable = errors.New("session oracle unreachable")
	// ErrAlreadyInitialized is returned by Initialize after the first call.
	ErrAlreadyInitialized = errors.New("reconciler already initialized")
	// ErrNotInitialized is returned by operations that require Initialize
	// to have run first.
	ErrNotInitialized = errors.New("reconciler not initialized")
	// ErrReconcilerClosed is returned after Close.
	ErrReconcilerClosed = errors.New("reconciler closed")
)
