// Package gate guards actions behind the reconciler's auth state.
//
// The guard never runs an action first and cleans up after; it checks the
// state up front and, when unauthenticated, gives the configured prompt one
// chance to establish a session before refusing. A failed prompt leaves any
// existing state untouched.
package gate

import (
	"context"
	"errors"

	goSession "github.com/campusauth/goSession"
)

var (
	// ErrLoginRequired means the action was not run because no session is
	// established and the prompt did not establish one.
	ErrLoginRequired = errors.New("gate: login required")
	// ErrForbidden means a session exists but its role is not allowed.
	ErrForbidden = errors.New("gate: role not allowed")
)

// PromptFunc asks the user for credentials and attempts a login. It returns
// nil when a session was established.
type PromptFunc func(ctx context.Context) error

// Gate wraps a reconciler and guards actions on its state.
type Gate struct {
	auth   *goSession.Reconciler
	prompt PromptFunc
}

// New builds a gate. prompt may be nil, in which case an unauthenticated
// caller is refused without interaction.
func New(auth *goSession.Reconciler, prompt PromptFunc) *Gate {
	return &Gate{auth: auth, prompt: prompt}
}

// Require runs action only when a session is established, prompting once if
// it is not. The action never runs on a refused gate.
func (g *Gate) Require(ctx context.Context, action func(ctx context.Context) error) error {
	if err := g.ensureAuthenticated(ctx); err != nil {
		return err
	}
	return action(ctx)
}

// RequireRole is Require plus a role check. An empty role list only
// requires authentication.
func (g *Gate) RequireRole(ctx context.Context, roles []string, action func(ctx context.Context) error) error {
	if err := g.ensureAuthenticated(ctx); err != nil {
		return err
	}
	if !g.auth.CanAccess(roles) {
		return ErrForbidden
	}
	return action(ctx)
}

func (g *Gate) ensureAuthenticated(ctx context.Context) error {
	if g.auth.IsAuthenticated() {
		return nil
	}
	if g.prompt == nil {
		return ErrLoginRequired
	}
	if err := g.prompt(ctx); err != nil {
		return errors.Join(ErrLoginRequired, err)
	}
	if !g.auth.IsAuthenticated() {
		return ErrLoginRequired
	}
	return nil
}
