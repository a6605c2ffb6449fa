package gate

import (
	"context"
	"errors"
	"testing"

	goSession "github.com/campusauth/goSession"
	"github.com/campusauth/goSession/persist/memstore"
)

type scriptedOracle struct {
	identity goSession.UserIdentity
	accept   bool
}

func (o *scriptedOracle) Login(_ context.Context, _, _ string) (goSession.LoginReply, error) {
	if !o.accept {
		return goSession.LoginReply{Success: false, Message: "rechazado"}, nil
	}
	return goSession.LoginReply{Success: true, Identity: o.identity}, nil
}

func (o *scriptedOracle) Logout(context.Context) error { return nil }

func (o *scriptedOracle) Me(context.Context) (goSession.MeReply, error) {
	return goSession.MeReply{Authenticated: false}, nil
}

func (o *scriptedOracle) Renew(context.Context) (bool, error) { return false, nil }

func newGateReconciler(t *testing.T, oracle goSession.SessionOracle) *goSession.Reconciler {
	t.Helper()

	cfg := goSession.DefaultConfig()
	cfg.Heartbeat.Enabled = false

	r, err := goSession.New().
		WithConfig(cfg).
		WithStore(memstore.New()).
		WithOracle(oracle).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(r.Close)

	if err := r.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return r
}

func login(t *testing.T, r *goSession.Reconciler) {
	t.Helper()
	if _, err := r.Login(context.Background(), "ana", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func adminOracle() *scriptedOracle {
	return &scriptedOracle{
		accept: true,
		identity: goSession.UserIdentity{
			Username: "ana",
			FullName: "Ana García",
			Role:     "ADMIN",
		},
	}
}

func TestRequireRunsActionWhenAuthenticated(t *testing.T) {
	r := newGateReconciler(t, adminOracle())
	login(t, r)

	g := New(r, nil)
	ran := false
	err := g.Require(context.Background(), func(context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("Require: %v", err)
	}
	if !ran {
		t.Fatalf("action did not run")
	}
}

func TestRequireWithoutPromptRefuses(t *testing.T) {
	r := newGateReconciler(t, adminOracle())

	g := New(r, nil)
	err := g.Require(context.Background(), func(context.Context) error {
		t.Errorf("action must not run on a refused gate")
		return nil
	})
	if !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
}

func TestRequirePromptsOnceAndRunsAction(t *testing.T) {
	r := newGateReconciler(t, adminOracle())

	prompts := 0
	g := New(r, func(ctx context.Context) error {
		prompts++
		_, err := r.Login(ctx, "ana", "pw")
		return err
	})

	ran := false
	err := g.Require(context.Background(), func(context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("Require: %v", err)
	}
	if !ran {
		t.Fatalf("action did not run after prompt")
	}
	if prompts != 1 {
		t.Fatalf("expected exactly 1 prompt, got %d", prompts)
	}

	// Second call rides the established session, no new prompt.
	if err := g.Require(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("second Require: %v", err)
	}
	if prompts != 1 {
		t.Fatalf("prompt invoked again on an authenticated gate")
	}
}

func TestRequireFailedPromptJoinsCause(t *testing.T) {
	oracle := adminOracle()
	oracle.accept = false
	r := newGateReconciler(t, oracle)

	promptErr := errors.New("credenciales rechazadas")
	g := New(r, func(context.Context) error { return promptErr })

	err := g.Require(context.Background(), func(context.Context) error {
		t.Errorf("action must not run after a failed prompt")
		return nil
	})
	if !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
	if !errors.Is(err, promptErr) {
		t.Fatalf("prompt cause lost: %v", err)
	}
}

func TestRequirePromptThatDoesNotAuthenticateRefuses(t *testing.T) {
	r := newGateReconciler(t, adminOracle())

	// A prompt that "succeeds" but leaves no session behind.
	g := New(r, func(context.Context) error { return nil })

	err := g.Require(context.Background(), func(context.Context) error {
		t.Errorf("action must not run without a session")
		return nil
	})
	if !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	r := newGateReconciler(t, adminOracle())
	login(t, r)
	g := New(r, nil)

	if err := g.RequireRole(context.Background(), []string{"ADMIN"}, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("listed role refused: %v", err)
	}

	if err := g.RequireRole(context.Background(), nil, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("empty role list must only require authentication: %v", err)
	}

	err := g.RequireRole(context.Background(), []string{"SUPERVISOR"}, func(context.Context) error {
		t.Errorf("action must not run for an unlisted role")
		return nil
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireActionErrorPassesThrough(t *testing.T) {
	r := newGateReconciler(t, adminOracle())
	login(t, r)
	g := New(r, nil)

	actionErr := errors.New("backend caído")
	err := g.Require(context.Background(), func(context.Context) error { return actionErr })
	if !errors.Is(err, actionErr) {
		t.Fatalf("action error swallowed: %v", err)
	}
}
