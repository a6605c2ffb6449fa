package goSession

import (
	"testing"
	"time"

	"github.com/campusauth/goSession/persist/memstore"
)

func TestBuilderRequiresStore(t *testing.T) {
	_, err := New().
		WithOracle(&mockOracle{}).
		Build()
	if err == nil {
		t.Fatalf("expected error without a store")
	}
}

func TestBuilderRequiresOracle(t *testing.T) {
	_, err := New().
		WithStore(memstore.New()).
		Build()
	if err == nil {
		t.Fatalf("expected error without an oracle")
	}
}

func TestBuilderRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Oracle.RequestTimeout = 0

	_, err := New().
		WithConfig(cfg).
		WithStore(memstore.New()).
		WithOracle(&mockOracle{}).
		Build()
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestBuilderUsableOnce(t *testing.T) {
	b := New().
		WithStore(memstore.New()).
		WithOracle(&mockOracle{})

	r, err := b.Build()
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	defer r.Close()

	if _, err := b.Build(); err == nil {
		t.Fatalf("second Build on the same builder must fail")
	}
}

func TestBuilderConfigIsolatedFromCaller(t *testing.T) {
	cfg := DefaultConfig()
	b := New().
		WithConfig(cfg).
		WithStore(memstore.New()).
		WithOracle(&mockOracle{})

	// Mutating the caller copy after WithConfig must not reach the builder.
	cfg.Oracle.RequestTimeout = -time.Second

	r, err := b.Build()
	if err != nil {
		t.Fatalf("Build picked up caller mutation: %v", err)
	}
	r.Close()
}

func TestBuilderStartsUninitialized(t *testing.T) {
	r, err := New().
		WithStore(memstore.New()).
		WithOracle(&mockOracle{}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer r.Close()

	if got := r.State(); got != StateUninitialized {
		t.Fatalf("expected %v, got %v", StateUninitialized, got)
	}
	if r.IsAuthenticated() {
		t.Fatalf("fresh reconciler must not report authenticated")
	}
	if r.CurrentUser() != nil {
		t.Fatalf("fresh reconciler must not report a user")
	}
}
