package goSession

import (
	"context"
	"testing"
	"time"

	"github.com/campusauth/goSession/persist/memstore"
)

func BenchmarkLoginLogoutCycle(b *testing.B) {
	oracle := &mockOracle{
		loginFn: acceptLogin("ana", "pw", testIdentity("ana")),
	}
	r, err := New().
		WithConfig(reconcilerTestConfig()).
		WithStore(memstore.New()).
		WithOracle(oracle).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		b.Fatalf("Build: %v", err)
	}
	defer r.Close()

	if err := r.Initialize(context.Background()); err != nil {
		b.Fatalf("Initialize: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Login(context.Background(), "ana", "pw"); err != nil {
			b.Fatalf("Login: %v", err)
		}
		if err := r.Logout(context.Background()); err != nil {
			b.Fatalf("Logout: %v", err)
		}
	}
}

func BenchmarkCheckSessionSilently(b *testing.B) {
	oracle := &mockOracle{
		loginFn: acceptLogin("ana", "pw", testIdentity("ana")),
		meFn:    authenticatedMe(testIdentity("ana")),
	}
	r, err := New().
		WithConfig(reconcilerTestConfig()).
		WithStore(memstore.New()).
		WithOracle(oracle).
		Build()
	if err != nil {
		b.Fatalf("Build: %v", err)
	}
	defer r.Close()

	if err := r.Initialize(context.Background()); err != nil {
		b.Fatalf("Initialize: %v", err)
	}
	if _, err := r.Login(context.Background(), "ana", "pw"); err != nil {
		b.Fatalf("Login: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.CheckSessionSilently(context.Background())
	}
}

func BenchmarkStateReads(b *testing.B) {
	oracle := &mockOracle{
		loginFn: acceptLogin("ana", "pw", testIdentity("ana")),
	}
	r, err := New().
		WithConfig(reconcilerTestConfig()).
		WithStore(memstore.New()).
		WithOracle(oracle).
		Build()
	if err != nil {
		b.Fatalf("Build: %v", err)
	}
	defer r.Close()

	if err := r.Initialize(context.Background()); err != nil {
		b.Fatalf("Initialize: %v", err)
	}
	if _, err := r.Login(context.Background(), "ana", "pw"); err != nil {
		b.Fatalf("Login: %v", err)
	}

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if !r.IsAuthenticated() {
				b.Errorf("expected authenticated")
			}
			_ = r.CurrentUser()
			_ = r.State()
		}
	})
}

func BenchmarkMetricsInc(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Inc(MetricSilentCheckNoop)
		}
	})
}

func BenchmarkMetricsObserve(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Observe(MetricOracleLatency, 3*time.Millisecond)
	}
}
