// Command acadsess-loadtest measures session restore and silent-check
// throughput against a Redis-backed persisted store. With no -redis-addr it
// spins up an in-process miniredis, so the numbers isolate the library and
// store path from network noise.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	goSession "github.com/campusauth/goSession"
	"github.com/campusauth/goSession/persist"
	"github.com/campusauth/goSession/persist/redisstore"
)

// stubOracle answers every check as the seeded identity without leaving the
// process. Login is unused here; the load phases exercise restore and silent
// reconciliation, not credential exchange.
type stubOracle struct {
	identity goSession.UserIdentity
}

func (o *stubOracle) Login(context.Context, string, string) (goSession.LoginReply, error) {
	return goSession.LoginReply{Success: true, Identity: o.identity}, nil
}

func (o *stubOracle) Logout(context.Context) error { return nil }

func (o *stubOracle) Me(context.Context) (goSession.MeReply, error) {
	return goSession.MeReply{Authenticated: true, Identity: o.identity}, nil
}

func (o *stubOracle) Renew(context.Context) (bool, error) { return true, nil }

func main() {
	var (
		operators   = flag.Int("operators", 1000, "number of operator profiles to seed")
		ops         = flag.Int("ops", 50000, "operations per phase (restore + check)")
		concurrency = flag.Int("concurrency", 64, "number of concurrent workers")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "acadsess", "persisted store key prefix")
	)
	flag.Parse()

	if *operators <= 0 || *ops <= 0 || *concurrency <= 0 {
		fmt.Fprintln(os.Stderr, "operators, ops, and concurrency must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	fmt.Printf("seeding %d operator profiles...\n", *operators)
	startSeed := time.Now()
	stores := make([]persist.Store, *operators)
	for i := 0; i < *operators; i++ {
		store, err := redisstore.New(client, redisstore.Config{
			Prefix:  *prefix,
			Profile: fmt.Sprintf("op-%d", i),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "store setup failed: %v\n", err)
			os.Exit(1)
		}
		data, err := persist.EncodeIdentity(persist.Identity(identityFor(i)))
		if err != nil {
			fmt.Fprintf(os.Stderr, "encode failed: %v\n", err)
			os.Exit(1)
		}
		if err := store.Set(ctx, persist.SlotUser, data); err != nil {
			fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
			os.Exit(1)
		}
		stores[i] = store
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	restoreStats := runRestorePhase(ctx, stores, *ops, *concurrency)
	checkStats := runCheckPhase(ctx, stores, *ops, *concurrency)

	fmt.Println("---- results ----")
	printStats("restore", restoreStats)
	printStats("check", checkStats)
}

// runRestorePhase measures cold starts: each operation builds a reconciler
// over an already-seeded profile and times Initialize, the optimistic
// user-slot restore path.
func runRestorePhase(ctx context.Context, stores []persist.Store, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := i % len(stores)

				r, err := newReconciler(stores[idx], identityFor(idx))
				if err != nil {
					atomic.AddInt64(&failures, 1)
					continue
				}
				t0 := time.Now()
				err = r.Initialize(ctx)
				d := time.Since(t0)
				if err != nil || !r.IsAuthenticated() {
					atomic.AddInt64(&failures, 1)
				}
				r.Close()

				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return computeStats(time.Since(start), latencies, failures)
}

// runCheckPhase measures steady state: long-lived reconcilers answering
// silent revalidation over and over.
func runCheckPhase(ctx context.Context, stores []persist.Store, ops, concurrency int) phaseStats {
	reconcilers := make([]*goSession.Reconciler, concurrency)
	for w := 0; w < concurrency; w++ {
		idx := w % len(stores)
		r, err := newReconciler(stores[idx], identityFor(idx))
		if err != nil {
			fmt.Fprintf(os.Stderr, "reconciler setup failed: %v\n", err)
			os.Exit(1)
		}
		if err := r.Initialize(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "initialize failed: %v\n", err)
			os.Exit(1)
		}
		reconcilers[w] = r
	}
	defer func() {
		for _, r := range reconcilers {
			r.Close()
		}
	}()

	var (
		wg        sync.WaitGroup
		cursor    int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(r *goSession.Reconciler) {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				r.CheckSessionSilently(ctx)
				d := time.Since(t0)

				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(reconcilers[w])
	}
	wg.Wait()
	return computeStats(time.Since(start), latencies, 0)
}

func newReconciler(store persist.Store, identity goSession.UserIdentity) (*goSession.Reconciler, error) {
	cfg := goSession.DefaultConfig()
	cfg.Heartbeat.Enabled = false

	return goSession.New().
		WithConfig(cfg).
		WithStore(store).
		WithOracle(&stubOracle{identity: identity}).
		Build()
}

func identityFor(i int) goSession.UserIdentity {
	return goSession.UserIdentity{
		Username: fmt.Sprintf("op-%d", i),
		FullName: fmt.Sprintf("Operador %d", i),
		Role:     "ADMIN",
	}
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
