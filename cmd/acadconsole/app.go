package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	goSession "github.com/campusauth/goSession"
	"github.com/campusauth/goSession/gate"
	"github.com/campusauth/goSession/internal/logging"
	"github.com/campusauth/goSession/persist"
	"github.com/campusauth/goSession/persist/filestore"
	"github.com/campusauth/goSession/persist/redisstore"
	"github.com/campusauth/goSession/records"
	"github.com/redis/go-redis/v9"
	"golang.org/x/term"
)

// app wires the reconciler, the records client, and the gate together for
// one CLI invocation. Initialize runs the restore paths exactly like a page
// load would, so a prior login survives across invocations via the
// persisted store.
type app struct {
	cfg     *consoleConfig
	auth    *goSession.Reconciler
	records *records.Client
	gate    *gate.Gate
}

func newApp(ctx context.Context, cfg *consoleConfig) (*app, error) {
	if cfg.ServerURL == "" {
		return nil, errors.New("server URL required (--server, ACAD_SERVER_URL, or config file)")
	}

	logging.Init(cfg.LogFormat, cfg.LogLevel, os.Stderr)

	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	oracle, err := goSession.NewHTTPOracle(goSession.HTTPOracleConfig{
		BaseURL: cfg.ServerURL,
		Logger:  logging.L("oracle"),
	})
	if err != nil {
		return nil, err
	}

	sessCfg := goSession.DefaultConfig()
	// A CLI invocation is short-lived; the delayed silent check would fire
	// after exit, so confirm optimistic restores promptly instead.
	sessCfg.Restore.SilentCheckDelay = time.Second
	sessCfg.Heartbeat.Enabled = false

	auth, err := goSession.New().
		WithConfig(sessCfg).
		WithStore(store).
		WithOracle(oracle).
		WithLogger(logging.L("session")).
		Build()
	if err != nil {
		return nil, err
	}

	if err := auth.Initialize(ctx); err != nil {
		return nil, err
	}

	recClient, err := records.NewClient(records.ClientConfig{
		BaseURL: cfg.ServerURL,
		Client:  oracle.Client(),
		Logger:  logging.L("records"),
	})
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, auth: auth, records: recClient}
	a.gate = gate.New(auth, a.promptLogin)
	return a, nil
}

func (a *app) close() {
	a.auth.Close()
}

func buildStore(cfg *consoleConfig) (persist.Store, error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return redisstore.New(client, redisstore.Config{
			Profile:   cfg.Profile,
			BackupTTL: 10 * time.Minute,
		})
	}
	return filestore.New(cfg.StateDir)
}

// promptLogin asks for credentials on the terminal and runs one login
// attempt. The gate calls it at most once per guarded action, which is the
// CLI's single-in-flight login discipline.
func (a *app) promptLogin(ctx context.Context) error {
	username, password, err := readCredentials()
	if err != nil {
		return err
	}

	result, err := a.auth.Login(ctx, username, password)
	if err != nil {
		if result.Message != "" {
			fmt.Fprintln(os.Stderr, result.Message)
		}
		return err
	}
	fmt.Fprintf(os.Stderr, "Signed in as %s (%s)\n", result.User.FullName, result.User.Role)
	return nil
}

func readCredentials() (string, string, error) {
	fmt.Fprint(os.Stderr, "Username: ")
	reader := bufio.NewReader(os.Stdin)
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	username = strings.TrimSpace(username)

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(syscall.Stdin)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", "", err
	}
	return username, string(password), nil
}
