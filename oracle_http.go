package goSession

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// HTTPOracle talks to the console backend's auth endpoints over JSON:
//
//	POST <base>/auth/login   {username, password}
//	POST <base>/auth/logout
//	GET  <base>/auth/me
//	POST <base>/auth/renew
//
// Session establishment is cookie-based and opaque to the reconciler: the
// oracle owns a cookie jar and every request rides it, which is the Go
// rendering of the original console's credentials-included fetch calls.
type HTTPOracle struct {
	base   *url.URL
	client *http.Client
	logger *slog.Logger
}

// HTTPOracleConfig configures [NewHTTPOracle].
type HTTPOracleConfig struct {
	// BaseURL is the API root, e.g. "https://acad.example.edu/api".
	BaseURL string
	// Timeout is the per-request transport timeout (default 10s). Ignored
	// when Client is supplied.
	Timeout time.Duration
	// Client overrides the HTTP client. It must carry a cookie jar, or
	// session cookies will be lost between calls.
	Client *http.Client
	// Logger receives transport-level debug logs; defaults to slog.Default.
	Logger *slog.Logger
}

// NewHTTPOracle builds an oracle with its own cookie jar unless a client is
// supplied.
func NewHTTPOracle(cfg HTTPOracleConfig) (*HTTPOracle, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("oracle BaseURL is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("oracle BaseURL invalid: %w", err)
	}

	client := cfg.Client
	if client == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Jar: jar, Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPOracle{base: base, client: client, logger: logger}, nil
}

// Client exposes the underlying HTTP client so other API consumers (the
// records client) can share the session cookie jar.
func (o *HTTPOracle) Client() *http.Client {
	return o.client
}

type loginWire struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	SessionID string `json:"sessionId"`
}

type meWire struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Role          string `json:"role"`
}

type renewWire struct {
	Success bool `json:"success"`
}

// Login implements SessionOracle.
func (o *HTTPOracle) Login(ctx context.Context, username, password string) (LoginReply, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return LoginReply{}, err
	}

	var wire loginWire
	// The backend answers 401 with a JSON body on bad credentials; both 2xx
	// and 401 are oracle answers, not transport failures.
	if err := o.do(ctx, http.MethodPost, "/auth/login", body, &wire, http.StatusUnauthorized); err != nil {
		return LoginReply{}, err
	}

	reply := LoginReply{Success: wire.Success, Message: wire.Message}
	if wire.Success {
		reply.Identity = UserIdentity{
			Username:     wire.Username,
			FullName:     wire.FullName,
			Email:        wire.Email,
			Role:         wire.Role,
			SessionToken: wire.SessionID,
		}
	}
	return reply, nil
}

// Logout implements SessionOracle.
func (o *HTTPOracle) Logout(ctx context.Context) error {
	return o.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Me implements SessionOracle.
func (o *HTTPOracle) Me(ctx context.Context) (MeReply, error) {
	var wire meWire
	if err := o.do(ctx, http.MethodGet, "/auth/me", nil, &wire); err != nil {
		return MeReply{}, err
	}

	reply := MeReply{Authenticated: wire.Authenticated}
	if wire.Authenticated {
		reply.Identity = UserIdentity{
			Username: wire.Username,
			FullName: wire.FullName,
			Email:    wire.Email,
			Role:     wire.Role,
		}
	}
	return reply, nil
}

// Renew implements SessionOracle.
func (o *HTTPOracle) Renew(ctx context.Context) (bool, error) {
	var wire renewWire
	if err := o.do(ctx, http.MethodPost, "/auth/renew", nil, &wire); err != nil {
		return false, err
	}
	return wire.Success, nil
}

func (o *HTTPOracle) do(ctx context.Context, method, path string, body []byte, out any, acceptStatuses ...int) error {
	ctx, requestID := ensureRequestID(ctx)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, o.base.String()+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOracleUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := o.client.Do(req)
	if err != nil {
		o.logger.Debug("oracle request failed",
			"method", method, "path", path, "requestId", requestID, "error", err)
		return fmt.Errorf("%w: %v", ErrOracleUnreachable, err)
	}
	defer resp.Body.Close()

	o.logger.Debug("oracle request",
		"method", method, "path", path, "requestId", requestID,
		"status", resp.StatusCode, "durationMs", time.Since(start).Milliseconds())

	accepted := resp.StatusCode >= 200 && resp.StatusCode < 300
	for _, s := range acceptStatuses {
		if resp.StatusCode == s {
			accepted = true
		}
	}
	if !accepted {
		return fmt.Errorf("%w: unexpected status %d", ErrOracleUnreachable, resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrOracleUnreachable, err)
	}
	return nil
}
