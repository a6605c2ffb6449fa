package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnauthorized means the backend rejected the request for lack of a
	// valid session. The caller's auth gate decides what happens next.
	ErrUnauthorized = errors.New("records: not authenticated")
	// ErrNotFound means the addressed resource does not exist.
	ErrNotFound = errors.New("records: not found")
	// ErrUnavailable means the backend could not be reached or answered
	// outside its contract.
	ErrUnavailable = errors.New("records: backend unavailable")
)

// Client talks to the records REST API. Construct it with the session
// oracle's HTTP client so both share one cookie jar.
type Client struct {
	base   *url.URL
	client *http.Client
	logger *slog.Logger
}

// ClientConfig configures [NewClient].
type ClientConfig struct {
	// BaseURL is the API root, e.g. "https://acad.example.edu/api".
	BaseURL string
	// Client is the HTTP client carrying the session cookie jar (required).
	Client *http.Client
	// Logger receives transport-level debug logs; defaults to slog.Default.
	Logger *slog.Logger
}

// NewClient builds a records client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("records BaseURL is required")
	}
	if cfg.Client == nil {
		return nil, errors.New("records HTTP client is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("records BaseURL invalid: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{base: base, client: cfg.Client, logger: logger}, nil
}

/*============================================================
  Students
============================================================*/

func (c *Client) ListStudents(ctx context.Context) ([]Student, error) {
	var out []Student
	err := c.do(ctx, http.MethodGet, "/api/estudiantes", nil, &out)
	return out, err
}

func (c *Client) GetStudent(ctx context.Context, id int) (Student, error) {
	var out Student
	err := c.do(ctx, http.MethodGet, "/api/estudiantes/"+strconv.Itoa(id), nil, &out)
	return out, err
}

func (c *Client) CreateStudent(ctx context.Context, s Student) (Student, error) {
	var out Student
	err := c.do(ctx, http.MethodPost, "/api/estudiantes", s, &out)
	return out, err
}

func (c *Client) UpdateStudent(ctx context.Context, id int, s Student) (Student, error) {
	var out Student
	err := c.do(ctx, http.MethodPut, "/api/estudiantes/"+strconv.Itoa(id), s, &out)
	return out, err
}

func (c *Client) DeleteStudent(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/estudiantes/"+strconv.Itoa(id), nil, nil)
}

/*============================================================
  Professors
============================================================*/

func (c *Client) ListProfessors(ctx context.Context) ([]Professor, error) {
	var out []Professor
	err := c.do(ctx, http.MethodGet, "/api/profesores", nil, &out)
	return out, err
}

func (c *Client) GetProfessor(ctx context.Context, id string) (Professor, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Professor{}, fmt.Errorf("%w: professor id %q is not a uuid", ErrNotFound, id)
	}
	var out Professor
	err := c.do(ctx, http.MethodGet, "/api/profesores/"+id, nil, &out)
	return out, err
}

func (c *Client) CreateProfessor(ctx context.Context, p Professor) (Professor, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	var out Professor
	err := c.do(ctx, http.MethodPost, "/api/profesores", p, &out)
	return out, err
}

func (c *Client) UpdateProfessor(ctx context.Context, id string, p Professor) (Professor, error) {
	var out Professor
	err := c.do(ctx, http.MethodPut, "/api/profesores/"+id, p, &out)
	return out, err
}

func (c *Client) DeleteProfessor(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/profesores/"+id, nil, nil)
}

// Server-side professor searches offered by the backend.

func (c *Client) ActiveProfessors(ctx context.Context) ([]Professor, error) {
	var out []Professor
	err := c.do(ctx, http.MethodGet, "/api/profesores/activos", nil, &out)
	return out, err
}

func (c *Client) ProfessorsBySpecialty(ctx context.Context, specialty string) ([]Professor, error) {
	var out []Professor
	err := c.do(ctx, http.MethodGet, "/api/profesores/especialidad/"+url.PathEscape(specialty), nil, &out)
	return out, err
}

func (c *Client) ProfessorsByDegree(ctx context.Context, degree string) ([]Professor, error) {
	var out []Professor
	err := c.do(ctx, http.MethodGet, "/api/profesores/grado/"+url.PathEscape(degree), nil, &out)
	return out, err
}

func (c *Client) ProfessorsByMinExperience(ctx context.Context, years int) ([]Professor, error) {
	var out []Professor
	err := c.do(ctx, http.MethodGet, "/api/profesores/experiencia/"+strconv.Itoa(years), nil, &out)
	return out, err
}

func (c *Client) ProfessorByEmail(ctx context.Context, email string) (Professor, error) {
	var out Professor
	err := c.do(ctx, http.MethodGet, "/api/profesores/correo/"+url.PathEscape(email), nil, &out)
	return out, err
}

/*============================================================
  Courses and projects
============================================================*/

func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var out []Course
	err := c.do(ctx, http.MethodGet, "/api/cursos", nil, &out)
	return out, err
}

func (c *Client) GetCourse(ctx context.Context, id int64) (Course, error) {
	var out Course
	err := c.do(ctx, http.MethodGet, "/api/cursos/"+strconv.FormatInt(id, 10), nil, &out)
	return out, err
}

func (c *Client) CreateCourse(ctx context.Context, course Course) (Course, error) {
	var out Course
	err := c.do(ctx, http.MethodPost, "/api/cursos", course, &out)
	return out, err
}

func (c *Client) DeleteCourse(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/cursos/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	err := c.do(ctx, http.MethodGet, "/api/proyectos", nil, &out)
	return out, err
}

func (c *Client) GetProject(ctx context.Context, id string) (Project, error) {
	var out Project
	err := c.do(ctx, http.MethodGet, "/api/proyectos/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) CreateProject(ctx context.Context, p Project) (Project, error) {
	var out Project
	err := c.do(ctx, http.MethodPost, "/api/proyectos", p, &out)
	return out, err
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/proyectos/"+url.PathEscape(id), nil, nil)
}

/*============================================================
  Reports
============================================================*/

func (c *Client) Dashboard(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats
	err := c.do(ctx, http.MethodGet, "/api/reportes/dashboard", nil, &out)
	return out, err
}

func (c *Client) StudentReport(ctx context.Context, studentID int) (StudentReport, error) {
	var out StudentReport
	err := c.do(ctx, http.MethodGet, "/api/reportes/estudiante/"+strconv.Itoa(studentID), nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("records request failed",
			"method", method, "path", path, "requestId", requestID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("records request",
		"method", method, "path", path, "requestId", requestID,
		"status", resp.StatusCode, "durationMs", time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return nil
}
