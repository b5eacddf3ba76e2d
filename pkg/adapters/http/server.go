// Package http exposes the renderer and the document store over HTTP.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/kinetree/internal/logging"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/kinematic"
	"github.com/aretw0/kinetree/pkg/ports"
	"github.com/aretw0/kinetree/pkg/urdf"
)

// MaxDescriptionBytes bounds request bodies.
const MaxDescriptionBytes = 1 << 20

const lockTTL = 30 * time.Second

// Compiler turns a description document into a robot.
type Compiler interface {
	Compile(ctx context.Context, data []byte) (*kinematic.Robot, error)
}

// Server serves render requests. Store and Locker are optional; without a
// store the /robots routes are not mounted.
type Server struct {
	Compiler Compiler
	Store    ports.DocumentStore
	Locker   ports.DistributedLocker
	Metrics  *Metrics
	Logger   *slog.Logger
	Version  string

	gatherer prometheus.Gatherer
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

func WithStore(store ports.DocumentStore) Option {
	return func(s *Server) { s.Store = store }
}

// WithLocker serializes PUTs of the same robot across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(s *Server) { s.Locker = locker }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

func WithVersion(version string) Option {
	return func(s *Server) { s.Version = version }
}

// WithRegistry registers the metrics with reg and serves them from /metrics.
// By default a private registry is used.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.Metrics = NewMetrics(reg)
		s.gatherer = reg
	}
}

// NewServer creates a server for compiler.
func NewServer(compiler Compiler, opts ...Option) *Server {
	s := &Server{Compiler: compiler, Version: "dev", now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	if s.Metrics == nil {
		reg := prometheus.NewRegistry()
		s.Metrics = NewMetrics(reg)
		s.gatherer = reg
	}
	return s
}

// NewHandler creates the HTTP handler for compiler.
func NewHandler(compiler Compiler, opts ...Option) http.Handler {
	return NewServer(compiler, opts...).Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/render", s.Render)
	r.Post("/validate", s.Validate)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	if s.Store != nil {
		r.Route("/robots", func(r chi.Router) {
			r.Get("/", s.ListRobots)
			r.Get("/{name}", s.GetRobot)
			r.Put("/{name}", s.PutRobot)
			r.Delete("/{name}", s.DeleteRobot)
		})
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Problem is the JSON body of every error response.
type Problem struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string, err error) {
	p := Problem{Error: msg}
	if err != nil {
		p.Errors = diagnostics(err)
	}
	s.writeJSON(w, status, p)
}

// diagnostics flattens aggregate errors into one message per problem.
func diagnostics(err error) []string {
	var agg *domain.AggregateError
	if errors.As(err, &agg) {
		out := make([]string, len(agg.Errors))
		for i, e := range agg.Errors {
			out[i] = e.Error()
		}
		return out
	}
	return []string{err.Error()}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, int, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxDescriptionBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, http.StatusRequestEntityTooLarge, err
		}
		return nil, http.StatusBadRequest, err
	}
	if len(data) == 0 {
		return nil, http.StatusBadRequest, errors.New("empty description")
	}
	return data, 0, nil
}

// configFromQuery reads indent, materials and target query parameters.
func configFromQuery(r *http.Request) (urdf.Config, error) {
	q := r.URL.Query()
	indent, err := urdf.ParseIndent(q.Get("indent"))
	if err != nil {
		return urdf.Config{}, err
	}
	refs, err := urdf.ParseMaterialReferences(q.Get("materials"))
	if err != nil {
		return urdf.Config{}, err
	}
	target, err := urdf.ParseTarget(q.Get("target"))
	if err != nil {
		return urdf.Config{}, err
	}
	return urdf.Config{Indent: indent, MaterialReferences: refs, Target: target}, nil
}

// render compiles a request body and writes it as URDF.
func (s *Server) render(ctx context.Context, endpoint string, data []byte, cfg urdf.Config) (robot *kinematic.Robot, out []byte, err error) {
	start := time.Now()
	defer func() {
		links := 0
		if robot != nil && err == nil {
			links = len(robot.LinkNames())
		}
		s.Metrics.observe(endpoint, start, links, err)
	}()

	robot, err = s.Compiler.Compile(ctx, data)
	if err != nil {
		return nil, nil, err
	}
	out, err = urdf.Marshal(robot, cfg)
	return robot, out, err
}

// Render handles POST /render: description in, URDF out.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	cfg, err := configFromQuery(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, "invalid query", err)
		return
	}
	data, status, err := readBody(w, r)
	if err != nil {
		s.fail(w, status, "invalid request body", err)
		return
	}

	robot, out, err := s.render(r.Context(), "render", data, cfg)
	if err != nil {
		s.Logger.Warn("render failed", "err", err)
		s.fail(w, http.StatusUnprocessableEntity, "render failed", err)
		return
	}
	s.Logger.Debug("rendered", "summary", urdf.Summary(robot))

	w.Header().Set("Content-Type", "application/xml")
	if _, err := w.Write(out); err != nil {
		s.Logger.Error("render response write failed", "err", err)
	}
}

// ValidateResponse reports whether a description compiles.
type ValidateResponse struct {
	Valid  bool     `json:"valid"`
	Robot  string   `json:"robot,omitempty"`
	Links  int      `json:"links,omitempty"`
	Joints int      `json:"joints,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// Validate handles POST /validate. Invalid descriptions answer 422 with
// every problem found.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	data, status, err := readBody(w, r)
	if err != nil {
		s.fail(w, status, "invalid request body", err)
		return
	}

	robot, _, err := s.render(r.Context(), "validate", data, urdf.NewConfig())
	if err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, ValidateResponse{Errors: diagnostics(err)})
		return
	}
	s.writeJSON(w, http.StatusOK, ValidateResponse{
		Valid:  true,
		Robot:  domain.DisplayName(robot.Name()),
		Links:  len(robot.LinkNames()),
		Joints: len(robot.JointNames()),
	})
}

// ListRobots handles GET /robots.
func (s *Server) ListRobots(w http.ResponseWriter, r *http.Request) {
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.Logger.Error("list failed", "err", err)
		s.fail(w, http.StatusInternalServerError, "list failed", nil)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, names)
}

// GetRobot handles GET /robots/{name}. The stored URDF is returned as is.
func (s *Server) GetRobot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, err := s.Store.Load(r.Context(), name)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		s.fail(w, http.StatusNotFound, fmt.Sprintf("robot %q not found", name), nil)
		return
	}
	if err != nil {
		s.Logger.Error("load failed", "robot", name, "err", err)
		s.fail(w, http.StatusInternalServerError, "load failed", nil)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	if !doc.UpdatedAt.IsZero() {
		w.Header().Set("Last-Modified", doc.UpdatedAt.UTC().Format(http.TimeFormat))
	}
	if doc.Summary != "" {
		w.Header().Set("X-Kinetree-Summary", doc.Summary)
	}
	if _, err := w.Write(doc.URDF); err != nil {
		s.Logger.Error("robot response write failed", "err", err)
	}
}

// PutResponse acknowledges a stored robot.
type PutResponse struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Bytes   int    `json:"bytes"`
}

// PutRobot handles PUT /robots/{name}: render the description and store it.
func (s *Server) PutRobot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	cfg, err := configFromQuery(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, "invalid query", err)
		return
	}
	data, status, err := readBody(w, r)
	if err != nil {
		s.fail(w, status, "invalid request body", err)
		return
	}

	if s.Locker != nil {
		unlock, err := s.Locker.Lock(r.Context(), name, lockTTL)
		if err != nil {
			s.Logger.Warn("lock failed", "robot", name, "err", err)
			s.fail(w, http.StatusConflict, fmt.Sprintf("robot %q is being written", name), nil)
			return
		}
		defer func() {
			if err := unlock(context.WithoutCancel(r.Context())); err != nil {
				s.Logger.Warn("unlock failed", "robot", name, "err", err)
			}
		}()
	}

	robot, out, err := s.render(r.Context(), "put", data, cfg)
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, "render failed", err)
		return
	}

	_, loadErr := s.Store.Load(r.Context(), name)
	created := errors.Is(loadErr, domain.ErrDocumentNotFound)

	doc := &domain.Document{
		Name:      name,
		URDF:      out,
		Source:    data,
		Summary:   urdf.Summary(robot),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.Store.Save(r.Context(), doc); err != nil {
		s.Logger.Error("save failed", "robot", name, "err", err)
		s.fail(w, http.StatusInternalServerError, "save failed", nil)
		return
	}
	s.Logger.Info("robot stored", "robot", name, "bytes", len(out))

	status = http.StatusOK
	if created {
		status = http.StatusCreated
	}
	s.writeJSON(w, status, PutResponse{Name: name, Summary: doc.Summary, Bytes: len(out)})
}

// DeleteRobot handles DELETE /robots/{name}.
func (s *Server) DeleteRobot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Store.Delete(r.Context(), name); err != nil {
		s.Logger.Error("delete failed", "robot", name, "err", err)
		s.fail(w, http.StatusInternalServerError, "delete failed", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":     "kinetree-http",
		"version": s.Version,
		"store":   s.Store != nil,
	})
}
