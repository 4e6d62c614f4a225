// Package fakeapi serves an in-memory task collection with the same REST
// contract as the remote task service. It backs `tasksync serve` and tests.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tasksync/internal/service"
)

// DefaultPrefix is the collection path.
const DefaultPrefix = "/todos"

// DefaultSeed is the number of tasks the public placeholder service exposes.
const DefaultSeed = 200

// Server is an http.Handler over an in-memory task collection.
type Server struct {
	mu      sync.Mutex
	tasks   map[int]service.Task
	nextID  int
	failing int // status returned for every request when non-zero

	router chi.Router
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger logs each request to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates an empty server mounted at prefix (DefaultPrefix if empty).
func New(prefix string, opts ...Option) *Server {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	s := &Server{
		tasks:  make(map[int]service.Task),
		nextID: 1,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes(prefix)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes(prefix string) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(s.injectFailure)

	r.Route(prefix, func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/{id}", s.handleGet)
		r.Patch("/{id}", s.handlePatch)
		r.Delete("/{id}", s.handleDelete)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.router = r
}

// Seed adds n generated tasks.
func (s *Server) Seed(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		id := s.nextID
		s.nextID++
		s.tasks[id] = service.Task{
			ID:        service.TaskID(strconv.Itoa(id)),
			Title:     fmt.Sprintf("task %d", id),
			Completed: id%3 == 0,
			UserID:    (id-1)/20 + 1,
		}
	}
}

// Put stores a task, replacing any task with the same numeric id.
func (s *Server) Put(task service.Task) error {
	id, err := strconv.Atoi(task.ID.String())
	if err != nil {
		return fmt.Errorf("fakeapi: non-numeric id %q", task.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[id] = task
	if id >= s.nextID {
		s.nextID = id + 1
	}
	return nil
}

// Tasks returns all tasks ordered by id.
func (s *Server) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked(0)
}

// Fail makes every request answer with status until Fail(0) is called.
func (s *Server) Fail(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = status
}

func (s *Server) sortedLocked(limit int) []service.Task {
	ids := make([]int, 0, len(s.tasks))
	for id := range s.tasks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	out := make([]service.Task, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.tasks[id])
	}
	return out
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) injectFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status := s.failing
		s.mu.Unlock()
		if status != 0 {
			writeError(w, status, http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
