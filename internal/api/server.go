// Package api serves a session over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/session"
	"github.com/julianstephens/tasklit/internal/storage"
)

// maxBodyBytes caps request bodies; commands are a sentence or two.
const maxBodyBytes = 64 << 10

type Server struct {
	sess *session.Session
	// mu serializes access to the session, whose scorer and store are not
	// safe for concurrent use.
	mu sync.Mutex
}

func New(sess *session.Session) *Server {
	return &Server{sess: sess}
}

// Router returns the handler for all routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/commands", s.handleCommand)

		r.Get("/tasks", s.handleGetTasks)
		r.Post("/tasks/{taskID}/done", s.handleCompleteTask)

		r.Get("/canvas", s.handleGetCanvas)

		r.Get("/stats", s.handleGetStats)
		r.Post("/retrain", s.handleRetrain)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

// --- Handlers ---

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Text string `json:"text"`
	}
	if !decode(w, r, &input) {
		return
	}

	s.mu.Lock()
	res, err := s.sess.Handle(input.Text)
	s.mu.Unlock()

	if errors.Is(err, session.ErrEmptyCommand) {
		respondError(w, http.StatusBadRequest, "text required")
		return
	}
	if err != nil {
		logger.Error("command failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleGetTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tasks, err := s.sess.Tasks()
	s.mu.Unlock()

	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"tasks": tasks,
		"count": len(tasks),
	})
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")

	s.mu.Lock()
	task, err := s.sess.Complete(id)
	s.mu.Unlock()

	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (s *Server) handleGetCanvas(w http.ResponseWriter, r *http.Request) {
	advanced := false
	if v := r.URL.Query().Get("advanced"); v != "" {
		var err error
		if advanced, err = strconv.ParseBool(v); err != nil {
			respondError(w, http.StatusBadRequest, "advanced must be a boolean")
			return
		}
	}

	s.mu.Lock()
	out, err := s.sess.Canvas(advanced)
	s.mu.Unlock()

	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := s.sess.Stats()
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRetrain(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Epochs int `json:"epochs"`
	}
	if r.ContentLength != 0 && !decode(w, r, &input) {
		return
	}
	if input.Epochs < 0 {
		respondError(w, http.StatusBadRequest, "epochs must not be negative")
		return
	}

	s.mu.Lock()
	stats := s.sess.Retrain(input.Epochs)
	s.mu.Unlock()

	logger.Info("scorer retrained", "samples", stats.SamplesCount, "accuracy", stats.AverageAccuracy)
	respondJSON(w, http.StatusOK, stats)
}
