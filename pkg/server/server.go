// Package server exposes a read-only HTTP API over a built skill index.
// The index is immutable, so every handler is safe under concurrent load
// without locking.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vibeship/spawner-skills/pkg/index"
	"github.com/vibeship/spawner-skills/pkg/logger"
	"github.com/vibeship/spawner-skills/pkg/skill"
)

// Config holds the server configuration.
type Config struct {
	Host string
	Port int
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("host cannot be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return errors.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	return nil
}

// Server serves the skill index over HTTP.
type Server struct {
	router *mux.Router
	ix     *index.Index
	config *Config
	server *http.Server
}

// NewServer creates a server over the given index.
func NewServer(ix *index.Index, config *Config) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid server configuration")
	}
	s := &Server{
		router: mux.NewRouter(),
		ix:     ix,
		config: config,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/skills", s.handleListSkills).Methods("GET")
	api.HandleFunc("/skills/{name}", s.handleGetSkill).Methods("GET")
	api.HandleFunc("/handoffs", s.handleFindHandoffs).Methods("GET")
	api.HandleFunc("/graph", s.handleGraph).Methods("GET")
	api.HandleFunc("/warnings", s.handleWarnings).Methods("GET")

	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.corsMiddleware)
}

// Start runs the server until the context is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.G(ctx).WithField("addr", addr).Info("skill API listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}

// Handler returns the root handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

type skillSummary struct {
	Name       string   `json:"name"`
	Category   string   `json:"category,omitempty"`
	Version    string   `json:"version,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	SharpEdges int      `json:"sharpEdges"`
	Handoffs   int      `json:"handoffs"`
}

func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	skills := s.ix.Skills()
	if tag := r.URL.Query().Get("tag"); tag != "" {
		skills = s.ix.ByTag(tag)
	} else if category := r.URL.Query().Get("category"); category != "" {
		skills = s.ix.ByCategory(category)
	}

	summaries := make([]skillSummary, 0, len(skills))
	for _, sk := range skills {
		summaries = append(summaries, skillSummary{
			Name:       sk.Name,
			Category:   sk.Category,
			Version:    sk.Version,
			Summary:    sk.Summary,
			Tags:       sk.Tags,
			SharpEdges: len(sk.SharpEdges),
			Handoffs:   len(sk.Handoffs),
		})
	}
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{"skills": summaries})
}

func (s *Server) handleGetSkill(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	sk, ok := s.ix.Lookup(name)
	if !ok {
		s.writeJSON(w, r, http.StatusNotFound, map[string]string{"error": "skill not found: " + name})
		return
	}
	s.writeJSON(w, r, http.StatusOK, sk)
}

func (s *Server) handleFindHandoffs(w http.ResponseWriter, r *http.Request) {
	trigger := r.URL.Query().Get("trigger")
	if trigger == "" {
		s.writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "trigger query parameter is required"})
		return
	}
	matches := s.ix.FindByTrigger(trigger)

	type match struct {
		Skill string            `json:"skill"`
		Rule  skill.HandoffRule `json:"rule"`
	}
	out := make([]match, 0, len(matches))
	for _, m := range matches {
		out = append(out, match{Skill: m.Skill.Name, Rule: m.Rule})
	}
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{"matches": out})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.ix.Graph())
}

func (s *Server) handleWarnings(w http.ResponseWriter, r *http.Request) {
	warnings := append([]skill.Warning{}, s.ix.Warnings()...)
	warnings = append(warnings, s.ix.Validate()...)
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{"warnings": warnings})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{"status": "ok", "skills": s.ix.Len()})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.G(r.Context()).WithError(err).Error("failed to encode response")
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.G(r.Context()).
			WithField("method", r.Method).
			WithField("path", r.URL.Path).
			WithField("duration", time.Since(start).String()).
			Debug("request handled")
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
