// Package api exposes the analysis pipeline over HTTP
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/prebunk/prebunk/internal/model"
)

const maxRequestBody = 1 << 20 // 1 MiB

// Analyzer is the pipeline capability the server depends on
type Analyzer interface {
	Analyze(ctx context.Context, message string) model.Result
}

// Server wires the analyzer behind a chi router
type Server struct {
	analyzer Analyzer
	logger   *slog.Logger
}

// NewServer creates a server. logger must be non-nil.
func NewServer(analyzer Analyzer, logger *slog.Logger) *Server {
	return &Server{analyzer: analyzer, logger: logger}
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
	})
	return r
}

type analyzeRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	start := time.Now()
	result := s.analyzer.Analyze(r.Context(), req.Message)
	s.logger.Info("analyzed message",
		"status", result.Status,
		"claims", len(result.Claims),
		"duration", time.Since(start))

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
