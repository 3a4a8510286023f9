// Package httpapi exposes the scan and score engines over a small JSON API.
// The handlers are thin: quota signaling aside, every fault has already been
// absorbed by the layers below, so the surface is health, scan, and score.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/cascade"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/quota"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/scorer"
)

// Server wires the engines to HTTP.
type Server struct {
	Cascade *cascade.Controller
	Scorer  *scorer.Engine
	Log     *slog.Logger
}

func New(c *cascade.Controller, s *scorer.Engine, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{Cascade: c, Scorer: s, Log: log}
}

// Routes returns the router with all endpoints mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/scan", s.handleScan)
	r.Post("/api/score", s.handleScore)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type scanRequest struct {
	Query string `json:"query"`
	Scope string `json:"scope,omitempty"`
	Tier  string `json:"tier,omitempty"`
}

type quotaResponse struct {
	RateLimited bool `json:"rateLimited"`
	Limit       int  `json:"limit"`
	Used        int  `json:"used"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
		return
	}
	if req.Scope == "" {
		req.Scope = "all"
	}
	if req.Tier == "" {
		req.Tier = "free"
	}

	out, err := s.Cascade.Scan(r.Context(), req.Query, req.Scope, callerKey(r), req.Tier)
	if err != nil {
		var le *quota.LimitError
		if errors.As(err, &le) {
			writeJSON(w, http.StatusTooManyRequests, quotaResponse{RateLimited: true, Limit: le.Limit, Used: le.Used})
			return
		}
		s.Log.Error("scan failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "scan failed"})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type scoreRequest struct {
	Asset    asset.Asset `json:"asset"`
	Entitled bool        `json:"entitled"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Asset.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "asset with a name is required"})
		return
	}

	score := s.Scorer.Score(r.Context(), req.Asset)
	if !req.Entitled {
		score = scorer.Redact(score)
	}
	writeJSON(w, http.StatusOK, score)
}

// callerKey identifies the caller for quota accounting: an explicit header
// when the fronting layer provides one, the remote host otherwise.
func callerKey(r *http.Request) string {
	if v := r.Header.Get("X-Caller"); v != "" {
		return v
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
