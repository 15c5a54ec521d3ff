package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stepedge/concierge"
	"github.com/stepedge/concierge/internal/logging"
	"github.com/stepedge/concierge/pkg/domain"
	"github.com/stepedge/concierge/pkg/search"
)

// Server exposes the advisor over JSON HTTP.
type Server struct {
	advisor  *concierge.Advisor
	logger   *slog.Logger
	registry *prometheus.Registry
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetricsRegistry mounts /metrics for the given registry.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// NewHandler builds the HTTP handler for the advisor.
func NewHandler(advisor *concierge.Advisor, opts ...Option) http.Handler {
	s := &Server{
		advisor: advisor,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Post("/chat", s.chat)
	r.Post("/sessions", s.startSession)
	r.Get("/sessions", s.listSessions)
	r.Delete("/sessions/{id}", s.deleteSession)
	r.Get("/products", s.listProducts)
	r.Get("/products/{id}", s.getProduct)
	r.Post("/search", s.search)

	if s.registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// chat handles one dialog turn.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req concierge.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("chat: invalid request body", "err", err)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	resp, err := s.advisor.Chat(r.Context(), req)
	if err != nil {
		http.Error(w, "Chat error", http.StatusInternalServerError)
		s.logger.Error("chat failed", "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.advisor.StartSession(r.Context())
	if err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		s.logger.Error("start session failed", "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"session_id": id,
		"message":    "Session started!",
	})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.advisor.Sessions().List(r.Context())
	if err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		s.logger.Error("list sessions failed", "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"sessions": ids})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.advisor.Sessions().Delete(r.Context(), id); err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		s.logger.Error("delete session failed", "session_id", id, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listProducts serves the read-only catalog browse: optional case-insensitive
// category filter, optional "price" or "name" sort.
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	sortBy := r.URL.Query().Get("sort_by")
	s.writeJSON(w, http.StatusOK, s.advisor.Catalog().Browse(category, sortBy))
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}
	p, ok := s.advisor.Catalog().ByID(id)
	if !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// SearchRequest is a guided QnA query. Questions and Answers carry the
// exchange so far, so the flow needs no server-side state.
type SearchRequest struct {
	Query     string   `json:"query"`
	K         int      `json:"k,omitempty"`
	Questions []string `json:"questions,omitempty"`
	Answers   []string `json:"answers,omitempty"`
}

// SearchResponse returns the matched products and the next guided question.
type SearchResponse struct {
	Matches      []search.Match `json:"matches"`
	NextQuestion string         `json:"next_question"`
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("search: invalid request body", "err", err)
		return
	}
	if req.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	matches, next, err := s.advisor.Search(r.Context(), req.Query, req.K, req.Questions, req.Answers)
	if err != nil {
		if errors.Is(err, domain.ErrCollaborator) {
			// Search degrades, the API stays up.
			http.Error(w, "Search temporarily unavailable", http.StatusServiceUnavailable)
			s.logger.Warn("search collaborator unavailable", "err", err)
			return
		}
		http.Error(w, "Search error", http.StatusInternalServerError)
		s.logger.Error("search failed", "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, SearchResponse{Matches: matches, NextQuestion: next})
}
