// Package httpapi exposes the explorer over a small JSON HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/openownership/boexplorer/internal/core/domain"
	"github.com/openownership/boexplorer/internal/core/ports/driving"
	"github.com/openownership/boexplorer/internal/logger"
)

// Server serves the /v0 search endpoints.
type Server struct {
	explorer driving.Explorer
}

// NewServer creates an HTTP API server backed by the given explorer.
func NewServer(explorer driving.Explorer) *Server {
	return &Server{explorer: explorer}
}

// Routes returns the chi router with all endpoints mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/v0/search/companies", s.handleSearchCompanies)
	r.Get("/v0/search/persons", s.handleSearchPersons)
	r.Get("/v0/sources", s.handleSources)
	r.Get("/healthz", s.handleHealth)

	return r
}

// Run serves the API on addr until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleSearchCompanies(w http.ResponseWriter, r *http.Request) {
	s.handleSearch(w, r, s.explorer.SearchCompanies)
}

func (s *Server) handleSearchPersons(w http.ResponseWriter, r *http.Request) {
	s.handleSearch(w, r, s.explorer.SearchPersons)
}

type searchFunc func(ctx context.Context, text string, opts domain.SearchOptions) (*domain.Result, error)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, search searchFunc) {
	query := r.URL.Query()

	text := query.Get("q")
	if text == "" {
		writeError(w, http.StatusBadRequest, "missing q parameter")
		return
	}

	opts := domain.SearchOptions{Sources: query["source"]}
	if limit := query.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		opts.MaxResults = n
	}

	result, err := search(r.Context(), text, opts)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Warn("search failed: %v", err)
		writeError(w, http.StatusBadGateway, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSources(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sources": s.explorer.Sources(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
