// Package server provides the read-only HTTP API over stored run results.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/careermatch/internal/catalog"
	"github.com/hyperjump/careermatch/internal/config"
	"github.com/hyperjump/careermatch/internal/storage"
)

// Server is the HTTP server for the careermatch API.
type Server struct {
	storage   storage.Storage
	catalog   catalog.Index
	suggester *catalog.Suggester
	config    *config.Config
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies. idx may be nil, in
// which case catalog search answers 501.
func NewServer(store storage.Storage, idx catalog.Index, cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		storage: store,
		catalog: idx,
		config:  cfg,
		logger:  logger,
	}
	if dict, ok := idx.(catalog.TermDictionary); ok {
		s.suggester = catalog.NewSuggester(dict)
	}
	return s
}

// CatalogRebuilt reloads spelling suggestions after the catalog changed.
func (s *Server) CatalogRebuilt() {
	if s.suggester == nil {
		return
	}
	if err := s.suggester.Refresh(); err != nil {
		s.logger.Warn("failed to refresh catalog suggestions", zap.Error(err))
	}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/students", s.handleListStudents)
		r.Get("/students/{id}", s.handleGetStudent)
		r.Get("/students/{id}/similar", s.handleSimilarStudents)
		r.Get("/clusters", s.handleListClusters)
		r.Get("/clusters/{id}", s.handleGetCluster)
		r.Get("/catalog/search", s.handleCatalogSearch)
	})
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
