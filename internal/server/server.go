// Package server provides the HTTP API over the pipeline and indices.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/gamedevCloudy/youtube-automation/internal/config"
	"github.com/gamedevCloudy/youtube-automation/internal/indexer"
	"github.com/gamedevCloudy/youtube-automation/internal/pipeline"
	"github.com/gamedevCloudy/youtube-automation/internal/retriever"
	"github.com/gamedevCloudy/youtube-automation/internal/storage"
	"github.com/gamedevCloudy/youtube-automation/internal/vector"
)

// Server is the HTTP server for the ingest and search API.
type Server struct {
	pipeline  *pipeline.Pipeline
	indexer   *indexer.Indexer
	retriever *retriever.Retriever
	storage   storage.Storage
	vectors   *vector.Index
	config    *config.Config
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	p *pipeline.Pipeline,
	idx *indexer.Indexer,
	ret *retriever.Retriever,
	store storage.Storage,
	vectors *vector.Index,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		pipeline:  p,
		indexer:   idx,
		retriever: ret,
		storage:   store,
		vectors:   vectors,
		config:    cfg,
		logger:    logger,
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Post("/api/v1/upsert", s.handleUpsert)
		r.Post("/api/v1/query", s.handleQuery)
		r.Get("/api/v1/collections", s.handleListCollections)
		r.Delete("/api/v1/collections/{id}", s.handleDeleteCollection)
		r.Get("/api/v1/status", s.handleStatus)
		r.Get("/health", s.handleHealth)
	})

	// Ingest downloads and transcribes a whole video; it gets no request
	// timeout beyond the client's context.
	r.Post("/api/v1/ingest", s.handleIngest)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
