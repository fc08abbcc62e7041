// Package web provides the HTTP API around the cleaning engine: upload,
// inspect, clean, download and delete tabular files.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jgrady/scrub/internal/blob"
	"github.com/jgrady/scrub/internal/registry"
)

const version = "1.0.0"

// Server is the HTTP front of the data cleaning service.
type Server struct {
	reg       registry.Registry
	blobs     *blob.Store
	maxUpload int64
	router    *chi.Mux
	srv       *http.Server
}

// NewServer wires routes and middleware over the given collaborators.
func NewServer(reg registry.Registry, blobs *blob.Store, maxUpload int64) *Server {
	s := &Server{
		reg:       reg,
		blobs:     blobs,
		maxUpload: maxUpload,
		router:    chi.NewRouter(),
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/", s.handleRoot)
		r.Post("/upload", s.handleUpload)
		r.Get("/files", s.handleListFiles)
		r.Get("/file/{fileID}/data", s.handleFileData)
		r.Post("/clean", s.handleClean)
		r.Get("/download/{fileID}", s.handleDownload)
		r.Delete("/file/{fileID}", s.handleDelete)
	})
	return s
}

// Router exposes the chi mux for tests.
func (s *Server) Router() *chi.Mux { return s.router }

// Start begins serving on addr and blocks until the listener stops.
func (s *Server) Start(addr string, readTimeout, idleTimeout time.Duration) error {
	s.srv = &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: readTimeout,
		IdleTimeout: idleTimeout,
	}
	return s.srv.ListenAndServe()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
