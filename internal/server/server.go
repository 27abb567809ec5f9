// Package server exposes tab editing over HTTP.
//
// Every open document is backed by a [session.Session]; requests against
// one document are applied one after another. Routes live under /api/v1:
//
//	GET    /docs                 list stored documents
//	POST   /docs                 create a document
//	GET    /docs/{id}            editor state
//	PUT    /docs/{id}            save (optionally renaming)
//	DELETE /docs/{id}            delete
//	POST   /docs/{id}/notes      commit a symbol on a string-line
//	POST   /docs/{id}/mode       switch between single and chord mode
//	POST   /docs/{id}/symbol     append a technique marker
//	POST   /docs/{id}/select     hit-test a point and select the element
//	POST   /docs/{id}/delete     delete the selected element
//	POST   /docs/{id}/insert     open a position at the selected element
//	POST   /docs/{id}/rows       add a row of string-lines
//	GET    /docs/{id}/grid       notation grid
//	PUT    /docs/{id}/grid       replace the grid
//	GET    /docs/{id}/svg        sheet as SVG
//	GET    /docs/{id}/fretboard  fretboard as SVG
//	POST   /docs/{id}/fretboard  click the fretboard to enter a note
//	POST   /docs/{id}/scale      show a scale on the fretboard
//	POST   /render               render a grid without storing it
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/matzehuels/tabsmith/pkg/buildinfo"
	"github.com/matzehuels/tabsmith/pkg/config"
	"github.com/matzehuels/tabsmith/pkg/pipeline"
	"github.com/matzehuels/tabsmith/pkg/session"
	"github.com/matzehuels/tabsmith/pkg/store"
)

// CleanupInterval is how often idle sessions are saved and closed.
const CleanupInterval = time.Minute

// maxBody caps request bodies.
const maxBody = 1 << 20

// Server serves the editing API.
type Server struct {
	docs     store.Store
	sessions *session.Registry
	runner   *pipeline.Runner
	render   pipeline.Options
	cfg      config.Server
	logger   *log.Logger
}

// Options configures a Server.
type Options struct {
	Config  config.Server
	Session session.Options

	// Render holds the defaults for POST /render. Formats are taken from
	// the request.
	Render pipeline.Options

	// Runner renders and caches artifacts. Nil disables POST /render.
	Runner *pipeline.Runner
	Logger *log.Logger
}

// New returns a server editing documents in docs.
func New(docs store.Store, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Session.Logger == nil {
		opts.Session.Logger = opts.Logger
	}
	return &Server{
		docs:     docs,
		sessions: session.NewRegistry(docs, opts.Session),
		runner:   opts.Runner,
		render:   opts.Render,
		cfg:      opts.Config,
		logger:   opts.Logger,
	}
}

// Sessions returns the server's session registry.
func (s *Server) Sessions() *session.Registry { return s.sessions }

// Handler returns the HTTP handler with CORS and request logging applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(observe)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Route("/docs", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Post("/", s.handleCreate)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Put("/", s.handleSave)
				r.Delete("/", s.handleDelete)
				r.Post("/notes", s.handleNote)
				r.Post("/mode", s.handleMode)
				r.Post("/symbol", s.handleSymbol)
				r.Post("/select", s.handleSelect)
				r.Post("/delete", s.handleDeleteSelected)
				r.Post("/insert", s.handleInsert)
				r.Post("/rows", s.handleAddRow)
				r.Get("/grid", s.handleGrid)
				r.Put("/grid", s.handleLoadGrid)
				r.Get("/svg", s.handleSVG)
				r.Get("/fretboard", s.handleFretboard)
				r.Post("/fretboard", s.handleFretboardClick)
				r.Post("/scale", s.handleScale)
			})
		})
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, buildinfo.Get())
	})

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then saves open sessions and shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout.Duration,
		WriteTimeout: s.cfg.WriteTimeout.Duration,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.sessions.Run(ctx, CleanupInterval)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", s.cfg.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := s.sessions.Flush(shutdownCtx); err != nil {
		s.logger.Warn("save sessions", "error", err)
	}
	return srv.Shutdown(shutdownCtx)
}
