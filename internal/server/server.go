// Package server exposes the seating engine over a JSON HTTP API.
//
// Each event gets an in-memory editing session backed by the configured
// store, so undo/redo and debounced autosave behave exactly as they do
// in the CLI. The API surface:
//
//	POST   /api/events                   create an event
//	GET    /api/events                   list event ids
//	GET    /api/events/{id}              fetch the document
//	PUT    /api/events/{id}              replace the document
//	DELETE /api/events/{id}              delete the event
//	POST   /api/events/{id}/actions      apply one action
//	POST   /api/events/{id}/arrange      run the arrangement engine
//	POST   /api/events/{id}/autoseat     run auto seat assignment
//	POST   /api/events/{id}/undo         step history back
//	POST   /api/events/{id}/redo         step history forward
//	GET    /api/events/{id}/export.xlsx  download a workbook
//	GET    /healthz                      liveness probe
//
// Errors are returned as {"error": {"code", "message"}} with the codes
// from the errors package.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/ethan-kaseff/seating-chart/pkg/errors"
	"github.com/ethan-kaseff/seating-chart/pkg/seating"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/arrange"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/editor"
	"github.com/ethan-kaseff/seating-chart/pkg/store"
)

// Options configures a Server.
type Options struct {
	// Log receives request and save-failure logging. Nil uses the default
	// logger.
	Log *log.Logger

	// Arrange supplies the default arrangement options; request bodies
	// override individual fields.
	Arrange arrange.Options

	// Debounce overrides the session autosave debounce. Zero means the
	// editor default.
	Debounce time.Duration
}

// Server routes HTTP requests to per-event editing sessions.
type Server struct {
	store store.Store
	opts  Options
	log   *log.Logger

	mu       sync.Mutex
	sessions map[string]*editor.Editor
}

// New creates a Server on top of the given store.
func New(st store.Store, opts Options) *Server {
	logger := opts.Log
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:    st,
		opts:     opts,
		log:      logger,
		sessions: make(map[string]*editor.Editor),
	}
}

// Handler returns the chi router for the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/events", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)

		r.Route("/{eventID}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Delete("/", s.handleDelete)
			r.Post("/actions", s.handleAction)
			r.Post("/arrange", s.handleArrange)
			r.Post("/autoseat", s.handleAutoSeat)
			r.Post("/undo", s.handleUndo)
			r.Post("/redo", s.handleRedo)
			r.Get("/export.xlsx", s.handleExport)
		})
	})

	return r
}

// Close flushes and closes every open session.
func (s *Server) Close(ctx context.Context) error {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*editor.Editor)
	s.mu.Unlock()

	var firstErr error
	for id, ed := range sessions {
		if err := ed.Flush(ctx); err != nil && firstErr == nil {
			firstErr = apperrors.Wrap(apperrors.ErrCodeStore, err, "flush event %s", id)
		}
		ed.Close()
	}
	return firstErr
}

// session returns the editor for an event, creating it from the store on
// first use.
func (s *Server) session(ctx context.Context, eventID string) (*editor.Editor, error) {
	if err := apperrors.ValidateEventID(eventID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ed, ok := s.sessions[eventID]; ok {
		return ed, nil
	}

	doc, err := s.store.Load(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeEventNotFound, "event %s not found", eventID)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "load event %s", eventID)
	}

	ed := s.newEditor(eventID, doc)
	s.sessions[eventID] = ed
	return ed, nil
}

func (s *Server) newEditor(eventID string, doc seating.Document) *editor.Editor {
	return editor.New(doc, editor.Options{
		Save: func(ctx context.Context, doc seating.Document) error {
			return s.store.Save(ctx, eventID, doc)
		},
		Debounce: s.opts.Debounce,
		OnSaveError: func(err error) {
			s.log.Error("autosave failed", "event", eventID, "err", err)
		},
	})
}

// dropSession removes an event's session, closing its editor.
func (s *Server) dropSession(eventID string) {
	s.mu.Lock()
	ed, ok := s.sessions[eventID]
	delete(s.sessions, eventID)
	s.mu.Unlock()
	if ok {
		ed.Close()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"dur", time.Since(start).Round(time.Millisecond))
	})
}
