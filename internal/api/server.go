// Package api serves the contacts collection over a small JSON HTTP API.
//
// Routes:
//
//	GET    /api/contacts       list all contacts
//	POST   /api/contacts       create a contact (the client supplies the id)
//	PUT    /api/contacts/{id}  replace name, email and phone
//	DELETE /api/contacts/{id}  remove a contact
//	OPTIONS *                  CORS preflight
//
// Anything else is answered with 404. Request bodies are read and decoded
// before routing, so malformed JSON is a 400 on every route.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/pdxmph/contacts-mvc/internal/contact"
)

// BasePath is the collection path of the API
const BasePath = "/api/contacts"

const shutdownGrace = 5 * time.Second

// Repository is the relational backend behind the API. *db.DB satisfies it.
// UpdateContact and DeleteContact report a missing contact with db.ErrNotFound.
type Repository interface {
	ListContacts(ctx context.Context) ([]contact.Contact, error)
	CreateContact(ctx context.Context, c contact.Contact) error
	UpdateContact(ctx context.Context, c contact.Contact) error
	DeleteContact(ctx context.Context, id string) error
}

// Server routes API requests to the repository
type Server struct {
	repo    Repository
	logger  *slog.Logger
	handler http.Handler
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the logger used for request and error logging
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a server for the given repository
func NewServer(repo Repository, opts ...Option) *Server {
	s := &Server{
		repo:   repo,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+BasePath, s.handleList)
	mux.HandleFunc("POST "+BasePath, s.handleCreate)
	mux.HandleFunc("PUT "+BasePath+"/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE "+BasePath+"/{id}", s.handleDelete)
	// The catch-all wins over the mux's own 405 responses
	mux.HandleFunc("/", s.handleNotFound)

	s.handler = s.withLogging(withCORS(s.withJSONBody(mux)))
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("api server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
