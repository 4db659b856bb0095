// Package server provides the importable signup application.
// End-to-end tests start it on a random port without running main().
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/thesyncim/signup/internal/clock"
	"github.com/thesyncim/signup/pkg/signup"
)

// Config holds server configuration options.
type Config struct {
	Addr           string        // Listen address (e.g., ":3000" or ":0" for random port)
	ReadTimeout    time.Duration // HTTP read timeout
	WriteTimeout   time.Duration // HTTP write timeout
	StarWarsURL    string        // Endpoint the Star Wars panel fetches from the browser
	CookieTTL      time.Duration // Lifetime of the firstName cookie
	AllowedOrigins []string      // CORS origins for /api; empty disables CORS handling

	Logger logrus.FieldLogger // Defaults to the logrus standard logger
	Clock  clock.Clock        // Defaults to the system clock
}

// DefaultConfig returns a configuration suitable for testing.
// Uses ":0" to bind to a random available port.
func DefaultConfig() Config {
	return Config{
		Addr:         ":0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		StarWarsURL:  signup.DefaultStarWarsURL,
		CookieTTL:    24 * time.Hour,
	}
}

// Server is the HTTP server hosting the signup page and its API.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	log        logrus.FieldLogger
	addr       string
	mu         sync.Mutex
	running    bool
	closed     bool
}

// ErrServerClosed is returned by Start after Shutdown.
var ErrServerClosed = errors.New("server already shut down")

// NewServer creates a new server with the given configuration.
// The server is not started until Start() is called.
func NewServer(cfg Config) (*Server, error) {
	if cfg.StarWarsURL == "" {
		return nil, errors.New("star wars URL is required")
	}
	if cfg.CookieTTL <= 0 {
		return nil, fmt.Errorf("cookie TTL must be positive, got %v", cfg.CookieTTL)
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.System{}
	}

	page, err := template.New("index").Parse(HTMLPage)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	app := &app{
		page:        page,
		starWarsURL: cfg.StarWarsURL,
		cookieTTL:   cfg.CookieTTL,
		clock:       cfg.Clock,
		log:         cfg.Logger,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(app, cfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		log:        cfg.Logger,
	}, nil
}

// newRouter wires the page, the API and the middleware stack.
func newRouter(a *app, cfg Config) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", a.HandleIndex).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", a.HandleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", a.HandleLogin)
	if len(cfg.AllowedOrigins) > 0 {
		api.Use(cors.New(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		}).Handler)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(cfg.Logger, w, http.StatusNotFound, "not found")
	})

	var h http.Handler = r
	h = requestLogger(cfg.Logger, h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(cfg.Logger),
		handlers.PrintRecoveryStack(true),
	)(h)
	return h
}

// Start begins listening and serving HTTP requests.
// Returns the actual address the server is listening on (useful when port is 0).
// This method is non-blocking - the server runs in a goroutine.
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrServerClosed
	}
	if s.running {
		return s.addr, nil
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = ln
	s.addr = ln.Addr().String()
	s.running = true

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("server stopped")
		}
	}()

	s.log.WithField("addr", s.addr).Info("signup app listening")
	return s.addr, nil
}

// Shutdown gracefully shuts down the server. A server that was shut down
// cannot be started again.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	s.closed = true
	s.addr = ""
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
// Returns empty string if server is not running.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}
