package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/pkg/site"
)

// Route prefixes served next to the page.
const (
	AssetPrefix   = "/assets"
	RendersPrefix = "/renders"
	ContactAction = "/contact"
	ContactAPI    = "/api/contact"
)

const (
	defaultAddr            = "127.0.0.1:8080"
	defaultShutdownTimeout = 10 * time.Second
	readHeaderTimeout      = 5 * time.Second
	maxBodyBytes           = 64 << 10
)

// ErrSiteRequired is returned by New without a site.
var ErrSiteRequired = errors.New("server: site is required")

// Option customises the server.
type Option func(*Server)

// WithLogger sets the logger used for request and submission logging.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAddr sets the listen address used by Run.
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = strings.TrimSpace(addr)
	}
}

// WithStaticDir serves dir under /renders/ (gallery images).
func WithStaticDir(dir string) Option {
	return func(s *Server) {
		s.staticDir = strings.TrimSpace(dir)
	}
}

// WithVersion is reported by /healthz.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithShutdownTimeout bounds graceful shutdown in Run.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.shutdownTimeout = timeout
		}
	}
}

// WithSessionSecret derives the session signing and encryption keys from secret. Without a
// secret an ephemeral key is generated and sessions end on restart.
func WithSessionSecret(secret string) Option {
	return func(s *Server) {
		s.secret = []byte(secret)
	}
}

// WithSessionDir sets the directory holding session files. It is created
// when missing; empty means os.TempDir.
func WithSessionDir(dir string) Option {
	return func(s *Server) {
		s.sessionDir = strings.TrimSpace(dir)
	}
}

// WithSecureCookies marks the session cookie Secure (HTTPS only).
func WithSecureCookies(secure bool) Option {
	return func(s *Server) {
		s.secure = secure
	}
}

// WithSessionStore replaces the filesystem session store entirely.
func WithSessionStore(store sessions.Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// Server serves the portfolio page and accepts contact submissions.
type Server struct {
	site            *site.Site
	store           sessions.Store
	logger          *zap.Logger
	addr            string
	staticDir       string
	version         string
	secret          []byte
	sessionDir      string
	secure          bool
	shutdownTimeout time.Duration
	handler         http.Handler
}

// New builds the server and its routes.
func New(portfolio *site.Site, options ...Option) (*Server, error) {
	if portfolio == nil {
		return nil, ErrSiteRequired
	}
	s := &Server{
		site:            portfolio,
		logger:          zap.NewNop(),
		addr:            defaultAddr,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.staticDir != "" {
		info, err := os.Stat(s.staticDir)
		if err != nil {
			return nil, fmt.Errorf("server: static dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("server: static dir %q is not a directory", s.staticDir)
		}
	}
	if s.store == nil {
		if len(s.secret) == 0 {
			s.logger.Warn("session secret not set; using an ephemeral key")
			s.secret = securecookie.GenerateRandomKey(32)
			if s.secret == nil {
				return nil, errors.New("server: generate session key")
			}
		}
		if s.sessionDir != "" {
			if err := os.MkdirAll(s.sessionDir, 0o700); err != nil {
				return nil, fmt.Errorf("server: session dir: %w", err)
			}
		}
		s.store = newSessionStore(s.sessionDir, s.secret, s.secure)
	}

	s.handler = RequestLogger(s.logger)(s.routes())
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Run serves HTTP until ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("server: context is required")
	}

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	s.logger.Info("portfolio listening", zap.String("addr", s.addr))
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		err := httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		s.logger.Info("portfolio stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	}
}
