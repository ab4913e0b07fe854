// Package api serves the local admin interface for the credential store.
package api

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/akeshr/autifyme/internal/audit"
	"github.com/akeshr/autifyme/internal/credential"
	"github.com/akeshr/autifyme/internal/service"
)

// Server is the HTTP admin server. All routes require the admin bearer token.
type Server struct {
	store    *credential.Store
	registry *service.Registry
	auditLog *audit.Log
	token    string
	log      zerolog.Logger

	mux     *http.ServeMux
	handler http.Handler
	server  *http.Server
}

// New creates the admin server. registry and auditLog may be nil.
func New(store *credential.Store, registry *service.Registry, auditLog *audit.Log, addr, token string, log zerolog.Logger) *Server {
	s := &Server{
		store:    store,
		registry: registry,
		auditLog: auditLog,
		token:    token,
		log:      log,
	}
	s.mux = http.NewServeMux()
	s.registerRoutes()
	s.handler = securityHeadersMiddleware(bodySizeMiddleware(s.authMiddleware(s.mux)))
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /status", s.handleStatus)
	s.mux.HandleFunc("GET /credentials", s.handleList)
	s.mux.HandleFunc("GET /credentials/expiring", s.handleExpiring)
	s.mux.HandleFunc("PUT /credentials/{name}", s.handleSet)
	s.mux.HandleFunc("DELETE /credentials/{name}", s.handleDelete)
	s.mux.HandleFunc("GET /credentials/{name}/value", s.handleValue)
	s.mux.HandleFunc("POST /credentials/{name}/rotate", s.handleRotate)
	s.mux.HandleFunc("POST /credentials/{name}/validate", s.handleValidate)
	s.mux.HandleFunc("GET /audit", s.handleAudit)
}

// Handler returns the full middleware chain, for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins serving. Blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.log.Info().Str("addr", ln.Addr().String()).Msg("admin api listening")
	if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// authMiddleware requires the admin bearer token on every request.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token == "" {
			writeError(w, http.StatusServiceUnavailable, "no_admin_token", "admin token is not configured")
			return
		}
		header := r.Header.Get("Authorization")
		got, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(s.token)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing or invalid admin token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// securityHeadersMiddleware sets standard security headers on all responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

const maxBodySize = 1 << 20 // 1 MB

// bodySizeMiddleware limits request body size to prevent memory exhaustion.
func bodySizeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		}
		next.ServeHTTP(w, r)
	})
}
