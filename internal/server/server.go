package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/kaiwenlim/fintrack-be/internal/auth"
	"github.com/kaiwenlim/fintrack-be/internal/config"
	"github.com/kaiwenlim/fintrack-be/internal/http/handlers"
	"github.com/kaiwenlim/fintrack-be/internal/middleware"
	"github.com/kaiwenlim/fintrack-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, log *logrus.Logger) *Server {
	router := mux.NewRouter()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	handlers.NewHealthHandler(time.Now()).Register(router)
	handlers.NewAuthHandler(store, tokens, log).Register(router)

	// Everything registered below the subrouter requires a valid bearer token.
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.Auth(tokens, store))
	handlers.NewExpenseHandler(store, log).Register(protected)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(log, router))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
