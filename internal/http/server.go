package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vineetGray/crudtodo/internal/http/handler"
	"github.com/vineetGray/crudtodo/internal/middleware"
	"github.com/vineetGray/crudtodo/internal/service"
)

// Options carries the wiring the server needs beyond its collaborators.
type Options struct {
	Port           string
	Environment    string
	AllowedOrigins []string
}

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(opts Options, logger *slog.Logger, userSvc *service.UserService, todoSvc *service.TodoService, db handler.Pinger) *Server {
	router := NewRouter(userSvc, todoSvc, db, opts.Environment)

	// Middleware chain: recovery -> logging -> cors -> router
	chain := middleware.Recovery(logger)(
		middleware.Logging(logger)(
			middleware.CORS(opts.AllowedOrigins)(router)))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", opts.Port),
			Handler:      chain,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
