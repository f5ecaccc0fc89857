// Package httpserver is the web boundary of taskkeeper: a gin engine that
// resolves the session, applies the access policy and calls the services.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// UserService is the credential store as seen by the handlers.
type UserService interface {
	Register(ctx context.Context, p services.RegisterParams) (*models.User, error)
	Verify(ctx context.Context, email, password string) (*models.User, error)
}

// SessionService is the session manager as seen by the handlers.
type SessionService interface {
	Create(ctx context.Context, id models.Identity) (string, error)
	Resolve(ctx context.Context, token string) (*models.Session, error)
	Destroy(ctx context.Context, token string) error
	TTL() time.Duration
}

// TaskService is the task repository as seen by the handlers.
type TaskService interface {
	ListForOwner(ctx context.Context, ownerEmail string) ([]*models.Task, error)
	Create(ctx context.Context, ownerEmail string, in models.TaskInput) (int64, error)
}

// Options tunes the boundary.
type Options struct {
	RequestTimeout time.Duration
	CookieSecure   bool
	GinMode        string
}

// Server serves the web application.
type Server struct {
	address  string
	logger   logging.Logger
	users    UserService
	sessions SessionService
	tasks    TaskService
	opts     Options
	engine   *gin.Engine
	now      func() time.Time
}

// NewServer wires handlers and middleware into a gin engine.
func NewServer(address string, l logging.Logger, us UserService, ss SessionService, ts TaskService, opts Options) *Server {
	s := &Server{
		address:  address,
		logger:   l.With("module", "http_server"),
		users:    us,
		sessions: ss,
		tasks:    ts,
		opts:     opts,
		now:      time.Now,
	}
	s.engine = s.newEngine()
	return s
}

// Handler exposes the engine, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
