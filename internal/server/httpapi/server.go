// Package httpapi is the JSON-over-HTTP face of the reference server: the
// routes the sessionkeeper client talks to, bearer-token checks and login
// throttling.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
	"github.com/dmitrijs2005/sessionkeeper/internal/server/users"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type HTTPServer struct {
	address string
	users   *users.Service
	logger  logging.Logger
	logins  *loginLimiter
}

func NewHTTPServer(address string, l logging.Logger, us *users.Service, loginsPerMinute int) *HTTPServer {
	return &HTTPServer{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		logins:  newLoginLimiter(loginsPerMinute),
	}
}

// Handler returns the router with every route mounted under /api.
func (s *HTTPServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(api chi.Router) {
		api.With(s.limitLogins).Post("/login", s.login)
		api.Post("/signup", s.signup)

		api.Group(func(priv chi.Router) {
			priv.Use(s.accessToken)
			priv.Get("/me", s.me)
			priv.Route("/users", func(u chi.Router) {
				u.Get("/", s.listUsers)
				u.Post("/", s.createUser)
				u.Put("/{id}", s.updateUser)
				u.Delete("/{id}", s.deleteUser)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
