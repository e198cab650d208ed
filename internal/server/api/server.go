// Package api exposes the HTTP surface of the movies API: registration,
// login, admin-claim management, token renewal, and movie-asset uploads.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/logging"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/auth"
	sc "github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/config"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/models"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/secrets"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/storage"
	"github.com/gorilla/mux"
)

// AccountStore is the slice of the account service the handlers need.
type AccountStore interface {
	Register(ctx context.Context, email, password string) (*models.User, []string, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	AddClaim(ctx context.Context, email string, claim models.Claim) error
	RemoveClaim(ctx context.Context, email string, claim models.Claim) error
}

// TokenBuilder issues bearer tokens for an account email.
type TokenBuilder interface {
	Build(ctx context.Context, email string) (*auth.AuthenticationResponse, error)
}

type Server struct {
	config   *sc.Config
	logger   logging.Logger
	accounts AccountStore
	tokens   TokenBuilder
	files    storage.FileStorage
	secrets  secrets.Provider
}

func NewServer(cfg *sc.Config, l logging.Logger, accounts AccountStore, tokens TokenBuilder, files storage.FileStorage, provider secrets.Provider) *Server {
	return &Server{
		config:   cfg,
		logger:   l.With("module", "http_server"),
		accounts: accounts,
		tokens:   tokens,
		files:    files,
		secrets:  provider,
	}
}

// Router wires the public routes. Claim management and asset endpoints
// require an admin token; renewal requires any valid token.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/login", s.login).Methods(http.MethodPost)

	r.Handle("/makeadmin", s.authenticate(s.requireAdmin(http.HandlerFunc(s.makeAdmin)))).Methods(http.MethodPost)
	r.Handle("/removeadmin", s.authenticate(s.requireAdmin(http.HandlerFunc(s.removeAdmin)))).Methods(http.MethodPost)
	r.Handle("/renewtoken", s.authenticate(http.HandlerFunc(s.renewToken))).Methods(http.MethodGet)

	r.Handle("/posters", s.authenticate(s.requireAdmin(http.HandlerFunc(s.storePoster)))).Methods(http.MethodPost)
	r.Handle("/posters", s.authenticate(s.requireAdmin(http.HandlerFunc(s.deletePoster)))).Methods(http.MethodDelete)

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.config.EndpointAddr,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
