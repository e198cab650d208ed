// Package server initializes and runs the movies API application. It wires
// the database, the secret vault, the blob storage adapter, and the HTTP
// server, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/logging"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/api"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/auth"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/config"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/repositories/repomanager"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/secrets"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/services"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/storage"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	server      *api.Server
}

func NewApp(c *config.Config) (*App, error) {

	s := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(s)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	vault := secrets.NewVaultProvider(c)
	accounts := services.NewAccountService(db, rm)
	tokens := auth.NewBuilder(vault, accounts)
	files := storage.NewS3FileStorage(vault, c)

	server := api.NewServer(c, logger, accounts, tokens, files, vault)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: rm,
		server:      server,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migration error", "error", err)
		return
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
