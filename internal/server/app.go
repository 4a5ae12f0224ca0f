// Package server initializes and runs the SignSpeak backend: it opens the
// database, runs migrations, builds the object storage client and services,
// and serves the HTTP API until shutdown.
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

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/akshatj27/signspeak/internal/logging"
	"github.com/akshatj27/signspeak/internal/server/config"
	"github.com/akshatj27/signspeak/internal/server/httpapi"
	"github.com/akshatj27/signspeak/internal/server/repositories/repomanager"
	"github.com/akshatj27/signspeak/internal/server/services"
	"github.com/akshatj27/signspeak/internal/server/storage"
)

type App struct {
	config           *config.Config
	logger           logging.Logger
	db               *sql.DB
	userService      *services.UserService
	videoService     *services.VideoService
	translateService *services.TranslateService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	store, err := storage.NewS3Storage(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	us := services.NewUserService(db, rm, c)
	vs := services.NewVideoService(db, rm, store, logger)
	ts := services.NewTranslateService(c)

	return &App{
		config:           c,
		logger:           logger,
		db:               db,
		userService:      us,
		videoService:     vs,
		translateService: ts,
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(
		app.config.EndpointAddr,
		app.logger,
		app.userService,
		app.videoService,
		app.translateService,
		app.config.SecretKey,
		app.config.PipelineToken,
		app.config.MaxUploadBytes,
	)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
