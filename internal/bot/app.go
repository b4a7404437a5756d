// Package bot initializes and runs the trust bot: it opens the record
// store, runs migrations, seeds the owner admin, and starts the update
// loop plus the health sidecar.
package bot

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/trustbot/internal/bot/config"
	"github.com/dmitrijs2005/trustbot/internal/bot/health"
	"github.com/dmitrijs2005/trustbot/internal/bot/models"
	"github.com/dmitrijs2005/trustbot/internal/bot/repositories/repomanager"
	"github.com/dmitrijs2005/trustbot/internal/bot/services"
	"github.com/dmitrijs2005/trustbot/internal/bot/telegram"
	"github.com/dmitrijs2005/trustbot/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	status  *health.Status
	handler *telegram.Handler
	health  *health.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	// The owner is privileged without a row, but seeding it keeps the
	// admins table an accurate roster.
	if err := rm.Admins(db).Ensure(ctx, &models.AdminRecord{UserID: cfg.OwnerID, DisplayName: "owner", AddedAt: time.Now()}); err != nil {
		return nil, fmt.Errorf("owner seed error: %w", err)
	}

	roleService := services.NewRoleService(db, rm)
	accessService := services.NewAccessService(db, rm, cfg.OwnerID)
	recordService := services.NewRecordService(db, rm, accessService)
	proofService := services.NewProofService(cfg, accessService)

	status := health.NewStatus()

	handler, err := telegram.NewHandler(cfg.BotToken, logger, roleService, accessService, recordService, proofService, status)
	if err != nil {
		return nil, fmt.Errorf("bot init error: %w", err)
	}

	return &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		status:  status,
		handler: handler,
		health:  health.NewServer(cfg.HealthAddr, logger, status, db),
	}, nil
}

// openDB opens the pgx handle and waits for the database to answer ping,
// backing off fibonacci-style.
func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	backoff := retry.WithMaxRetries(5, retry.NewFibonacci(time.Second))
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		return retry.RetryableError(db.PingContext(ctx))
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
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

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.health.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer app.status.SetAlive(false)
		if err := app.handler.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
