package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/lmittmann/tint"

	"gridmates-go/config"
	"gridmates-go/internal/auth"
	"gridmates-go/internal/match"
	"gridmates-go/internal/puzzle"
	"gridmates-go/internal/rewards"
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := runMigrations(cfg); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	loader := puzzle.NewLoader(cfg.PuzzleDir)
	dealer := match.NewDealer(rand.New(rand.NewSource(time.Now().UnixNano())))
	ledger := rewards.NewPostgresLedger(db)
	settings := puzzle.DefaultSettings(puzzle.VariantCrossword)

	service := match.NewService(
		match.NewPostgresStore(db),
		loader,
		dealer,
		ledger,
		settings,
		cfg.CompletionAward,
	)
	go logEvents(logger, service.Events())

	authService := auth.NewService([]byte(cfg.JWTSecret))
	handler := match.NewHandler(service, cfg.PollInterval)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      authService.Middleware(handler.Routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting api server", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

func runMigrations(cfg *config.Config) error {
	m, err := migrate.New("file://"+cfg.MigrationsDir, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func logEvents(logger *slog.Logger, events <-chan match.MatchEvent) {
	for event := range events {
		attrs := []any{"match_id", event.MatchID}
		if event.PlayerID != nil {
			attrs = append(attrs, "player_id", *event.PlayerID)
		}
		logger.Info(string(event.Type), attrs...)
	}
}
