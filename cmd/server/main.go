// Command planner-server starts the planner HTTP API server.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/goodvibes/planner/internal/config"
	"github.com/goodvibes/planner/internal/limiter"
	"github.com/goodvibes/planner/internal/migrate"
	"github.com/goodvibes/planner/internal/repository/postgres"
	"github.com/goodvibes/planner/internal/server/httpapi"
	"github.com/goodvibes/planner/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration, runs migrations, and starts the HTTP server.
func main() {
	configPath := flag.String("config", "config.yml", "path to YAML config (optional)")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
	)

	if cfg.SecretKey == config.DevSecretKey {
		logger.Warn("running with the built-in signing key; set SECRET_KEY")
	}
	if cfg.DefaultPassword == "admin123" {
		logger.Warn("default admin account uses the stock password; set DEFAULT_PASSWORD")
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	todoRepo := postgres.NewTodoRepo(db)
	calendarRepo := postgres.NewCalendarRepo(db)
	templateRepo := postgres.NewTemplateRepo(db)
	migrationRepo := postgres.NewMigrationRepo(db)

	lim := limiter.NewPGWithQuerier(db.Pool, 15*time.Minute, 5, 15*time.Minute)

	// Services
	authSvc := service.NewAuthService(userRepo, calendarRepo, []byte(cfg.SecretKey), cfg.AccessTokenTTL(), lim)
	todoSvc := service.NewTodoService(todoRepo)
	calendarSvc := service.NewCalendarService(calendarRepo)
	templateSvc := service.NewTemplateService(templateRepo)
	migrationSvc := service.NewMigrationService(migrationRepo)

	if err := authSvc.EnsureDefaultUser(ctx, cfg.DefaultUsername, cfg.DefaultPassword); err != nil {
		logger.Fatal("ensure default user", zap.Error(err))
	}

	api := httpapi.New(authSvc, todoSvc, calendarSvc, templateSvc, migrationSvc, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Router(cfg.Origins()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
