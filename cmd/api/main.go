package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vineetGray/crudtodo/internal/config"
	todohttp "github.com/vineetGray/crudtodo/internal/http"
	"github.com/vineetGray/crudtodo/internal/repository"
	"github.com/vineetGray/crudtodo/internal/service"
)

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Local development reads .env; deployed environments set real env vars
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"log_level", cfg.LogLevel,
	)

	// Database connection
	db, err := repository.NewDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(disconnectCtx); err != nil {
			logger.Error("failed to disconnect from mongodb", "error", err)
		}
	}()
	logger.Info("mongodb connected", "database", cfg.Mongo.Database)

	if err := db.EnsureIndexes(ctx); err != nil {
		return err
	}

	// Repositories
	userRepo := repository.NewMongoUser(db)
	todoRepo := repository.NewMongoTodo(db)

	// Services
	userSvc := service.NewUserService(userRepo, todoRepo)
	todoSvc := service.NewTodoService(todoRepo, userRepo)

	// HTTP Server
	srv := todohttp.NewServer(todohttp.Options{
		Port:           cfg.ServerPort,
		Environment:    cfg.AppEnv,
		AllowedOrigins: cfg.AllowedOrigins,
	}, logger, userSvc, todoSvc, db)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	logger.Info("server starting", "port", cfg.ServerPort)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
