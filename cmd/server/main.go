package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kitawerk/dienstplan/internal/config"
	"github.com/kitawerk/dienstplan/internal/handler"
	"github.com/kitawerk/dienstplan/pkg/filestore"
	"github.com/kitawerk/dienstplan/pkg/logging"
)

func main() {
	appEnv, err := config.LoadEnv()
	if err != nil {
		os.Stderr.WriteString("failed to load environment: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.InitLogger(appEnv.Environment, appEnv.LogDir)
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	switch {
	case errors.Is(err, config.ErrNotFound):
		logger.Debug("No config file found, using defaults")
		cfg = config.Default()
	case err != nil:
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	store, err := filestore.NewStore(appEnv.DataDir)
	if err != nil {
		logger.Fatal("Failed to open schedule store", zap.Error(err))
	}
	logger.Info("Schedule store ready", zap.String("data_dir", appEnv.DataDir))

	h := handler.NewHandler(cfg, store, logger)
	h.RegisterRoutes()

	srv := &http.Server{
		Addr:         appEnv.HTTPAddr,
		Handler:      h.Mux,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting server", zap.String("addr", appEnv.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
