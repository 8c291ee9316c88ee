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

	"alias/internal/app"
	"alias/internal/config"
	httpTransport "alias/internal/transport/http"
	"alias/internal/words"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set up logger
	var logger *slog.Logger
	logOpts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	if cfg.Logging.Format == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, logOpts))
	}

	slog.SetDefault(logger)

	logger.Info("starting alias game server",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Load the word pool; fall back to the built-in one so the game
	// stays playable when the external list is missing or broken.
	source := loadWords(cfg, logger)

	// Create game hub
	hub := app.NewGameHub(source, logger)
	defer hub.Close()

	// Create HTTP server
	server := httpTransport.NewServer(cfg, hub, logger)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func loadWords(cfg *config.Config, logger *slog.Logger) *words.Source {
	if cfg.Game.WordListPath == "" {
		logger.Info("no word list configured, using built-in pool")
		return words.Fallback(nil)
	}

	source, err := words.Load(cfg.Game.WordListPath, nil)
	if err != nil {
		logger.Warn("failed to load word list, using built-in pool",
			"path", cfg.Game.WordListPath,
			"error", err,
		)
		return words.Fallback(nil)
	}

	logger.Info("word list loaded", "path", cfg.Game.WordListPath, "words", source.Size())
	return source
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
