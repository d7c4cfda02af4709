// The gateway serves the student reclamation submission endpoint and
// forwards accepted submissions to the configured Telegram chat.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/auditlog"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/config"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/roster"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logConfig := zap.NewProductionConfig()
	logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := logConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

// run contains the main application logic, separated from main() for
// testability.
func run(cfg config.Config, logger *zap.Logger) error {
	logger.Info("Starting reclamation gateway",
		zap.String("addr", cfg.Addr),
		zap.Int("rate_limit_max", cfg.RateLimitMax),
		zap.Duration("rate_limit_interval", cfg.RateLimitInterval),
		zap.Strings("allowed_origins", cfg.AllowedOrigins),
	)

	r, err := roster.Load(cfg.RosterPath)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	logger.Info("Roster loaded", zap.Int("students", r.Size()))

	var audit *auditlog.Store
	if cfg.AuditDBPath != "" {
		audit, err = auditlog.Open(cfg.AuditDBPath)
		if err != nil {
			return fmt.Errorf("failed to open audit log: %w", err)
		}
		defer audit.Close()
		logger.Info("Audit log enabled", zap.String("path", cfg.AuditDBPath))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	server := NewServer(cfg, r, audit, logger)
	if err := server.Start(ctx); err != nil {
		return err
	}

	logger.Info("Gateway stopped")
	return nil
}
