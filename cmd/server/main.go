// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"minus-backend/internal/archive"
	awsclients "minus-backend/internal/common/aws"
	"minus-backend/internal/common/config"
	"minus-backend/internal/common/database"
	"minus-backend/internal/common/logger"
	"minus-backend/internal/common/observability"
	"minus-backend/internal/notify"
	"minus-backend/internal/report"
	"minus-backend/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting minus backend...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgresClient(cfg.Database.Postgres)
		return err
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	archiveStore := archive.NewStore(pg.DB, log)

	// --- Init delivery channels ---
	var notifier report.Notifier
	if cfg.Delivery.Email.Enabled || cfg.Delivery.SMS.Enabled {
		var emailSender notify.EmailSender
		var smsSender notify.SMSSender

		if cfg.Delivery.Email.Enabled {
			ses, err := awsclients.NewSESClient(ctx, cfg.Delivery.AWS.Region, cfg.Delivery.Email.FromEmail)
			if err != nil {
				zapLog.Fatal("ses client failed", zap.Error(err))
			}
			emailSender = ses
			zapLog.Info("SES email delivery enabled", zap.String("from", cfg.Delivery.Email.FromEmail))
		}

		if cfg.Delivery.SMS.Enabled {
			sns, err := awsclients.NewSNSClient(ctx, cfg.Delivery.AWS.Region, cfg.Delivery.SMS.SenderID)
			if err != nil {
				zapLog.Fatal("sns client failed", zap.Error(err))
			}
			smsSender = sns
			zapLog.Info("SNS sms delivery enabled")
		}

		notifier = notify.New(cfg.Delivery, emailSender, smsSender, log)
	}

	// --- Init report pipeline ---
	if cfg.GenAI.APIKey == "" {
		zapLog.Warn("GENAI_API_KEY not set, report generation will fail until configured")
	}
	provider := report.NewClient(cfg.GenAI, log)
	reports := report.NewService(provider, archiveStore, notifier, obs, log)

	// --- HTTP Server ---
	handler := server.NewHandler(reports, cfg.GenAI.APIKey != "", log)
	srv := server.New(cfg.Server, handler.Routes(), log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("Shutdown signal received, draining...", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			zapLog.Error("http server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down http server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down observability", zap.Error(err))
	}

	zapLog.Info("Minus backend stopped gracefully")
}
