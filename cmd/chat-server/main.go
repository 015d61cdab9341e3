// cmd/chat-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"torqueup-chat/internal/chat/gemini"
	"torqueup-chat/internal/chat/prompt"
	"torqueup-chat/internal/chat/router"
	"torqueup-chat/internal/common/config"
	"torqueup-chat/internal/common/database"
	cerrors "torqueup-chat/internal/common/errors"
	"torqueup-chat/internal/common/logger"
	"torqueup-chat/internal/common/observability"
	"torqueup-chat/internal/server"
	"torqueup-chat/internal/store"
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
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting chat server...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init completion client ---
	completion, err := gemini.NewClient(&gemini.Config{
		BaseURL:         cfg.Gemini.BaseURL,
		APIKey:          cfg.Gemini.APIKey,
		Model:           cfg.Gemini.Model,
		Timeout:         time.Duration(cfg.Gemini.Timeout) * time.Millisecond,
		Temperature:     cfg.Gemini.Temperature,
		TopK:            cfg.Gemini.TopK,
		TopP:            cfg.Gemini.TopP,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
		SafetyThreshold: cfg.Gemini.SafetyThreshold,
	}, log)
	if err != nil {
		zapLog.Fatal("completion client init failed", zap.Error(err))
	}

	// --- Wire the chat pipeline ---
	partsStore := store.NewPartsStore(pg.DB, log)
	profileStore := store.NewProfileStore(
		pg.DB,
		rdb.Client,
		time.Duration(cfg.Chat.SellerCacheTTL)*time.Second,
		log,
	)

	chatRouter := router.New(
		&router.Config{
			MaxRecommendations: cfg.Chat.MaxRecommendations,
			Timeout:            time.Duration(cfg.Server.RequestTimeout) * time.Millisecond,
		},
		prompt.NewBuilder(cfg.Chat.InventoryPromptLimit),
		completion,
		partsStore,
		profileStore,
		log,
	)

	chatHandler := server.NewChatHandler(chatRouter, cerrors.NewErrorResponder(log), obs, log)
	healthHandler := server.NewHealthHandler(map[string]server.Pinger{
		"postgres": pg,
		"redis":    rdb,
	})

	srv := server.New(&cfg.Server, chatHandler, healthHandler, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	case sig := <-stop:
		zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}

	zapLog.Info("chat server stopped")
}
