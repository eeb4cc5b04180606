package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/safar/solestride/internal/api"
	"github.com/safar/solestride/internal/auth"
	"github.com/safar/solestride/internal/config"
	"github.com/safar/solestride/internal/describe"
	"github.com/safar/solestride/internal/kv"
	"github.com/safar/solestride/internal/logging"
	"github.com/safar/solestride/internal/payment"
	"github.com/safar/solestride/internal/store"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blobs, err := kv.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("Open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer blobs.Close()

	logger.Info("Connected to storage", zap.String("driver", cfg.Storage.Driver))

	sf, err := store.Open(ctx, blobs, store.WithLogger(logger.Named("store")))
	if err != nil {
		logger.Fatal("Load storefront", zap.Error(err))
	}

	describer, err := describe.New(ctx, cfg.GenAI, logger.Named("describe"))
	if err != nil {
		logger.Fatal("Init description generator", zap.Error(err))
	}

	srv := api.NewServer(
		sf,
		auth.NewService(blobs, logger.Named("auth")),
		describer,
		payment.NewUPI(cfg.Payment),
		logger.Named("http"),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown", zap.Error(err))
		}
	}()

	logger.Info("Server starting", zap.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server error", zap.Error(err))
	}
	logger.Info("Server stopped")
}
