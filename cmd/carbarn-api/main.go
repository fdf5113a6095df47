package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carbarn/internal/api"
	"carbarn/internal/config"
	"carbarn/internal/db"
	"carbarn/internal/game"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	store, err := game.OpenStore(ctx, pool, logger)
	if err != nil {
		logger.Error("open store failed", "err", err)
		os.Exit(1)
	}
	unsubscribe := store.Subscribe(func(a *game.Account) {
		if a == nil {
			logger.Info("account wiped")
			return
		}
		logger.Info("account changed", "balance", a.Balance, "cars", len(a.Cars))
	})
	defer unsubscribe()

	gameSvc := game.NewService(store, logger)
	if _, err := gameSvc.EnsureAccount(ctx); err != nil {
		logger.Error("seed account failed", "err", err)
		os.Exit(1)
	}

	server := api.New(cfg, logger, gameSvc)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("carbarn api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
