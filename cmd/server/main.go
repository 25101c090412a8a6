package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/notegen/notegen/internal/api"
	"github.com/notegen/notegen/internal/config"
	"github.com/notegen/notegen/internal/expand"
	"github.com/notegen/notegen/internal/generate"
	"github.com/notegen/notegen/internal/pipeline"
	"github.com/notegen/notegen/internal/vault"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v, err := vault.New(cfg.VaultDir, log)
	if err != nil {
		log.Error("vault init failed", "error", err)
		os.Exit(1)
	}

	gen := generate.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	exp := expand.New(v, cfg.MaxDepth, log)
	svc := pipeline.NewService(v, exp, gen, cfg, log)

	orch := pipeline.NewOrchestrator(svc, cfg.WorkerCount, cfg.MaxQueueSize, cfg.JobTTL, log)
	orch.Start(ctx)

	srv := api.NewServer(svc, orch, gen, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		gen.Close()
	}()

	log.Info("starting notegen", "port", cfg.Port, "vault", cfg.VaultDir)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
