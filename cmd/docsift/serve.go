package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/internal/api"
	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/embed"
	"github.com/docsift/docsift/internal/pipeline"
	"github.com/docsift/docsift/internal/runner"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the docsift HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		cfg := config.Load()
		if err := cfg.ValidateServe(); err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		openaiEmbedder := embed.NewOpenAIEmbedder(embed.OpenAIConfig{
			APIKey:     cfg.EmbedAPIKey,
			BaseURL:    cfg.EmbedBaseURL,
			Model:      cfg.EmbedModel,
			MaxRetries: cfg.EmbedMaxRetries,
			RetryDelay: cfg.EmbedRetryDelay,
			Timeout:    cfg.EmbedTimeout,
		})
		embedder := embed.NewCache(openaiEmbedder)

		orch := pipeline.NewOrchestrator(cfg, log)
		orch.Start(ctx)

		run := runner.New(cfg, embedder, log)
		srv := api.NewServer(orch, run, openaiEmbedder.Stats(), log, cfg)

		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
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
		}()

		log.Info("starting docsift", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}
