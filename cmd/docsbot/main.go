package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docsbot/internal/api"
	"github.com/dgallion1/docsbot/internal/bot"
	"github.com/dgallion1/docsbot/internal/config"
	"github.com/dgallion1/docsbot/internal/fetch"
	"github.com/dgallion1/docsbot/internal/parser"
	"github.com/dgallion1/docsbot/internal/store"
	"github.com/dgallion1/docsbot/internal/telegram"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients and stores.
	tg := telegram.NewClient(cfg.BotAPIURL, cfg.BotToken)
	fetcher, err := fetch.NewClient(cfg.DocsBaseURL, cfg.MaxFetchBytes, parser.Options{
		PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
	})
	if err != nil {
		log.Error("invalid docs base url", "error", err)
		os.Exit(1)
	}
	docs := store.NewDocStore(cfg.DocTTL)
	sessions := store.NewSessionStore(cfg.SessionTTL)

	// Initialize update processing.
	b := bot.New(tg, fetcher, docs, sessions, cfg.PageLimit, log)
	dispatcher := bot.NewDispatcher(b, docs, sessions, cfg.WorkerCount, cfg.MaxQueueSize, log)
	dispatcher.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(dispatcher, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		dispatcher.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		tg.Close()
		fetcher.Close()
	}()

	log.Info("starting docsbot", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
