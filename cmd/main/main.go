package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"hangman-duel-bot/internal/bot"
	"hangman-duel-bot/internal/config"
	"hangman-duel-bot/internal/i18n"
	"hangman-duel-bot/internal/kv"
	"hangman-duel-bot/internal/logging"
	"hangman-duel-bot/internal/web"
	"hangman-duel-bot/internal/wordbank"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting hangman duel",
		zap.String("store", cfg.StoreDriver),
		zap.String("http_addr", cfg.HTTPAddr),
		zap.Bool("telegram", cfg.TelegramBotToken != ""),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	bank := wordbank.New(store, wordbank.WithLogger(logger))
	if err := bank.Load(); err != nil {
		return fmt.Errorf("load word bank: %w", err)
	}
	logger.Info("word bank loaded", zap.Int("words", bank.Len()))

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	var httpServer *http.Server
	if cfg.HTTPAddr != "" {
		httpServer = &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           web.NewServer(bank, store, logger).Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("http server: %w", err)
			}
		}()
	}

	if cfg.TelegramBotToken != "" {
		localizer, err := i18n.New(i18n.Catalogs)
		if err != nil {
			return fmt.Errorf("load translations: %w", err)
		}
		b, err := bot.New(cfg, localizer, bank, logger)
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Start(ctx)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		stop()
	}

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http server shutdown", zap.Error(err))
		}
	}

	wg.Wait()
	logger.Info("stopped")
	return runErr
}

func openStore(cfg *config.Config, logger *zap.Logger) (kv.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, the word bank will not survive a restart")
		return kv.NewMemory(), func() {}, nil
	case config.DriverSupabase:
		return kv.NewSupabase(cfg.SupabaseURL, cfg.SupabaseKey, logger), func() {}, nil
	default:
		s, err := kv.OpenSQLite(cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, func() {
			if err := s.Close(); err != nil {
				logger.Warn("close sqlite store", zap.Error(err))
			}
		}, nil
	}
}
