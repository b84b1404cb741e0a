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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/lojasmm/sonora/internal/catalog"
	"github.com/lojasmm/sonora/internal/config"
	"github.com/lojasmm/sonora/internal/logging"
	"github.com/lojasmm/sonora/internal/metrics"
	"github.com/lojasmm/sonora/internal/render"
	"github.com/lojasmm/sonora/internal/resolver"
	"github.com/lojasmm/sonora/internal/server"
	"github.com/lojasmm/sonora/internal/session"
)

const cleanupInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Development: cfg.LogDev})
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logger.Sync()

	products, responses, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		logger.Fatal("sonora: loading catalog", zap.String("file", cfg.CatalogFile), zap.Error(err))
	}
	logger.Info("sonora: catalog ready",
		zap.Int("products", products.Len()),
		zap.Int("topics", len(responses.Topics())))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	sessions := session.NewManager(session.Options{
		Resolver:          resolver.New(products, responses),
		Renderer:          render.New(products),
		Logger:            logger,
		Metrics:           m,
		LoadTimeout:       cfg.LoadTimeout,
		TypingDelay:       cfg.TypingDelay,
		TypingJitter:      cfg.TypingJitter,
		LinkReplyDelay:    cfg.LinkDelay,
		MessagesPerMinute: cfg.RateLimitPerMin,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Idle sessions are dropped so abandoned tabs don't hold memory.
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sessions.Cleanup(cfg.SessionTTL)
			}
		}
	}()

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     server.New(sessions, logger, m, reg).Router(),
		ReadTimeout: 10 * time.Second,
		// no WriteTimeout: the event stream is long-lived and sets its own deadlines
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("sonora: listening", zap.String("addr", srv.Addr), zap.String("base_url", cfg.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("sonora: shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("sonora: stopped")
}
