package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/api"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/config"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/sheets"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/source"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/web"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional; EZF_* env vars take precedence)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connector, err := sheets.FromConfig(ctx, cfg, logger.Named("sheets"))
	if err != nil {
		// Boot anyway. Every load through a dead connector resolves to the
		// embedded fallback dataset, so the dashboard stays up.
		logger.Warn("spreadsheet connector unavailable", zap.Error(err))
		connector = sheets.Unavailable(err)
	}

	rates := source.NewRateSource(connector, cfg.Worksheet, cfg.CacheTTL, logger.Named("rates"))
	fintech := source.NewFintechSource()

	renderer, err := web.NewRenderer(cfg.ShowFallbackNotice)
	if err != nil {
		logger.Fatal("build renderer", zap.Error(err))
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Deps{
		Logger:   logger.Named("http"),
		Rates:    rates,
		Fintech:  fintech,
		Renderer: renderer,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			zap.String("addr", cfg.Addr()),
			zap.String("worksheet", cfg.Worksheet),
			zap.Duration("cache_ttl", cfg.CacheTTL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
