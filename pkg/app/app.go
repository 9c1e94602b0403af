// Package app composes configuration, logging, the ordering engine and the
// HTTP server behind a single Run call.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wholesale/pkg/config"
	"wholesale/pkg/engine"
	"wholesale/pkg/httpapi"
	"wholesale/pkg/seed"
	"wholesale/pkg/version"
	"wholesale/pkg/views"
)

// flags captures the command line. Flags that are set win over config.yaml
// and the environment.
type flags struct {
	showVersion bool
	configPath  string
	port        int
	domain      string
}

// Run loads configuration and serves until ctx is cancelled.
func Run(ctx context.Context, args []string) error {
	fl, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fl.showVersion {
		fmt.Printf("wholesale version %s (built %s)\n", version.Version(), version.BuildTime())
		return nil
	}

	cfg, err := config.Load(fl.configPath)
	if err != nil {
		return err
	}
	if fl.port != 0 {
		cfg.Server.Port = fl.port
	}
	if fl.domain != "" {
		cfg.Server.Domain = fl.domain
	}

	logger, err := NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("unable to init logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Starting wholesale ordering service",
		zap.String("version", version.Version()),
		zap.String("build_time", version.BuildTime()),
	)

	eng, err := NewEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer eng.Close()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := httpapi.New(eng, logger)

	if cfg.Server.Domain != "" {
		return serveDomain(ctx, cfg, srv.Handler(), logger)
	}
	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	go shutdownOnDone(ctx, cfg.Server.ShutdownTimeout, logger, server)

	logger.Info("Server starting", zap.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped unexpectedly: %w", err)
	}
	logger.Info("Server exited")
	return nil
}

// NewEngine builds the engine the configuration describes.
func NewEngine(cfg *config.Config, logger *zap.Logger) (*engine.Engine, error) {
	data := seed.Data{}
	if cfg.Store.Seed {
		var err error
		data, err = seed.Default()
		if err != nil {
			return nil, fmt.Errorf("unable to load seed data: %w", err)
		}
	}
	return engine.New(data, engine.Options{
		Logger:           logger.Named("engine"),
		Forecaster:       newForecaster(cfg.Forecast),
		DeliveryLeadDays: cfg.Orders.DeliveryLeadDays,
		Timeout:          cfg.Store.Timeout,
	}), nil
}

func newForecaster(cfg config.ForecastConfig) views.Forecaster {
	var synthetic *views.SyntheticForecaster
	if cfg.Seed != 0 {
		synthetic = views.NewSeededForecaster(cfg.Seed)
	} else {
		synthetic = views.NewSyntheticForecaster(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	if cfg.Model == "history" {
		return views.HistoryForecaster{Fallback: synthetic}
	}
	return synthetic
}

// NewLogger builds a zap logger: JSON in production format, console otherwise.
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return zapCfg.Build()
}

// parseFlags uses a dedicated FlagSet so Run can be called from multiple entry points.
func parseFlags(args []string) (flags, error) {
	set := flag.NewFlagSet("wholesale", flag.ContinueOnError)
	set.SetOutput(io.Discard)

	var fl flags
	set.BoolVar(&fl.showVersion, "version", false, "Show the application version")
	set.StringVar(&fl.configPath, "config", "", "Path to config.yaml; defaults to ./configs/config.yaml when present")
	set.IntVar(&fl.port, "port", 0, "Port for the HTTP server when not using -domain (overrides server.port)")
	set.StringVar(&fl.domain, "domain", "", "Serve HTTPS on 443 with an ephemeral certificate and redirect :80")

	if err := set.Parse(args); err != nil {
		return flags{}, err
	}
	return fl, nil
}

// shutdownOnDone gracefully stops servers once ctx is cancelled.
func shutdownOnDone(ctx context.Context, timeout time.Duration, logger *zap.Logger, servers ...*http.Server) {
	<-ctx.Done()
	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server forced to shutdown", zap.String("addr", srv.Addr), zap.Error(err))
		}
	}
}
