package app

import (
	"context"
	"crypto/x509"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wholesale/pkg/config"
	"wholesale/pkg/views"
)

func TestParseFlags(t *testing.T) {
	fl, err := parseFlags([]string{"-port", "9001", "-config", "x.yaml"})
	require.NoError(t, err)
	assert.Equal(t, 9001, fl.port)
	assert.Equal(t, "x.yaml", fl.configPath)
	assert.False(t, fl.showVersion)

	_, err = parseFlags([]string{"-bogus"})
	assert.Error(t, err)
}

func TestRunPrintsVersion(t *testing.T) {
	assert.NoError(t, Run(context.Background(), []string{"-version"}))
}

func TestNewForecasterSelectsModel(t *testing.T) {
	_, isHistory := newForecaster(config.ForecastConfig{Model: "history", Seed: 3}).(views.HistoryForecaster)
	assert.True(t, isHistory)

	_, isSynthetic := newForecaster(config.ForecastConfig{Model: "synthetic"}).(*views.SyntheticForecaster)
	assert.True(t, isSynthetic)
}

func TestNewEngineWithAndWithoutSeed(t *testing.T) {
	cfg := &config.Config{
		Store:    config.StoreConfig{Seed: true, Timeout: time.Second},
		Orders:   config.OrdersConfig{DeliveryLeadDays: 2},
		Forecast: config.ForecastConfig{Model: "synthetic", Seed: 1},
	}
	eng, err := NewEngine(cfg, zap.NewNop())
	require.NoError(t, err)
	defer eng.Close()
	products, err := eng.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 5)

	cfg.Store.Seed = false
	empty, err := NewEngine(cfg, zap.NewNop())
	require.NoError(t, err)
	defer empty.Close()
	products, err = empty.Products(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))
}

func TestSelfSignedCertificate(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	cert, err := selfSignedCertificate("bakery.example", now)
	require.NoError(t, err)
	require.NotEmpty(t, cert.Certificate)

	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"bakery.example"}, leaf.DNSNames)
	assert.True(t, leaf.NotAfter.After(now))
}
