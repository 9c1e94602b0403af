// Package config loads service settings from config.yaml, .env and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. WHOLESALE_SERVER_PORT.
const EnvPrefix = "WHOLESALE"

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Store    StoreConfig    `mapstructure:"store"`
	Orders   OrdersConfig   `mapstructure:"orders"`
	Forecast ForecastConfig `mapstructure:"forecast"`
}

// ServerConfig controls the HTTP listener. A non-empty Domain switches to
// HTTPS on 443.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	Domain          string        `mapstructure:"domain"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig selects the zap level and the json or console encoder.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StoreConfig tunes the session store. Seed loads the embedded demo data.
type StoreConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Seed    bool          `mapstructure:"seed"`
}

// OrdersConfig holds ordering defaults. DeliveryLeadDays must be at least 1.
type OrdersConfig struct {
	DeliveryLeadDays int `mapstructure:"delivery_lead_days"`
}

// ForecastConfig selects the dashboard demand model: "synthetic" draws
// random figures, "history" derives them from the order log.
type ForecastConfig struct {
	Model string `mapstructure:"model"`
	Seed  int64  `mapstructure:"seed"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8765)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.domain", "")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("store.timeout", 2*time.Second)
	v.SetDefault("store.seed", true)
	v.SetDefault("orders.delivery_lead_days", 2)
	v.SetDefault("forecast.model", "synthetic")
	v.SetDefault("forecast.seed", 0)
}

// Load reads configuration. With an empty path it looks for config.yaml in
// ./configs and the working directory and is fine if none exists; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	// .env is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is honored the way hosting platforms set it.
	v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Orders.DeliveryLeadDays < 1 {
		return fmt.Errorf("invalid orders.delivery_lead_days %d", c.Orders.DeliveryLeadDays)
	}
	switch c.Forecast.Model {
	case "synthetic", "history":
	default:
		return fmt.Errorf("invalid forecast.model %q", c.Forecast.Model)
	}
	return nil
}

// Address is the listen address for plain HTTP.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
