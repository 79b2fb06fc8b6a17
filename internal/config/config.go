// Package config loads the floodgate CLI configuration from flags, environment
// variables (FLOODGATE_*) and an optional YAML file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. FLOODGATE_LIMIT_CAPACITY.
const EnvPrefix = "FLOODGATE"

// Config is the resolved configuration of the serve command.
type Config struct {
	Server  ServerConfig
	Limit   LimitConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type LimitConfig struct {
	Capacity uint64
	Period   time.Duration
}

type LoggingConfig struct {
	Backend string
	Level   string
}

// NewViper returns a viper instance with defaults and env binding applied.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("limit.capacity", 5)
	v.SetDefault("limit.period", time.Minute)
	v.SetDefault("logging.backend", "zap")
	v.SetDefault("logging.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file into v and resolves a Config.
// An empty path skips the file.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Limit: LimitConfig{
			Capacity: v.GetUint64("limit.capacity"),
			Period:   v.GetDuration("limit.period"),
		},
		Logging: LoggingConfig{
			Backend: v.GetString("logging.backend"),
			Level:   v.GetString("logging.level"),
		},
	}

	if cfg.Limit.Period < 0 {
		return nil, fmt.Errorf("limit.period must not be negative, got %s", cfg.Limit.Period)
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("server.shutdown_timeout must be positive, got %s", cfg.Server.ShutdownTimeout)
	}

	return cfg, nil
}
