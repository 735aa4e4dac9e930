// Package config loads the runtime configuration of beamcheck from an
// optional YAML file, an optional .env file and BEAMCHECK_ environment
// variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/alexiusacademia/beamcheck/internal/logging"
)

const (
	// EnvPrefix is prepended to every environment variable name
	EnvPrefix = "BEAMCHECK"

	// DefaultConfigName is looked up in the working directory when no
	// config file is given
	DefaultConfigName = "beamcheck"
)

// Config is the complete runtime configuration.
type Config struct {
	Logging logging.Config `mapstructure:"logging"`
	Server  ServerConfig   `mapstructure:"server"`
	Batch   BatchConfig    `mapstructure:"batch"`
	Report  ReportConfig   `mapstructure:"report"`
}

// ServerConfig defines runtime parameters for the HTTP server.
type ServerConfig struct {
	Addr            string          `mapstructure:"addr"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64           `mapstructure:"max_body_bytes"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
	Auth            AuthConfig      `mapstructure:"auth"`
}

// RateLimitConfig is the per-client token bucket.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// AuthConfig enables bearer token authentication when JWTKey is set.
type AuthConfig struct {
	JWTKey string `mapstructure:"jwt_key"`
}

// BatchConfig controls spreadsheet batch runs.
type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

// ReportConfig fills the title block of generated reports.
type ReportConfig struct {
	Project string `mapstructure:"project"`
	Author  string `mapstructure:"author"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_file", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.max_body_bytes", int64(1<<20))
	v.SetDefault("server.rate_limit.rps", 5.0)
	v.SetDefault("server.rate_limit.burst", 10)
	v.SetDefault("server.auth.jwt_key", "")

	v.SetDefault("batch.workers", 4)

	v.SetDefault("report.project", "")
	v.SetDefault("report.author", "")
}

// Load reads the configuration. An empty path looks for beamcheck.yaml in
// the working directory and falls back to defaults when it is missing; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that would otherwise fail at run time.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Server.RateLimit.RPS < 0 || c.Server.RateLimit.Burst < 0 {
		return fmt.Errorf("server.rate_limit values must not be negative")
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	return nil
}
