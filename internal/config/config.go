// Package config loads application configuration from environment variables
// (prefix WEALTHGAP) with an optional YAML file underneath. Environment
// values take precedence over file values.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the envconfig prefix for all settings.
const EnvPrefix = "WEALTHGAP"

// DefaultConfigFile is consulted when WEALTHGAP_CONFIG_FILE is unset.
const DefaultConfigFile = "config.yaml"

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Upload   UploadConfig   `yaml:"upload" envconfig:"UPLOAD"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// SecurityConfig contains CORS and rate limiting configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// UploadConfig bounds dataset uploads and the derived views.
type UploadConfig struct {
	// MaxSizeBytes caps the multipart upload body. Datasets are held fully
	// in memory, so this is the effective memory bound per session.
	MaxSizeBytes      int64    `yaml:"max_size_bytes" envconfig:"MAX_SIZE_BYTES" default:"10485760"`
	AllowedExtensions []string `yaml:"allowed_extensions" envconfig:"ALLOWED_EXTENSIONS" default:".csv,.xlsx,.xlsm,.xls"`
	PreviewRows       int      `yaml:"preview_rows" envconfig:"PREVIEW_ROWS" default:"5"`
	// MinCompareStates is the recommended selection size for the comparison
	// view. Smaller selections still work; the view carries an advisory
	// message instead of failing.
	MinCompareStates int `yaml:"min_compare_states" envconfig:"MIN_COMPARE_STATES" default:"5"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var fileCfg Config
	configFile := os.Getenv(EnvPrefix + "_CONFIG_FILE")
	if configFile == "" {
		configFile = DefaultConfigFile
	}
	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configFile, err)
		}
	}

	// envconfig fills defaults and environment overrides on top of the
	// file values.
	cfg := fileCfg
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate checks configuration constraints
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("upload max size must be positive, got %d", c.Upload.MaxSizeBytes)
	}
	if c.Upload.PreviewRows < 0 {
		return fmt.Errorf("preview rows must not be negative, got %d", c.Upload.PreviewRows)
	}
	for _, ext := range c.Upload.AllowedExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("allowed extension %q must start with a dot", ext)
		}
	}
	if c.Security.RateLimit.Enabled && c.Security.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive, got %f", c.Security.RateLimit.RPS)
	}
	return nil
}

// ListenAddr returns the server's listen address.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
