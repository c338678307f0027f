// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.minbar/config.yaml or ./config.yaml)
//  3. Default values
//
// The Gemini API key is read from GEMINI_API_KEY only. Its absence is
// not an error: the bot then answers deterministically from the
// knowledge base ("demo mode").
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTokens indicates the max tokens value is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max tokens")

	// ErrInvalidModelName indicates the model name is empty or malformed.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidDefaultYear indicates the default year is out of range.
	ErrInvalidDefaultYear = errors.New("invalid default year")

	// ErrInvalidTimeout indicates the generator timeout is out of range.
	ErrInvalidTimeout = errors.New("invalid generate timeout")

	// ErrMissingKBGlob indicates the knowledge base glob is empty.
	ErrMissingKBGlob = errors.New("missing knowledge base glob")
)

const (
	// DefaultModelName is the Gemini model used for grounded answers.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultGenerateTimeout bounds a single generator call, in seconds.
	DefaultGenerateTimeout = 20
)

// Config stores application configuration.
type Config struct {
	// HTTP server
	Addr       string `mapstructure:"addr"`
	TrustProxy bool   `mapstructure:"trust_proxy"` // trust X-Real-IP/X-Forwarded-For (behind reverse proxy)
	RateBurst  int    `mapstructure:"rate_burst"`  // webhook rate limiter burst per IP

	// Knowledge base
	KBGlob       string `mapstructure:"kb_glob"`
	ScheduleFile string `mapstructure:"schedule_file"`
	Watch        bool   `mapstructure:"watch"` // reload corpus on file changes

	// Date extraction: year assumed when a day-month date omits one.
	DefaultYear int `mapstructure:"default_year"`

	// Generator
	ModelName       string  `mapstructure:"model_name"`
	Temperature     float32 `mapstructure:"temperature"`
	MaxTokens       int     `mapstructure:"max_tokens"`
	GenerateTimeout int     `mapstructure:"generate_timeout"` // seconds

	// GeminiAPIKey is read from GEMINI_API_KEY. Optional; empty means
	// demo mode. Never written to the config file or logs.
	GeminiAPIKey string `mapstructure:"-"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".minbar"))
	}
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	cfg.GeminiAPIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", "127.0.0.1:8080")
	v.SetDefault("trust_proxy", false)
	v.SetDefault("rate_burst", 60)

	v.SetDefault("kb_glob", "kb/*.md")
	v.SetDefault("schedule_file", "kb/prayer_times.csv")
	v.SetDefault("watch", true)

	v.SetDefault("default_year", 2026)

	v.SetDefault("model_name", DefaultModelName)
	v.SetDefault("temperature", 0.2)
	v.SetDefault("max_tokens", 1024)
	v.SetDefault("generate_timeout", DefaultGenerateTimeout)
}

// bindEnvVariables binds environment overrides explicitly.
// GEMINI_API_KEY is read directly in Load, not via viper.
func bindEnvVariables(v *viper.Viper) {
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("addr", "MINBAR_ADDR")
	mustBind("trust_proxy", "MINBAR_TRUST_PROXY")
	mustBind("rate_burst", "MINBAR_RATE_BURST")
	mustBind("kb_glob", "MINBAR_KB_GLOB")
	mustBind("schedule_file", "MINBAR_SCHEDULE_FILE")
	mustBind("watch", "MINBAR_WATCH")
	mustBind("default_year", "MINBAR_DEFAULT_YEAR")
	mustBind("model_name", "MINBAR_MODEL_NAME")
	mustBind("temperature", "MINBAR_TEMPERATURE")
	mustBind("generate_timeout", "MINBAR_GENERATE_TIMEOUT")
}
