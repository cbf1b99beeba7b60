// Package config provides configuration for the Persian PDF translator.
// Configuration is read once from environment variables at startup and
// passed into the pipeline; it is never mutated afterwards.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Environment variable names
const (
	EnvGeminiAPIKey      = "GEMINI_API_KEY"
	EnvModelName         = "MODEL_NAME"
	EnvFallbackModel     = "FALLBACK_MODEL"
	EnvMaxRetries        = "MAX_RETRIES"
	EnvRequestsPerMinute = "REQUESTS_PER_MINUTE"
	EnvBaseDelay         = "BASE_DELAY"
	EnvFontsDir          = "FONTS_DIR"
	EnvDefaultFont       = "DEFAULT_FONT"
	EnvLogLevel          = "LOG_LEVEL"
)

// Defaults for environment-backed settings
const (
	// DefaultModel is the primary translation model
	DefaultModel = "gemini-1.5-pro"
	// DefaultFallbackModel is tried when the primary model fails permanently
	DefaultFallbackModel = "gemini-1.5-flash"
	// DefaultMaxRetries is the maximum number of attempts per batch
	DefaultMaxRetries = 3
	// DefaultRequestsPerMinute caps the request rate against the API
	DefaultRequestsPerMinute = 20
	// DefaultBaseDelaySeconds is the initial backoff delay
	DefaultBaseDelaySeconds = 1.0
	// DefaultFontsDir is where Persian font files are searched
	DefaultFontsDir = "fonts"
	// DefaultFontFamily is used when an element's style has no Persian match
	DefaultFontFamily = "Vazirmatn"
)

// Layout and batching constants
const (
	// DefaultBatchSize is the number of elements merged into one API call
	DefaultBatchSize = 3
	// MinFontSize is the smallest size the fitter may shrink text to
	MinFontSize = 6.0
	// FontShrinkStep is the fixed size reduction per fitting iteration
	FontShrinkStep = 0.5
	// LineHeightRatio converts a font size to a line height
	LineHeightRatio = 1.2
	// MaxBackoffSeconds caps the exponential backoff delay
	MaxBackoffSeconds = 60.0
)

// Domains supported by the prompt templates
var Domains = []string{"general", "scientific", "genetic", "medical", "legal", "technical"}

// Config holds the runtime configuration for a translation run
type Config struct {
	APIKey            string
	Model             string
	FallbackModel     string
	MaxRetries        int
	RequestsPerMinute int
	BaseDelaySeconds  float64
	FontsDir          string
	DefaultFont       string
	LogLevel          string

	// Per-run settings from the command line
	BatchSize       int
	Domain          string
	ContinueOnError bool
}

// ErrMissingAPIKey is returned when GEMINI_API_KEY is not set
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable is not set")

// FromEnv builds a Config from environment variables, applying defaults
// for everything except the API key, which is required.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIKey:            os.Getenv(EnvGeminiAPIKey),
		Model:             envOrDefault(EnvModelName, DefaultModel),
		FallbackModel:     envOrDefault(EnvFallbackModel, DefaultFallbackModel),
		MaxRetries:        envInt(EnvMaxRetries, DefaultMaxRetries),
		RequestsPerMinute: envInt(EnvRequestsPerMinute, DefaultRequestsPerMinute),
		BaseDelaySeconds:  envFloat(EnvBaseDelay, DefaultBaseDelaySeconds),
		FontsDir:          envOrDefault(EnvFontsDir, DefaultFontsDir),
		DefaultFont:       envOrDefault(EnvDefaultFont, DefaultFontFamily),
		LogLevel:          envOrDefault(EnvLogLevel, "info"),
		BatchSize:         DefaultBatchSize,
		Domain:            "general",
	}

	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RequestsPerMinute < 1 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if cfg.BaseDelaySeconds <= 0 {
		cfg.BaseDelaySeconds = DefaultBaseDelaySeconds
	}

	return cfg, nil
}

// IsValidDomain reports whether the given domain has a prompt template.
func IsValidDomain(domain string) bool {
	for _, d := range Domains {
		if d == strings.ToLower(domain) {
			return true
		}
	}
	return false
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
