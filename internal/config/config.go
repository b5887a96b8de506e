// Package config provides configuration loading and validation for the CLI,
// the HTTP server and the queue worker.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/career-navigator/internal/logging"
	"github.com/jonathan/career-navigator/internal/parsing"
	"github.com/jonathan/career-navigator/internal/sections"
)

// Config holds every tunable of the system. Values come from defaults, an
// optional JSON file and then environment variables, in that order.
type Config struct {
	Port int `json:"port,omitempty" validate:"gte=1,lte=65535"`

	// Backends. Each is optional; the feature using it is disabled when empty.
	DatabaseURL string `json:"database_url,omitempty"`
	RedisURL    string `json:"redis_url,omitempty"`
	AMQPURL     string `json:"amqp_url,omitempty"`

	// S3-compatible object storage for uploaded résumés
	S3Bucket    string `json:"s3_bucket,omitempty"`
	S3Endpoint  string `json:"s3_endpoint,omitempty" validate:"omitempty,url"`
	S3Region    string `json:"s3_region,omitempty"`
	S3AccessKey string `json:"s3_access_key,omitempty"`
	S3SecretKey string `json:"s3_secret_key,omitempty"`

	// Queue names
	ParseQueue  string `json:"parse_queue,omitempty" validate:"required"`
	ResultQueue string `json:"result_queue,omitempty" validate:"required"`

	LogLevel string `json:"log_level,omitempty" validate:"oneof=debug info warn error"`

	// Extraction behavior
	HeadingStrictness string `json:"heading_strictness,omitempty" validate:"oneof=line anywhere"`
	SeniorityBonus    bool   `json:"seniority_bonus,omitempty"`
	EducationFallback bool   `json:"education_fallback,omitempty"`

	// Limits
	MaxUploadBytes     int64    `json:"max_upload_bytes,omitempty" validate:"gt=0"`
	RateLimitPerMinute int      `json:"rate_limit_per_minute,omitempty" validate:"gt=0"`
	RateLimitBurst     int      `json:"rate_limit_burst,omitempty" validate:"gt=0"`
	CacheTTL           Duration `json:"cache_ttl,omitempty"`
}

// Duration is a time.Duration that reads "10m"-style strings from JSON.
type Duration time.Duration

// UnmarshalJSON accepts a duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var secs float64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("duration must be a string or a number of seconds")
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Port:               8080,
		S3Region:           "auto",
		ParseQueue:         "resume.parse",
		ResultQueue:        "resume.parsed",
		LogLevel:           "info",
		HeadingStrictness:  "line",
		MaxUploadBytes:     10 << 20,
		RateLimitPerMinute: 60,
		RateLimitBurst:     10,
		CacheTTL:           Duration(15 * time.Minute),
	}
}

// LoadConfig loads configuration from a JSON file on top of the defaults.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: defaults, then the JSON file at
// path when path is non-empty, then environment variables. The result is
// validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fromFile, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = *fromFile
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overlays values found through lookup. Unset variables leave the
// current value alone.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("DATABASE_URL", &c.DatabaseURL)
	str("REDIS_URL", &c.RedisURL)
	str("AMQP_URL", &c.AMQPURL)
	str("S3_BUCKET", &c.S3Bucket)
	str("S3_ENDPOINT", &c.S3Endpoint)
	str("S3_REGION", &c.S3Region)
	str("S3_ACCESS_KEY", &c.S3AccessKey)
	str("S3_SECRET_KEY", &c.S3SecretKey)
	str("PARSE_QUEUE", &c.ParseQueue)
	str("RESULT_QUEUE", &c.ResultQueue)
	str("LOG_LEVEL", &c.LogLevel)
	str("HEADING_STRICTNESS", &c.HeadingStrictness)

	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &c.Port},
		{"RATE_LIMIT_PER_MINUTE", &c.RateLimitPerMinute},
		{"RATE_LIMIT_BURST", &c.RateLimitBurst},
	}
	for _, e := range ints {
		if v, ok := lookup(e.key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return &EnvError{Key: e.key, Value: v, Cause: err}
			}
			*e.dst = n
		}
	}

	if v, ok := lookup("MAX_UPLOAD_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return &EnvError{Key: "MAX_UPLOAD_BYTES", Value: v, Cause: err}
		}
		c.MaxUploadBytes = n
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"SENIORITY_BONUS", &c.SeniorityBonus},
		{"EDUCATION_FALLBACK", &c.EducationFallback},
	}
	for _, e := range bools {
		if v, ok := lookup(e.key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return &EnvError{Key: e.key, Value: v, Cause: err}
			}
			*e.dst = b
		}
	}

	if v, ok := lookup("CACHE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &EnvError{Key: "CACHE_TTL", Value: v, Cause: err}
		}
		c.CacheTTL = Duration(d)
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &ValidationError{Message: "config error", Cause: err}
	}
	if c.CacheTTL < 0 {
		return &ValidationError{Message: "config error: 'cache_ttl' must be non-negative"}
	}
	if (c.S3AccessKey == "") != (c.S3SecretKey == "") {
		return &ValidationError{Message: "config error: 's3_access_key' and 's3_secret_key' must be set together"}
	}
	return nil
}

// ParserOptions translates the extraction settings for the parser.
func (c *Config) ParserOptions() (parsing.Options, error) {
	strictness, err := sections.ParseStrictness(c.HeadingStrictness)
	if err != nil {
		return parsing.Options{}, err
	}
	return parsing.Options{
		Strictness:        strictness,
		EducationFallback: c.EducationFallback,
		SeniorityBonus:    c.SeniorityBonus,
	}, nil
}

// Logger builds a logger at the configured level.
func (c *Config) Logger() *logging.Logger {
	return logging.New(c.LogLevel)
}

// CacheTTLDuration returns CacheTTL as a time.Duration.
func (c *Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL)
}
