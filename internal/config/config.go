// Package config provides configuration management for the cuadro harvester.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrInvalidMaxWorkers        = errors.New("batch.max_workers must be at least 1")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidMaxDelay          = errors.New("retry.max_delay_ms cannot be lower than retry.initial_delay_ms")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be greater than 0")
	ErrInvalidMinLength         = errors.New("validation.min_length must be non-negative")
	ErrNoTableMarkers           = errors.New("validation.table_markers must not be empty")
	ErrNoRowMarkers             = errors.New("validation.row_markers must not be empty")
	ErrInvalidStrategy          = errors.New("extraction.strategy must be 'node' or 'global'")
	ErrInvalidBoilerplateMatch  = errors.New("extraction.boilerplate_match must be 'substring' or 'exact'")
	ErrMissingOutputDirs        = errors.New("output.raw_dir and output.normalized_dir are required")
	ErrInvalidRawExt            = errors.New("output.raw_ext must be a bare extension without dots or separators")
	ErrInvalidMaxNameLength     = errors.New("output.max_name_length must be at least 1")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat         = errors.New("logging.format must be 'text' or 'json'")
)

// Normalization strategies.
const (
	StrategyNode   = "node"
	StrategyGlobal = "global"
)

// Boilerplate match policies.
const (
	MatchSubstring = "substring"
	MatchExact     = "exact"
)

// Config represents the complete harvester configuration.
type Config struct {
	Batch      BatchConfig      `yaml:"batch"`
	Retry      RetryPolicy      `yaml:"retry"`
	Validation ValidationConfig `yaml:"validation"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Output     OutputConfig     `yaml:"output"`
	HTTP       HTTPConfig       `yaml:"http"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// BatchConfig controls the worker pool.
type BatchConfig struct {
	Context    string `yaml:"context"`
	MaxWorkers int    `yaml:"max_workers"`
}

// RetryPolicy defines retry behavior. A multiplier of 1.0 gives a fixed delay.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        float64 `yaml:"timeout_sec"`
}

// ValidationConfig defines the structural checks applied to every payload.
type ValidationConfig struct {
	TableMarkers []string `yaml:"table_markers"`
	RowMarkers   []string `yaml:"row_markers"`
	MinLength    int      `yaml:"min_length"`
}

// ExtractionConfig defines how tables are normalized and cleaned.
type ExtractionConfig struct {
	Strategy            string   `yaml:"strategy"`
	HeaderSeparator     string   `yaml:"header_separator"`
	BoilerplateMatch    string   `yaml:"boilerplate_match"`
	TitleSelector       string   `yaml:"title_selector"`
	BoilerplateKeywords []string `yaml:"boilerplate_keywords"`
}

// OutputConfig defines where artifacts are written.
type OutputConfig struct {
	RawDir        string `yaml:"raw_dir"`
	NormalizedDir string `yaml:"normalized_dir"`
	RawExt        string `yaml:"raw_ext"`
	MaxNameLength int    `yaml:"max_name_length"`
}

// HTTPConfig defines the shared session headers.
type HTTPConfig struct {
	Headers   map[string]string `yaml:"headers"`
	UserAgent string            `yaml:"user_agent"`
	Referer   string            `yaml:"referer"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultBoilerplateKeywords are first-column labels that mark presentation rows.
var DefaultBoilerplateKeywords = []string{"total", "subtotal", "fuente", "nota", "source:", "note:"}

// Default returns a configuration with every field set to its documented default.
func Default() *Config {
	return &Config{
		Batch: BatchConfig{
			MaxWorkers: 5,
		},
		Retry: RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    1500,
			MaxDelayMs:        1500,
			BackoffMultiplier: 1.0,
			TimeoutSec:        60,
		},
		Validation: ValidationConfig{
			MinLength:    500,
			TableMarkers: []string{"<table"},
			RowMarkers:   []string{"<tr"},
		},
		Extraction: ExtractionConfig{
			Strategy:            StrategyNode,
			HeaderSeparator:     "_",
			BoilerplateMatch:    MatchSubstring,
			TitleSelector:       "h3",
			BoilerplateKeywords: append([]string(nil), DefaultBoilerplateKeywords...),
		},
		Output: OutputConfig{
			RawExt:        "html",
			MaxNameLength: 180,
		},
		HTTP: HTTPConfig{
			UserAgent: "Mozilla/5.0",
			Referer:   "https://www.spensiones.cl/apps/centroEstadisticas/paginaCuadrosCCEE.php",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults and validates it.
func LoadConfig(filepath string) (*Config, error) {
	cfg, err := LoadFile(filepath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFile reads a YAML file on top of the defaults without validating, so
// callers can apply overrides first.
func LoadFile(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// A max delay left at its default follows a larger initial delay.
	var set struct {
		Retry struct {
			MaxDelayMs *int `yaml:"max_delay_ms"`
		} `yaml:"retry"`
	}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if set.Retry.MaxDelayMs == nil && cfg.Retry.MaxDelayMs < cfg.Retry.InitialDelayMs {
		cfg.Retry.MaxDelayMs = cfg.Retry.InitialDelayMs
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Batch.MaxWorkers < 1 {
		return ErrInvalidMaxWorkers
	}

	if err := c.Retry.Validate(); err != nil {
		return err
	}

	if c.Validation.MinLength < 0 {
		return ErrInvalidMinLength
	}

	if len(c.Validation.TableMarkers) == 0 {
		return ErrNoTableMarkers
	}

	if len(c.Validation.RowMarkers) == 0 {
		return ErrNoRowMarkers
	}

	if c.Extraction.Strategy != StrategyNode && c.Extraction.Strategy != StrategyGlobal {
		return ErrInvalidStrategy
	}

	if c.Extraction.BoilerplateMatch != MatchSubstring && c.Extraction.BoilerplateMatch != MatchExact {
		return ErrInvalidBoilerplateMatch
	}

	if c.Output.RawDir == "" || c.Output.NormalizedDir == "" {
		return ErrMissingOutputDirs
	}

	if c.Output.RawExt == "" || strings.ContainsAny(c.Output.RawExt, `./\`) {
		return ErrInvalidRawExt
	}

	if c.Output.MaxNameLength < 1 {
		return ErrInvalidMaxNameLength
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// Validate checks the retry policy on its own.
func (rp *RetryPolicy) Validate() error {
	if rp.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if rp.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if rp.MaxDelayMs < rp.InitialDelayMs {
		return ErrInvalidMaxDelay
	}

	if rp.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if rp.TimeoutSec <= 0 {
		return ErrInvalidTimeout
	}

	return nil
}

// GetRetryDelay calculates the backoff delay to wait before the given attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 2; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-request timeout.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec * float64(time.Second))
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Workers: %d, MaxAttempts: %d, Strategy: %s, Raw: %s, Normalized: %s}",
		c.Batch.MaxWorkers,
		c.Retry.MaxAttempts,
		c.Extraction.Strategy,
		c.Output.RawDir,
		c.Output.NormalizedDir,
	)
}
