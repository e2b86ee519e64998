package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thruflo/findloop/internal/frames"
	"github.com/thruflo/findloop/internal/logging"
	"github.com/thruflo/findloop/internal/loopfind"
)

// Default values for Config.
const (
	DefaultFPS             = frames.DefaultFPS
	DefaultPattern         = frames.DefaultPattern
	DefaultMaxStarts       = loopfind.DefaultMaxStarts
	DefaultMatchesPerStart = loopfind.DefaultMatchesPerStart
	DefaultLogLevel        = "warn"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Search: Search{
			FPS:        DefaultFPS,
			Pattern:    DefaultPattern,
			Extensions: append([]string(nil), frames.DefaultExtensions...),
		},
		Candidates: Candidates{
			MaxStarts:       DefaultMaxStarts,
			MatchesPerStart: DefaultMatchesPerStart,
		},
		Log: Log{
			Level: DefaultLogLevel,
		},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// LoadConfig reads and parses the YAML file at path.
// An empty path or a missing file returns the default config.
// Applies defaults for any missing fields.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if !(cfg.Search.FPS > 0) || math.IsInf(cfg.Search.FPS, 0) {
		return ValidationError{Field: "search.fps", Message: "must be a positive finite number"}
	}
	if cfg.Search.Pattern == "" {
		return ValidationError{Field: "search.pattern", Message: "required field is empty"}
	}
	if _, err := filepath.Match(cfg.Search.Pattern, ""); err != nil {
		return ValidationError{Field: "search.pattern", Message: err.Error()}
	}
	for _, ext := range cfg.Search.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return ValidationError{Field: "search.extensions", Message: fmt.Sprintf("%q must start with a dot", ext)}
		}
	}
	if cfg.Candidates.MaxStarts < 0 {
		return ValidationError{Field: "candidates.max_starts", Message: "must not be negative"}
	}
	if cfg.Candidates.MatchesPerStart < 0 {
		return ValidationError{Field: "candidates.matches_per_start", Message: "must not be negative"}
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: err.Error()}
	}
	return nil
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
