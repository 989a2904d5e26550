// Package config loads liftlogic.yaml, applies .env and environment
// overrides, and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/thruflo/liftlogic/internal/audit"
	"github.com/thruflo/liftlogic/internal/logging"
	"github.com/thruflo/liftlogic/internal/rep"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "liftlogic.yaml"

// Default values for Config.
const (
	DefaultMode       = "squat"
	DefaultFormat     = audit.FormatCSV
	DefaultAuditDir   = "."
	DefaultDatabase   = "liftlogic.db"
	DefaultSpeechRate = 150
	DefaultSourcePath = "-"
	DefaultLogLevel   = "warn"
)

// Environment variables that override file values.
const (
	EnvMode          = "LIFTLOGIC_MODE"
	EnvAuditFormat   = "LIFTLOGIC_AUDIT_FORMAT"
	EnvAuditDir      = "LIFTLOGIC_AUDIT_DIR"
	EnvAuditDatabase = "LIFTLOGIC_AUDIT_DATABASE"
	EnvSpeech        = "LIFTLOGIC_SPEECH"
	EnvSpeechCommand = "LIFTLOGIC_SPEECH_COMMAND"
	EnvSource        = "LIFTLOGIC_SOURCE"
	EnvFPS           = "LIFTLOGIC_FPS"
	EnvLogLevel      = "LIFTLOGIC_LOG_LEVEL"
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Mode: DefaultMode,
		Audit: Audit{
			Format:   DefaultFormat,
			Dir:      DefaultAuditDir,
			Database: DefaultDatabase,
		},
		Speech: Speech{
			Enabled: true,
			Rate:    DefaultSpeechRate,
		},
		Source: Source{
			Path: DefaultSourcePath,
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

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// Load reads the config file at path, or liftlogic.yaml in dir when path is
// empty. A missing default file yields defaults; a missing explicit file is an
// error. Environment overrides are applied before validation.
func Load(dir, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, FileName)
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := ApplyEnv(&cfg, os.Getenv); err != nil {
		return nil, err
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadEnv loads .env from dir into the process environment if present.
// Variables already set win over the file.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg fields from LIFTLOGIC_* variables looked up with
// getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvMode); v != "" {
		cfg.Mode = v
	}
	if v := getenv(EnvAuditFormat); v != "" {
		cfg.Audit.Format = v
	}
	if v := getenv(EnvAuditDir); v != "" {
		cfg.Audit.Dir = v
	}
	if v := getenv(EnvAuditDatabase); v != "" {
		cfg.Audit.Database = v
	}
	if v := getenv(EnvSpeech); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return ValidationError{Field: EnvSpeech, Message: "must be a boolean"}
		}
		cfg.Speech.Enabled = enabled
	}
	if v := getenv(EnvSpeechCommand); v != "" {
		cfg.Speech.Command = v
	}
	if v := getenv(EnvSource); v != "" {
		cfg.Source.Path = v
	}
	if v := getenv(EnvFPS); v != "" {
		fps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return ValidationError{Field: EnvFPS, Message: "must be a number"}
		}
		cfg.Source.FPS = fps
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if _, err := rep.ParseMode(cfg.Mode); err != nil {
		return ValidationError{Field: "mode", Message: "must be squat or curl"}
	}

	switch strings.ToLower(cfg.Audit.Format) {
	case audit.FormatCSV:
		if cfg.Audit.Dir == "" {
			return ValidationError{Field: "audit.dir", Message: "required for csv format"}
		}
	case audit.FormatSQLite:
		if cfg.Audit.Database == "" {
			return ValidationError{Field: "audit.database", Message: "required for sqlite format"}
		}
	default:
		return ValidationError{Field: "audit.format", Message: "must be csv or sqlite"}
	}

	if cfg.Speech.Rate <= 0 {
		return ValidationError{Field: "speech.rate", Message: "must be positive"}
	}

	if cfg.Source.Path == "" {
		return ValidationError{Field: "source.path", Message: "required field is empty"}
	}
	if cfg.Source.FPS < 0 {
		return ValidationError{Field: "source.fps", Message: "must not be negative"}
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: "must be debug, info, warn or error"}
	}

	return nil
}
