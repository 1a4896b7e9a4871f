// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidyfs/tidyfs/internal/checksum"
	"github.com/tidyfs/tidyfs/internal/logging"
	"github.com/tidyfs/tidyfs/internal/normpath"
)

// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config holds the application configuration.
	Config struct {
		Normpath NormpathConfig `json:"normpath" mapstructure:"normpath"`
		Checksum ChecksumConfig `json:"checksum" mapstructure:"checksum"`
		Log      LogConfig      `json:"log" mapstructure:"log"`
		UI       UIConfig       `json:"ui" mapstructure:"ui"`
		Database DatabaseConfig `json:"database" mapstructure:"database"`
	}

	// NormpathConfig sets defaults for the normpath command.
	NormpathConfig struct {
		// Mode is "plan" (default) or "apply".
		Mode normpath.Mode `json:"mode" mapstructure:"mode"`
		// Exclude lists doublestar globs matched against root-relative paths.
		Exclude []string `json:"exclude" mapstructure:"exclude"`
	}

	// ChecksumConfig sets defaults for the sum command.
	ChecksumConfig struct {
		Algorithm checksum.Algorithm `json:"algorithm" mapstructure:"algorithm"`
	}

	// LogConfig configures the shared logger.
	LogConfig struct {
		Level  string         `json:"level" mapstructure:"level"`
		Format logging.Format `json:"format" mapstructure:"format"`
		// File redirects logs to a size-rotated file when set.
		File string `json:"file" mapstructure:"file"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose prints full error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// DatabaseConfig holds connection defaults for the query command. The
	// password is never read from the config file.
	DatabaseConfig struct {
		Binary string `json:"binary" mapstructure:"binary"`
		Host   string `json:"host" mapstructure:"host"`
		Port   int    `json:"port" mapstructure:"port"`
		Name   string `json:"name" mapstructure:"name"`
		User   string `json:"user" mapstructure:"user"`
	}

	// InvalidConfigError collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Normpath: NormpathConfig{Mode: normpath.ModePlan, Exclude: []string{}},
		Checksum: ChecksumConfig{Algorithm: checksum.Default},
		Log:      LogConfig{Level: "warn", Format: logging.FormatText},
		Database: DatabaseConfig{Binary: "mysql"},
	}
}

// Validate checks values that viper merged from the environment, which the
// CUE schema never sees.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Normpath.Mode.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("normpath.mode: %w", err))
	}
	if err := c.Checksum.Algorithm.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("checksum.algorithm: %w", err))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := logging.ParseFormat(string(c.Log.Format)); err != nil {
		errs = append(errs, fmt.Errorf("log.format: %w", err))
	}
	if strings.TrimSpace(c.Database.Binary) == "" {
		errs = append(errs, errors.New("database.binary: must not be empty"))
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Errorf("database.port: %d out of range", c.Database.Port))
	}

	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap exposes ErrInvalidConfig and every field error to errors.Is().
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
