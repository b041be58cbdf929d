// Package config holds the runtime configuration of simple-crypt.
package config

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/idelchi/gogen/pkg/validator"
	"github.com/idelchi/simplecrypt/internal/status"
	"github.com/idelchi/simplecrypt/pkg/keystream"
)

// Config is populated from flags and SIMPLE_CRYPT_* environment variables.
type Config struct {
	// Show prints the resolved configuration and exits
	Show bool

	// Key is the user supplied key string
	Key string `mask:"fixed"`
	// KeySet reports whether a key was supplied at all; an empty key is valid
	KeySet bool `mapstructure:"-"`
	// LegacyHash sign-extends key bytes >= 0x80 while hashing
	LegacyHash bool `mapstructure:"legacy-hash"`

	Verbose   bool
	Recursive bool
	Dump      bool
	Inplace   bool
	Output    string

	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`
	Stats              bool

	LogLevel string `mapstructure:"log-level" validate:"loglevel"`
	LogJSON  bool   `mapstructure:"log-json"`

	// Positional arguments
	Paths []string `validate:"dive,required" label:"path"`
}

// Display returns the value of the Show field.
func (c Config) Display() bool {
	return c.Show
}

// Validate checks that a key was supplied and validates config against its struct tags.
// Failures other than a missing key are wrapped in status.ErrUsage.
func (c Config) Validate(config any) error {
	if !c.KeySet {
		return status.ErrNoKey
	}

	validator := validator.NewValidator()

	if err := registerLogLevel(validator); err != nil {
		return fmt.Errorf("registering loglevel: %w", err)
	}

	errs := validator.Validate(config)

	switch {
	case errs == nil:
		return nil
	case len(errs) == 1:
		return fmt.Errorf("%w: %w", status.ErrUsage, errs[0])
	default:
		return fmt.Errorf("%w:\n%w", status.ErrUsage, errors.Join(errs...))
	}
}

// KeyHash derives the generator seed from the key.
func (c Config) KeyHash() keystream.Hash {
	if c.LegacyHash {
		return keystream.SumSigned([]byte(c.Key))
	}

	return keystream.Sum([]byte(c.Key))
}

// Level returns the log level; verbose mode lowers it to at least info.
func (c Config) Level() hclog.Level {
	level := hclog.LevelFromString(c.LogLevel)
	if level == hclog.NoLevel {
		level = hclog.Warn
	}

	if c.Verbose && level > hclog.Info {
		level = hclog.Info
	}

	return level
}
