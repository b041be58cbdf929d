// Package commands provides the command-line interface for the simple-crypt tool.
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/simplecrypt/internal/config"
)

// EnvPrefix is the prefix of environment variables mirroring the flags.
// It is derived from the command name, with "-" replaced by "_".
const EnvPrefix = "SIMPLE_CRYPT"

// preRun returns a handler that stores the positional args as paths,
// records whether a key was supplied and validates the configuration.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg.KeySet = viper.IsSet("key")
		cfg.Paths = args

		return cobraext.Validate(cfg, cfg)
	}
}
