package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/simplecrypt/internal/config"
	"github.com/idelchi/simplecrypt/internal/logic"
	"github.com/idelchi/simplecrypt/internal/status"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version, preRun(cfg))

	root.Use = "simple-crypt [flags] [files...]"
	root.Short = "Obfuscate files with a keyed byte stream"
	root.Long = `Obfuscate files by XOR-ing their content with a pseudo-random stream derived from a key.
Running the same command twice with the same key restores the original content.

Without paths, standard input is transformed to standard output.
The key may also be supplied through the ` + EnvPrefix + `_KEY environment variable.`
	root.Args = cobra.ArbitraryArgs
	root.RunE = func(cmd *cobra.Command, _ []string) error {
		return logic.Run(cfg, logic.Env{
			FS:     afero.NewOsFs(),
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		})
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", status.ErrUsage, err)
	})

	root.Flags().StringP("key", "k", "", "Specify encryption key")
	root.Flags().BoolP("dump", "d", false, "Output encrypted content to stdout instead of file")
	root.Flags().BoolP("inplace", "i", false, "Overwrite file immediately, do not use temporary files")
	root.Flags().StringP("output", "o", "", "Specify output file to write data")
	root.Flags().BoolP("recursive", "r", false, "Process directories recursively")
	root.Flags().BoolP("verbose", "v", false, "Output name of processed files")

	root.Flags().Bool("legacy-hash", false, "Hash key bytes as signed characters, for files produced by older builds")
	root.Flags().
		BoolP("preserve-timestamps", "p", false, "Keep the modification time of files rewritten in place or replaced")
	root.Flags().BoolP("stats", "s", false, "Show a processing summary on stderr")
	root.Flags().String("log-level", "warn", "Log level (trace, debug, info, warn, error, off)")
	root.Flags().Bool("log-json", false, "Emit logs as JSON")
	root.Flags().Bool("show", false, "Show the configuration and exit")

	return root
}
