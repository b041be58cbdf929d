// Command simple-crypt obfuscates files with a keyed pseudo-random byte stream.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/simplecrypt/internal/commands"
	"github.com/idelchi/simplecrypt/internal/config"
	"github.com/idelchi/simplecrypt/internal/status"
)

// Global variable for CI stamping.
var version = "unknown - unofficial & generated by unknown"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := &config.Config{}

	root := commands.NewRootCommand(cfg, version)
	root.SetArgs(args)

	err := root.Execute()
	if errors.Is(err, cobraext.ErrExitGracefully) {
		return int(status.OK)
	}

	code := status.FromError(err)

	switch {
	case code == status.BadArguments, code == status.NoKey:
		fmt.Fprintf(os.Stderr, "%v\n\n%s", err, root.UsageString())
	case err != nil && !errors.Is(err, status.ErrIO) && !errors.Is(err, status.ErrBadState):
		// Failures outside the processor were not logged yet.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	return int(code)
}
