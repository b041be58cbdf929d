// Package logic wires the configuration to the processor and reports the outcome.
package logic

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/idelchi/simplecrypt/internal/config"
	"github.com/idelchi/simplecrypt/internal/obfuscation"
	"github.com/idelchi/simplecrypt/internal/status"
)

// Env is the environment a run executes in.
type Env struct {
	FS     afero.Fs
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run is the main logic of the application.
func Run(cfg *config.Config, env Env) error {
	start := time.Now()

	logger := NewLogger(cfg, env.Stderr)

	hash := cfg.KeyHash()

	// Only the hash is needed from here on.
	cfg.Key = ""

	proc := obfuscation.NewProcessor(cfg, hash, env.FS, obfuscation.Streams{In: env.Stdin, Out: env.Stdout}, logger)

	summary, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(env.Stderr, summary, time.Since(start))
	}

	if err != nil {
		report(logger, err)

		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// NewLogger creates the diagnostic logger writing to w.
func NewLogger(cfg *config.Config, w io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "simple-crypt",
		Level:      cfg.Level(),
		JSONFormat: cfg.LogJSON,
		Output:     w,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// report logs a failure with the offending path and system error number, when known.
// Failures are logged even when the configured level would suppress errors.
func report(logger hclog.Logger, err error) {
	if !logger.IsError() {
		logger.SetLevel(hclog.Error)
	}

	args := []any{"error", err}

	if path, ok := status.Path(err); ok {
		args = append(args, "path", path)
	}

	if errno, ok := status.Errno(err); ok {
		args = append(args, "errno", int(errno))
	}

	logger.Error("processing failed", args...)
}

func printStats(w io.Writer, summary obfuscation.Summary, duration time.Duration) {
	fmt.Fprintf(w, "\nStats\n")
	fmt.Fprintf(w, "  Processed: %d\n", summary.Files)
	//nolint:gosec // summary.Bytes is always non-negative
	fmt.Fprintf(w, "  Size:      %s\n", humanize.IBytes(uint64(max(0, summary.Bytes))))
	fmt.Fprintf(w, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
