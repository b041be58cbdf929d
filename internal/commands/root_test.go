package commands_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/simplecrypt/internal/commands"
	"github.com/idelchi/simplecrypt/internal/config"
	"github.com/idelchi/simplecrypt/internal/status"
)

// The commands bind flags and environment through the process-wide viper
// instance, so none of these tests run in parallel.

type result struct {
	cfg    *config.Config
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	err    error
}

func execute(t *testing.T, stdin []byte, args ...string) result {
	t.Helper()

	res := result{
		cfg:    &config.Config{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}

	root := commands.NewRootCommand(res.cfg, "test")
	root.SetArgs(args)
	root.SetIn(bytes.NewReader(stdin))
	root.SetOut(res.stdout)
	root.SetErr(res.stderr)

	res.err = root.Execute()

	return res
}

func TestArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "help", args: []string{"-h"}, want: nil},
		{name: "version", args: []string{"--version"}, want: nil},
		{name: "no key", args: nil, want: status.ErrNoKey},
		{name: "key without value", args: []string{"-k"}, want: status.ErrUsage},
		{name: "unknown flag", args: []string{"-k", "x", "--bogus"}, want: status.ErrUsage},
		{name: "bad log level", args: []string{"-k", "x", "--log-level", "loud"}, want: status.ErrUsage},
		{name: "show", args: []string{"-k", "x", "--show"}, want: cobraext.ErrExitGracefully},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, nil, tt.args...)

			if tt.want == nil && res.err != nil {
				t.Fatalf("Execute() error: %v", res.err)
			}

			if tt.want != nil && !errors.Is(res.err, tt.want) {
				t.Fatalf("Execute() error = %v, want %v", res.err, tt.want)
			}
		})
	}
}

func TestStdinToStdout(t *testing.T) {
	res := execute(t, make([]byte, 4), "-k", "test")
	if res.err != nil {
		t.Fatalf("Execute() error: %v", res.err)
	}

	if got := hex.EncodeToString(res.stdout.Bytes()); got != "0b6b4401" {
		t.Errorf("stdout = %s, want 0b6b4401", got)
	}
}

func TestEmptyKeyIsAccepted(t *testing.T) {
	res := execute(t, make([]byte, 4), "-k", "")
	if res.err != nil {
		t.Fatalf("Execute() error: %v", res.err)
	}

	if got := hex.EncodeToString(res.stdout.Bytes()); got != "e26c05b3" {
		t.Errorf("stdout = %s, want e26c05b3", got)
	}
}

func TestFlagsPopulateConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a")

	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	res := execute(t, nil, "-k", "secret", "-r", "-v", "-p", "--legacy-hash", "--log-level", "error", file)
	if res.err != nil {
		t.Fatalf("Execute() error: %v", res.err)
	}

	cfg := res.cfg

	if !cfg.KeySet || !cfg.Recursive || !cfg.Verbose || !cfg.PreserveTimestamps || !cfg.LegacyHash {
		t.Errorf("flags not applied: %+v", cfg)
	}

	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want error", cfg.LogLevel)
	}

	if cfg.Key != "" {
		t.Error("key retained after the run")
	}

	if len(cfg.Paths) != 1 || cfg.Paths[0] != file {
		t.Errorf("Paths = %v", cfg.Paths)
	}
}

func TestReplaceTwiceRestores(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	plain := []byte("the quick brown fox jumps over the lazy dog")

	if err := os.WriteFile(file, plain, 0o640); err != nil {
		t.Fatal(err)
	}

	if res := execute(t, nil, "-k", "pass", file); res.err != nil {
		t.Fatalf("first run: %v", res.err)
	}

	scrambled, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(scrambled, plain) {
		t.Fatal("content unchanged after the first run")
	}

	info, err := os.Stat(file)
	if err != nil {
		t.Fatal(err)
	}

	if perm := info.Mode().Perm(); perm != 0o640 {
		t.Errorf("permissions = %o, want 640", perm)
	}

	if res := execute(t, nil, "-k", "pass", file); res.err != nil {
		t.Fatalf("second run: %v", res.err)
	}

	restored, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(restored, plain) {
		t.Errorf("restored = %q, want %q", restored, plain)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want 1", len(entries))
	}
}

func TestDumpLeavesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "zero")

	if err := os.WriteFile(file, make([]byte, 4), 0o600); err != nil {
		t.Fatal(err)
	}

	res := execute(t, nil, "-k", "test", "-d", file)
	if res.err != nil {
		t.Fatalf("Execute() error: %v", res.err)
	}

	if got := hex.EncodeToString(res.stdout.Bytes()); got != "0b6b4401" {
		t.Errorf("stdout = %s, want 0b6b4401", got)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(data, make([]byte, 4)) {
		t.Error("dump mode modified the file")
	}
}

func TestDirectoryRequiresRecursive(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, nil, "-k", "x", dir)
	if !errors.Is(res.err, status.ErrBadState) {
		t.Fatalf("Execute() error = %v, want %v", res.err, status.ErrBadState)
	}

	if !bytes.Contains(res.stderr.Bytes(), []byte("processing failed")) {
		t.Errorf("failure not logged, stderr = %q", res.stderr)
	}
}

func TestMissingFile(t *testing.T) {
	res := execute(t, nil, "-k", "x", filepath.Join(t.TempDir(), "missing"))
	if status.FromError(res.err) != status.IOError {
		t.Fatalf("Execute() error = %v, want an I/O failure", res.err)
	}
}

func TestKeyFromEnvironment(t *testing.T) {
	t.Setenv(commands.EnvPrefix+"_KEY", "test")

	res := execute(t, make([]byte, 4))
	if res.err != nil {
		t.Fatalf("Execute() error: %v", res.err)
	}

	if got := hex.EncodeToString(res.stdout.Bytes()); got != "0b6b4401" {
		t.Errorf("stdout = %s, want 0b6b4401", got)
	}
}
