package obfuscation

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/idelchi/simplecrypt/internal/config"
	"github.com/idelchi/simplecrypt/internal/fileutil"
	"github.com/idelchi/simplecrypt/internal/status"
	"github.com/idelchi/simplecrypt/pkg/keystream"
)

// Streams are the standard streams used when no paths are given or when dumping.
type Streams struct {
	In  io.Reader
	Out io.Writer
}

// Processor walks the configured paths and transforms every regular file it reaches.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// hash seeds a fresh generator for every file
	hash keystream.Hash

	// fs performs all file operations
	fs afero.Fs

	streams Streams
	logger  hclog.Logger

	// output is the redirect target shared by the whole run, if any
	output afero.File

	summary Summary
}

// NewProcessor creates a Processor for cfg using the derived key hash.
func NewProcessor(cfg *config.Config, hash keystream.Hash, fsys afero.Fs, streams Streams, logger hclog.Logger) *Processor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Processor{
		cfg:     cfg,
		hash:    hash,
		fs:      fsys,
		streams: streams,
		logger:  logger,
	}
}

// ProcessFiles transforms stdin to stdout when no paths are configured,
// otherwise every path in order. It stops at the first failure.
func (p *Processor) ProcessFiles() (summary Summary, err error) {
	if p.cfg.Output != "" {
		const defaultPerm = 0o666

		var output afero.File

		output, err = p.fs.OpenFile(p.cfg.Output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, defaultPerm)
		if err != nil {
			return p.summary, fmt.Errorf("%w: opening output file %q: %w", status.ErrIO, p.cfg.Output, err)
		}

		p.output = output

		defer func() {
			if closeErr := p.output.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("%w: closing output file %q: %w", status.ErrIO, p.cfg.Output, closeErr)
			}

			p.output = nil
		}()
	}

	if len(p.cfg.Paths) == 0 {
		err = p.processStdin()

		return p.summary, err
	}

	for _, path := range p.cfg.Paths {
		if err = p.processItem(path); err != nil {
			return p.summary, err
		}
	}

	return p.summary, nil
}

// processStdin transforms stdin to stdout and, if set, the output file.
func (p *Processor) processStdin() error {
	sinks := []io.Writer{p.streams.Out}
	if p.output != nil {
		sinks = append(sinks, p.output)
	}

	n, err := Transform(p.streams.In, keystream.New(p.hash), sinks...)
	if err != nil {
		return fmt.Errorf("processing standard input: %w", err)
	}

	p.record(n)

	return nil
}

// processItem dispatches a path by its file type.
func (p *Processor) processItem(path string) error {
	info, err := p.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: can not process %q: %w", status.ErrIO, path, err)
	}

	switch kind := Classify(info.Mode()); kind {
	case Regular:
		return p.processFile(path, info)
	case Block:
		if !p.cfg.Inplace {
			return fmt.Errorf("%w: can not process %q: block device requires in-place mode", status.ErrBadState, path)
		}

		return p.processFile(path, info)
	case Directory:
		if !p.cfg.Recursive {
			return fmt.Errorf("%w: can not process %q: is a directory", status.ErrBadState, path)
		}

		return p.processDirectory(path)
	default:
		return fmt.Errorf("%w: can not process %q: %s", status.ErrBadState, path, kind)
	}
}

// processDirectory recurses into a snapshot of the directory entries, depth first.
func (p *Processor) processDirectory(path string) error {
	entries, err := afero.ReadDir(p.fs, path)
	if err != nil {
		return fmt.Errorf("%w: accessing directory %q: %w", status.ErrIO, path, err)
	}

	for _, entry := range entries {
		if err := p.processItem(filepath.Join(path, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}

// processFile picks the write strategy for a single file.
func (p *Processor) processFile(path string, info os.FileInfo) error {
	p.logger.Info("processing file", "path", path)

	var (
		n   int64
		err error
	)

	switch {
	case p.cfg.Dump || p.output != nil:
		n, err = p.redirectFile(path)
	case p.cfg.Inplace:
		n, err = p.inplaceFile(path, info)
	default:
		n, err = p.replaceFile(path)
	}

	if err != nil {
		return err
	}

	p.record(n)

	return nil
}

// redirectFile transforms path to the output file and/or stdout, leaving it untouched.
func (p *Processor) redirectFile(path string) (n int64, err error) {
	in, err := p.fs.Open(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("%w: reading file %q: %w", status.ErrIO, path, err)
	}

	defer func() {
		if closeErr := in.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: closing file %q: %w", status.ErrIO, path, closeErr)
		}
	}()

	var sinks []io.Writer

	if p.output != nil {
		sinks = append(sinks, p.output)
	}

	if p.cfg.Dump {
		sinks = append(sinks, p.streams.Out)
	}

	n, err = Transform(in, keystream.New(p.hash), sinks...)
	if err != nil {
		return n, fmt.Errorf("transforming %q: %w", path, err)
	}

	return n, nil
}

// inplaceFile overwrites path through a single read/write handle.
// A failure part way leaves the already written prefix transformed.
func (p *Processor) inplaceFile(path string, info os.FileInfo) (int64, error) {
	// Some filesystems report live metadata, read it before writing.
	modTime := info.ModTime()

	file, err := p.fs.OpenFile(filepath.Clean(path), os.O_RDWR, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: writing file %q: %w", status.ErrIO, path, err)
	}

	n, err := Transform(file, keystream.New(p.hash), rewindWriter{rws: file})
	if err != nil {
		file.Close() //nolint:errcheck,gosec // the transform error takes precedence

		return n, fmt.Errorf("transforming %q in place: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return n, fmt.Errorf("%w: closing file %q: %w", status.ErrIO, path, err)
	}

	if p.cfg.PreserveTimestamps && info.Mode().IsRegular() {
		if err := fileutil.RestoreModTime(p.fs, path, modTime); err != nil {
			return n, fmt.Errorf("%w: %w", status.ErrIO, err)
		}
	}

	return n, nil
}

// replaceFile writes the transformed content to "<path>.<N>.tmp" and renames it over path.
func (p *Processor) replaceFile(path string) (n int64, err error) {
	tc, err := fileutil.NewTempContext(p.fs, path)
	if err != nil {
		return 0, fmt.Errorf("%w: preparing atomic write: %w", status.ErrIO, err)
	}

	defer tc.CleanupOnError(&err)

	modTime := tc.SrcInfo.ModTime()

	in, err := p.fs.Open(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("%w: reading file %q: %w", status.ErrIO, path, err)
	}

	n, err = Transform(in, keystream.New(p.hash), tc.TmpFile)
	if err != nil {
		in.Close() //nolint:errcheck,gosec // the transform error takes precedence

		return n, fmt.Errorf("transforming %q: %w", path, err)
	}

	if err := in.Close(); err != nil {
		return n, fmt.Errorf("%w: closing file %q: %w", status.ErrIO, path, err)
	}

	if err := tc.Commit(path); err != nil {
		return n, fmt.Errorf("%w: replacing file %q: %w", status.ErrIO, path, err)
	}

	p.logger.Debug("replaced file", "path", path, "temporary", tc.TmpName)

	if p.cfg.PreserveTimestamps {
		if err := fileutil.RestoreModTime(p.fs, path, modTime); err != nil {
			return n, fmt.Errorf("%w: %w", status.ErrIO, err)
		}
	}

	return n, nil
}

func (p *Processor) record(n int64) {
	p.summary.Files++
	p.summary.Bytes += n
}
