package obfuscation

import (
	"fmt"
	"io"
)

// writeFully writes all of p to w, retrying partial writes until done or until w fails.
func writeFully(w io.Writer, p []byte) error {
	for off := 0; off < len(p); {
		n, err := w.Write(p[off:])
		off += n

		if err != nil {
			return err
		}

		if n == 0 {
			return io.ErrShortWrite
		}
	}

	return nil
}

// rewindWriter writes each block over the bytes that were just read from the same handle.
// The handle position is back at the end of the block once Write returns.
type rewindWriter struct {
	rws io.ReadWriteSeeker
}

// Write seeks back len(p) bytes and writes p in full.
func (w rewindWriter) Write(p []byte) (int, error) {
	if _, err := w.rws.Seek(-int64(len(p)), io.SeekCurrent); err != nil {
		return 0, fmt.Errorf("seeking: %w", err)
	}

	if err := writeFully(w.rws, p); err != nil {
		return 0, err
	}

	return len(p), nil
}
