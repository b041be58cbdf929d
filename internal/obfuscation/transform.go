package obfuscation

import (
	"crypto/cipher"
	"errors"
	"fmt"
	"io"

	"github.com/idelchi/simplecrypt/internal/status"
)

// Transform reads r block by block, XORs every byte with the next byte of stream
// and writes each transformed block in full to every sink.
// The stream is consumed in input order, independent of how reads are split.
// It returns the number of bytes transformed.
func Transform(reader io.Reader, stream cipher.Stream, sinks ...io.Writer) (int64, error) {
	buf, ok := bufferPool.Get().([]byte)
	if !ok {
		return 0, errors.New("invalid buffer type from pool") //nolint:err113
	}

	defer bufferPool.Put(buf) //nolint:staticcheck

	var total int64

	for {
		n, readErr := reader.Read(buf)
		if n > 0 {
			block := buf[:n]

			stream.XORKeyStream(block, block)

			for _, sink := range sinks {
				if err := writeFully(sink, block); err != nil {
					return total, fmt.Errorf("%w: writing output: %w", status.ErrIO, err)
				}
			}

			total += int64(n)
		}

		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return total, fmt.Errorf("%w: reading input: %w", status.ErrIO, readErr)
		}
	}

	return total, nil
}
