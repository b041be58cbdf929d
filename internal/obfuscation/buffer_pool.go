package obfuscation

import (
	"sync"
)

// BlockSize is the number of bytes read and transformed per iteration.
const BlockSize = 0x1000

// bufferPool provides a pool of reusable blocks for file I/O operations.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		return make([]byte, BlockSize)
	},
}
