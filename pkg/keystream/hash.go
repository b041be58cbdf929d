package keystream

import "math/bits"

// Hash is the 64-bit digest of a key.
type Hash uint64

// hashBasis is the digest of the empty key.
const hashBasis Hash = 0xfc23ed30be4613ad

const (
	hashMul = 0xcee3
	hashAdd = 0xaea7
)

// Sum folds key into a Hash, treating every byte as an unsigned value.
func Sum(key []byte) Hash {
	hash := uint64(hashBasis)

	for _, c := range key {
		hash ^= uint64(c)*hashMul + hashAdd
		hash = bits.RotateLeft64(hash, 8)
	}

	return Hash(hash)
}

// SumSigned folds key into a Hash, sign-extending bytes >= 0x80 before mixing.
// Keys containing only ASCII hash identically with Sum.
func SumSigned(key []byte) Hash {
	hash := uint64(hashBasis)

	for _, c := range key {
		hash ^= uint64(int64(int8(c))*hashMul + hashAdd) //nolint:gosec // wraparound is intended
		hash = bits.RotateLeft64(hash, 8)
	}

	return Hash(hash)
}
