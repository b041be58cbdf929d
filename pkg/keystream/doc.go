// Package keystream implements a keyed, deterministic pseudo-random byte stream.
//
// A key is folded into a 64-bit hash with Sum. The hash seeds a bank of eight
// linear congruential generators; Generator selects one of them per output byte,
// advancing round-robin and skipping one extra slot once per period.
//
// The stream is suitable for obfuscation only. It is not a cryptographic cipher.
package keystream
