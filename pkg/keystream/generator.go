package keystream

import "math/bits"

// Slots is the number of generators in a bank.
const Slots = 8

//nolint:gochecknoglobals // shared read-only tables
var (
	mulTable = [16]uint16{
		0x80ab, 0x815f, 0x8d41, 0x9161,
		0x9463, 0x9b77, 0xabc1, 0xb567,
		0xc317, 0xd2a3, 0xd50b, 0xe095,
		0xecf5, 0xf67f, 0xfc37, 0xfff1,
	}

	addTable = [16]uint16{
		0x80d7, 0x85db, 0x90b9, 0x9cbb,
		0xa0fd, 0xa60d, 0xb201, 0xb9f9,
		0xc23f, 0xc95f, 0xd50d, 0xd7bd,
		0xe2ff, 0xea6d, 0xf463, 0xfd2b,
	}
)

const (
	seedMul   = 0x8119
	seedAdd   = 0xd7fb
	periodMul = 0xa187
	periodAdd = 0xfccd

	periodMask   = 0xfff
	periodOffset = 0x1001
)

// lcg is a single linear congruential generator of the bank.
type lcg struct {
	value uint32
	mul   uint16
	add   uint16
}

// Generator produces the byte stream for a single Hash.
// A Generator is not safe for concurrent use.
type Generator struct {
	bank [Slots]lcg

	// current is the slot used by the next call to Next.
	current uint32
	counter uint32
	period  uint32
}

// New returns a Generator seeded from hash.
func New(hash Hash) *Generator {
	key := uint64(hash)

	seed := bits.RotateLeft64(key, 32)
	seed = seed*seedMul + seedAdd

	gen := &Generator{
		period: uint32((seed*periodMul+periodAdd)&periodMask) + periodOffset, //nolint:gosec // masked to 12 bits
	}

	for i := range Slots {
		shift := uint(i) * 8 //nolint:gosec // i < Slots

		gen.bank[i] = lcg{
			mul:   mulTable[(key>>shift)&0x0f],
			add:   addTable[(key>>(shift+4))&0x0f],
			value: uint32((seed >> shift) & 0xff), //nolint:gosec // masked to a byte
		}
	}

	return gen
}

// Period returns the number of calls between two extra slot skips.
func (g *Generator) Period() uint32 {
	return g.period
}

// Next advances the stream and returns its next byte.
func (g *Generator) Next() byte {
	slot := &g.bank[g.current]

	g.current++
	g.counter++

	if g.counter >= g.period {
		g.current++
		g.counter = 0
	}

	g.current %= Slots

	slot.value = slot.value*uint32(slot.mul) + uint32(slot.add)

	return byte(slot.value)
}

// XORKeyStream XORs each byte in src with the next stream byte and stores the result in dst.
// dst and src may overlap entirely. It implements cipher.Stream.
func (g *Generator) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("keystream: output smaller than input")
	}

	for i, b := range src {
		dst[i] = b ^ g.Next()
	}
}
