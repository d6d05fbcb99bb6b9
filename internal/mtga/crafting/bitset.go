package crafting

import "math/bits"

// bitset is a fixed-width bit vector over requirement rows. Row i of a
// deck's bitset is set when the deck needs that specific missing copy.
type bitset []uint64

func newBitset(rows int) bitset {
	return make(bitset, (rows+63)/64)
}

func (b bitset) set(i int) {
	b[i/64] |= 1 << (i % 64)
}

// orInto unions other into b. Both must have the same width.
func (b bitset) orInto(other bitset) {
	for i := range b {
		b[i] |= other[i]
	}
}

func (b bitset) popcount() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}
