// Package piece produces the deterministic tetromino stream shared by every
// client in a round. The server never simulates boards; it only mints one
// seed per round and broadcasts it, and each client regenerates the exact
// same sequence from that seed. Any drift here means players see different
// games, so the PRNG and shuffle are fixed by the protocol and must not be
// swapped for another random source.
package piece

import "math/rand"

type Tag string

const (
	TagI Tag = "I"
	TagO Tag = "O"
	TagT Tag = "T"
	TagS Tag = "S"
	TagZ Tag = "Z"
	TagJ Tag = "J"
	TagL Tag = "L"
)

// BagSize is the number of distinct tetrominoes; every aligned window of
// this size in a generated sequence is a permutation of all seven tags.
const BagSize = 7

var baseBag = [BagSize]Tag{TagI, TagO, TagT, TagS, TagZ, TagJ, TagL}

// rng is a mulberry32 generator. All arithmetic wraps at 32 bits.
type rng struct {
	state uint32
}

func (r *rng) next() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / (1 << 32)
}

// Bag returns the seven tags shuffled by a Fisher-Yates pass seeded with seed.
func Bag(seed uint32) [BagSize]Tag {
	r := rng{state: seed}
	b := baseBag
	for i := len(b) - 1; i > 0; i-- {
		j := int(r.next() * float64(i+1))
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// Generate returns the first length tags of the stream for seed. Bag i is
// seeded with seed+i, so the stream is the concatenation of independently
// seeded bags truncated to length. Same seed and length always produce
// byte-identical output.
func Generate(seed uint32, length int) []Tag {
	if length <= 0 {
		return []Tag{}
	}
	seq := make([]Tag, 0, length+BagSize)
	for i := 0; len(seq) < length; i++ {
		b := Bag(seed + uint32(i))
		seq = append(seq, b[:]...)
	}
	return seq[:length]
}

// NewSeed mints the shared seed for one round.
func NewSeed() uint32 {
	return rand.Uint32()
}
