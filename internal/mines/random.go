package mines

import (
	"hash/maphash"
	"math/rand/v2"
)

// Random yields uniform floats in [0, 1). *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

type RandomFunc func() float64

// [RandomFunc] implements [Random]
func (f RandomFunc) Float64() float64 {
	return f()
}

// NewRand returns a PCG generator with a per-process random seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// NewSeededRand is deterministic for a given seed.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// draw scales a float from r to an index in [0, n).
func draw(r Random, n int) int {
	i := int(r.Float64() * float64(n))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
