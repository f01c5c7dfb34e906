package rng

import "math/rand/v2"

// #region source
// Source yields uniformly distributed bits in {0, 1}.
type Source interface {
	Bit() int
}

// Func adapts a plain function to Source.
type Func func() int

func (f Func) Bit() int { return f() }

// #endregion source

// #region seeded
// Rand is a reproducible Source backed by PCG.
type Rand struct {
	seed uint64
	r    *rand.Rand
}

// New returns a Source whose bit stream is fully determined by seed.
func New(seed uint64) *Rand {
	return &Rand{seed: seed, r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Bit returns 0 or 1.
func (r *Rand) Bit() int { return r.r.IntN(2) }

// Seed returns the seed the stream was built from.
func (r *Rand) Seed() uint64 { return r.seed }

// NewSeed picks a fresh nonzero seed.
func NewSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}

// #endregion seeded

// #region stubs
// Constant always returns bit.
func Constant(bit int) Source {
	return Func(func() int { return bit })
}

// Sequence replays bits in order and wraps around. An empty sequence yields 0.
func Sequence(bits ...int) Source {
	i := 0
	return Func(func() int {
		if len(bits) == 0 {
			return 0
		}
		b := bits[i%len(bits)]
		i++
		return b
	})
}

// #endregion stubs
