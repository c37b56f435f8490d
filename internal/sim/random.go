package sim

import "math/rand"

// Random is the uniform range sampler used for gap placement and decor.
// Tests inject a scripted implementation; everything else uses NewRandom.
type Random interface {
	// Range returns a value in [lo, hi). If hi <= lo it returns lo.
	Range(lo, hi float64) float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

type seededRandom struct {
	rng *rand.Rand
}

// NewRandom creates a seeded random source.
// The same seed and call sequence always yield the same values.
func NewRandom(seed int64) Random {
	return &seededRandom{rng: rand.New(rand.NewSource(seed))}
}

func (r *seededRandom) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.Float64()*(hi-lo)
}

func (r *seededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// FixedRandom always returns the same fraction of the requested range.
// Tests use it to place gaps and decor at known positions.
type FixedRandom struct {
	Frac float64 // 0 yields lo, 0.5 the midpoint
}

func (r FixedRandom) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Frac*(hi-lo)
}

func (r FixedRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Frac * float64(n))
}
