// internal/engine/montecarlo/rng.go
package montecarlo

import "math"

// Source is the random stream consumed by the simulator and the bootstrap
// engine. It is swappable so regression tests can pin a seeded generator.
type Source interface {
	Float64() float64
	NormFloat64() float64
}

// Rand is a small deterministic 32-bit mix-based PRNG. Identical seeds
// produce bit-identical sequences on every platform, which the regression
// tests rely on. Not cryptographic.
type Rand struct {
	state    uint32
	spare    float64
	hasSpare bool
}

// NewRand seeds a generator. The full 64-bit seed is folded into the 32-bit
// state.
func NewRand(seed int64) *Rand {
	s := uint32(uint64(seed)) ^ uint32(uint64(seed)>>32)
	return &Rand{state: s}
}

func (r *Rand) next() uint32 {
	r.state += 0x6D2B79F5
	z := r.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return z ^ (z >> 14)
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.next()) / (1 << 32)
}

// NormFloat64 returns a standard normal draw via Box-Muller, caching the
// paired value.
func (r *Rand) NormFloat64() float64 {
	if r.hasSpare {
		r.hasSpare = false
		return r.spare
	}

	var u1 float64
	for u1 == 0 {
		u1 = r.Float64()
	}
	u2 := r.Float64()

	radius := math.Sqrt(-2 * math.Log(u1))
	theta := 2 * math.Pi * u2

	r.spare = radius * math.Sin(theta)
	r.hasSpare = true
	return radius * math.Cos(theta)
}

// DeriveSeed produces an independent per-worker seed from a base seed and a
// stream index, so parallel workers never share a stream.
func DeriveSeed(seed int64, stream int) int64 {
	x := uint64(seed) + (uint64(stream)+1)*0x9E3779B97F4A7C15
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return int64(x)
}
