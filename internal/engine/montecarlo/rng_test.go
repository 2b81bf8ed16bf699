// internal/engine/montecarlo/rng_test.go
package montecarlo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRand_Deterministic(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)

	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Float64(), b.Float64(), "sequences diverged at draw %d", i)
	}
}

func TestRand_DifferentSeedsDiffer(t *testing.T) {
	a := NewRand(1)
	b := NewRand(2)

	same := 0
	for i := 0; i < 100; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	assert.Less(t, same, 5)
}

func TestRand_Float64Range(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 10000; i++ {
		v := r.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestRand_Float64Mean(t *testing.T) {
	r := NewRand(99)
	sum := 0.0
	n := 100000
	for i := 0; i < n; i++ {
		sum += r.Float64()
	}
	assert.InDelta(t, 0.5, sum/float64(n), 0.01)
}

func TestRand_NormFloat64Moments(t *testing.T) {
	r := NewRand(123)
	n := 100000

	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		v := r.NormFloat64()
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean

	assert.InDelta(t, 0.0, mean, 0.02)
	assert.InDelta(t, 1.0, variance, 0.05)
}

func TestRand_NormFloat64Finite(t *testing.T) {
	r := NewRand(5)
	for i := 0; i < 10000; i++ {
		v := r.NormFloat64()
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestDeriveSeed(t *testing.T) {
	seen := make(map[int64]bool)
	for stream := 0; stream < 64; stream++ {
		s := DeriveSeed(42, stream)
		assert.False(t, seen[s], "duplicate derived seed for stream %d", stream)
		seen[s] = true
	}

	assert.Equal(t, DeriveSeed(42, 3), DeriveSeed(42, 3))
	assert.NotEqual(t, DeriveSeed(42, 3), DeriveSeed(43, 3))
}
