// internal/engine/montecarlo/stats.go
package montecarlo

import (
	"math"
	"sort"

	"medadmit-engine/internal/models"
)

// wilsonZ80 is the z value for the 80% Wilson score interval.
const wilsonZ80 = 1.28

// Percentile returns the q-th quantile (q in [0, 1]) of the values, linearly
// interpolated between order statistics. Empty input yields 0, the defined
// degenerate fallback.
func Percentile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return percentileSorted(sorted, q)
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	i := int(math.Floor(pos))
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}

// CI80 builds the empirical 80% interval (10th/90th percentile) around the
// sample mean.
func CI80(values []float64) models.Interval {
	if len(values) == 0 {
		return models.Interval{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	m := Mean(values)
	lower := percentileSorted(sorted, 0.10)
	upper := percentileSorted(sorted, 0.90)

	// Floating interpolation can land the percentile a hair past the mean.
	if lower > m {
		lower = m
	}
	if upper < m {
		upper = m
	}
	return models.Interval{Mean: m, Lower: lower, Upper: upper}
}

// Mean returns the arithmetic mean, 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance returns the sample variance, 0 for fewer than two values.
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := Mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values)-1)
}

// WilsonInterval computes the Wilson score interval for a binomial
// proportion at z=1.28 (80%). Zero trials collapse to a zero-width interval.
func WilsonInterval(successes, trials int) models.Interval {
	if trials == 0 {
		return models.Interval{}
	}

	p := float64(successes) / float64(trials)
	n := float64(trials)
	z := wilsonZ80
	z2 := z * z

	denom := 1 + z2/n
	center := (p + z2/(2*n)) / denom
	half := z / denom * math.Sqrt(p*(1-p)/n+z2/(4*n*n))

	lower := center - half
	upper := center + half
	if lower < 0 {
		lower = 0
	}
	if upper > 1 {
		upper = 1
	}
	if lower > p {
		lower = p
	}
	if upper < p {
		upper = p
	}
	return models.Interval{Mean: p, Lower: lower, Upper: upper}
}

// phiCorrelation is the Pearson correlation of two binary indicator series,
// given the counts of each marginal and the joint. The second return is
// false when either marginal is degenerate (always 0 or always 1), where
// correlation is undefined.
func phiCorrelation(n, countA, countB, countBoth int) (float64, bool) {
	if countA == 0 || countA == n || countB == 0 || countB == n {
		return 0, false
	}
	fn := float64(n)
	fa := float64(countA)
	fb := float64(countB)
	num := fn*float64(countBoth) - fa*fb
	den := math.Sqrt(fa * (fn - fa) * fb * (fn - fb))
	return num / den, true
}
