package simulation

import (
	"fmt"
	"math"
)

// ProbabilityOfAchievingTarget returns the empirical probability, in [0, 1],
// that a simulated outcome meets or exceeds targetReturn. Purely a count over
// the population; no interpolation.
func ProbabilityOfAchievingTarget(result *Result, targetReturn float64) float64 {
	if result == nil || len(result.Values) == 0 {
		return 0
	}
	count := 0
	for _, v := range result.Values {
		if v >= targetReturn {
			count++
		}
	}
	return float64(count) / float64(len(result.Values))
}

// CalculateMaxDrawdown scans a cumulative series left to right, tracking the
// running peak, and returns the largest peak-to-trough decline as a fraction
// of the peak. Steps whose running peak is exactly zero are skipped: a series
// that starts at zero has no meaningful drawdown denominator yet.
func CalculateMaxDrawdown(cumulativeSeries []float64) (float64, error) {
	if len(cumulativeSeries) == 0 {
		return 0, fmt.Errorf("cannot compute drawdown of an empty series: %w", ErrInsufficientSampleSize)
	}
	for i, v := range cumulativeSeries {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("series element %d is %v: %w", i, v, ErrNonFiniteResult)
		}
	}

	peak := cumulativeSeries[0]
	maxDrawdown := 0.0
	for _, v := range cumulativeSeries {
		if v > peak {
			peak = v
		}
		if peak == 0 {
			continue
		}
		drawdown := (peak - v) / peak
		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}
	return maxDrawdown, nil
}
