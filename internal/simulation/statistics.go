package simulation

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultHistogramBins is the bin count used when a caller does not ask for
// a specific resolution.
const DefaultHistogramBins = 20

// defaultPercentiles is the percentile set reported by CalculateStatistics.
var defaultPercentiles = []float64{0.01, 0.05, 0.10, 0.25, 0.50, 0.75, 0.90, 0.95, 0.99}

// Result is the immutable value object produced by one simulation run.
// Values preserves trial order; everything else is a reduction over it.
type Result struct {
	Values              []float64          `json:"values"`
	Mean                float64            `json:"mean"`
	Median              float64            `json:"median"`
	Min                 float64            `json:"min"`
	Max                 float64            `json:"max"`
	StdDev              float64            `json:"std"`
	Percentiles         map[string]float64 `json:"percentiles"`
	VaR95               float64            `json:"var_95"`
	VaR99               float64            `json:"var_99"`
	ExpectedShortfall95 float64            `json:"expected_shortfall_95"`
	Histogram           Histogram          `json:"histogram"`
}

// Histogram is an evenly binned frequency count over a sample population.
// Bins holds binCount+1 non-decreasing edges; Frequencies holds the per-bin
// counts and always sums to the population size.
type Histogram struct {
	Bins        []float64 `json:"bins"`
	Frequencies []int     `json:"frequencies"`
}

// CalculateHistogram bins values into binCount evenly spaced buckets between
// the population min and max. A degenerate single-value population (range 0)
// substitutes a range of 1 so the bin width stays positive; the maximum value
// is always placed in the last bin, which also protects the count invariant
// against floating-point edge rounding.
func CalculateHistogram(values []float64, binCount int) (Histogram, error) {
	if binCount <= 0 {
		return Histogram{}, fmt.Errorf("bin count must be positive, got %d: %w", binCount, ErrInvalidParameter)
	}
	if len(values) == 0 {
		return Histogram{}, fmt.Errorf("cannot bin an empty population: %w", ErrInsufficientSampleSize)
	}

	min := floats.Min(values)
	max := floats.Max(values)
	span := max - min
	if span == 0 {
		span = 1
	}
	width := span / float64(binCount)

	bins := floats.Span(make([]float64, binCount+1), min, min+span)
	frequencies := make([]int, binCount)
	for _, v := range values {
		idx := binCount - 1
		if v != max {
			idx = int(math.Floor((v - min) / width))
			if idx > binCount-1 {
				idx = binCount - 1
			}
		}
		frequencies[idx]++
	}
	return Histogram{Bins: bins, Frequencies: frequencies}, nil
}

// CalculateVaR returns the Value at Risk of the population at the given
// confidence level: the loss threshold exceeded with probability 1-c. More
// negative raw outcomes (larger losses) map to larger positive VaR. The
// estimator is nearest-rank over the ascending sort; at index 0 this is the
// negated population minimum.
func CalculateVaR(values []float64, confidenceLevel float64) (float64, error) {
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		return 0, fmt.Errorf("confidence level must be in (0, 1), got %v: %w", confidenceLevel, ErrInvalidParameter)
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("cannot compute VaR of an empty population: %w", ErrInsufficientSampleSize)
	}

	sorted := sortedCopy(values)
	index := int(math.Floor(float64(len(sorted)) * (1 - confidenceLevel)))
	return -sorted[index], nil
}

// CalculateExpectedShortfall returns the conditional mean loss beyond the VaR
// threshold at the given confidence level. If the tail below the VaR index is
// empty the statistic is undefined and the population is reported as too
// small rather than dividing by zero.
func CalculateExpectedShortfall(values []float64, confidenceLevel float64) (float64, error) {
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		return 0, fmt.Errorf("confidence level must be in (0, 1), got %v: %w", confidenceLevel, ErrInvalidParameter)
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("cannot compute expected shortfall of an empty population: %w", ErrInsufficientSampleSize)
	}

	sorted := sortedCopy(values)
	varIndex := int(math.Floor(float64(len(sorted)) * (1 - confidenceLevel)))
	if varIndex == 0 {
		return 0, fmt.Errorf("no samples beyond the %v VaR threshold in a population of %d: %w",
			confidenceLevel, len(sorted), ErrInsufficientSampleSize)
	}
	return -stat.Mean(sorted[:varIndex], nil), nil
}

// CalculatePercentiles returns the requested order statistics keyed by label
// ("p5", "p50", ...). Passing nil requests the default percentile set.
//
// This is a nearest-rank estimator (index = floor(p·(n-1))), not a linearly
// interpolated one, so reported values at small sample sizes differ from
// interpolating implementations.
func CalculatePercentiles(values []float64, percentiles []float64) (map[string]float64, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("cannot compute percentiles of an empty population: %w", ErrInsufficientSampleSize)
	}
	if percentiles == nil {
		percentiles = defaultPercentiles
	}

	sorted := sortedCopy(values)
	result := make(map[string]float64, len(percentiles))
	for _, p := range percentiles {
		if p <= 0 || p > 1 {
			return nil, fmt.Errorf("percentile must be in (0, 1], got %v: %w", p, ErrInvalidParameter)
		}
		index := int(math.Floor(p * float64(len(sorted)-1)))
		label := fmt.Sprintf("p%d", int(math.Round(p*100)))
		result[label] = sorted[index]
	}
	return result, nil
}

// CalculateStatistics reduces a sample population into a complete Result.
// This is the single aggregation point: mean, median, min, max, population
// standard deviation, the default percentile set, VaR at 95% and 99%,
// expected shortfall at 95%, and a histogram at the default resolution.
// Populations containing non-finite values are rejected.
func CalculateStatistics(values []float64) (*Result, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("cannot summarize an empty population: %w", ErrInsufficientSampleSize)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("sample %d is %v: %w", i, v, ErrNonFiniteResult)
		}
	}

	percentiles, err := CalculatePercentiles(values, nil)
	if err != nil {
		return nil, err
	}
	var95, err := CalculateVaR(values, 0.95)
	if err != nil {
		return nil, err
	}
	var99, err := CalculateVaR(values, 0.99)
	if err != nil {
		return nil, err
	}
	shortfall95, err := CalculateExpectedShortfall(values, 0.95)
	if err != nil {
		return nil, err
	}
	histogram, err := CalculateHistogram(values, DefaultHistogramBins)
	if err != nil {
		return nil, err
	}

	sorted := sortedCopy(values)
	return &Result{
		Values:              append([]float64(nil), values...),
		Mean:                stat.Mean(values, nil),
		Median:              median(sorted),
		Min:                 sorted[0],
		Max:                 sorted[len(sorted)-1],
		StdDev:              stat.PopStdDev(values, nil),
		Percentiles:         percentiles,
		VaR95:               var95,
		VaR99:               var99,
		ExpectedShortfall95: shortfall95,
		Histogram:           histogram,
	}, nil
}

// median expects an ascending sort and averages the middle pair for
// even-sized populations.
func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func sortedCopy(values []float64) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return sorted
}
