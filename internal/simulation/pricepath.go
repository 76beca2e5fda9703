package simulation

import (
	"fmt"
	"math"
)

// SimulateTokenPricePath generates a discrete-time geometric Brownian motion
// price path of length steps. The first element is always initialPrice; each
// subsequent price applies a log-return of (drift - vol²/2) + vol·z with z a
// standard-normal variate, where drift and volatility are the annualized
// inputs scaled to the step period (stepMonths/12). Every price in the path
// is strictly positive.
func SimulateTokenPricePath(initialPrice, annualDrift, annualVolatility float64, steps int, stepMonths float64, rng Rand) ([]float64, error) {
	if initialPrice <= 0 || math.IsInf(initialPrice, 0) || math.IsNaN(initialPrice) {
		return nil, fmt.Errorf("initial price must be positive and finite, got %v: %w", initialPrice, ErrInvalidParameter)
	}
	if annualVolatility < 0 {
		return nil, fmt.Errorf("annual volatility must be non-negative, got %v: %w", annualVolatility, ErrInvalidParameter)
	}
	if steps <= 0 {
		return nil, fmt.Errorf("step count must be positive, got %d: %w", steps, ErrInvalidParameter)
	}
	if stepMonths <= 0 {
		return nil, fmt.Errorf("step length must be positive, got %v months: %w", stepMonths, ErrInvalidParameter)
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required: %w", ErrInvalidParameter)
	}

	stepYears := stepMonths / 12
	drift := annualDrift * stepYears
	volatility := annualVolatility * math.Sqrt(stepYears)

	path := make([]float64, steps)
	path[0] = initialPrice
	for t := 1; t < steps; t++ {
		z := standardNormal(rng)
		logReturn := (drift - 0.5*volatility*volatility) + volatility*z
		path[t] = path[t-1] * math.Exp(logReturn)
	}
	return path, nil
}
