package simulation

import (
	"fmt"
	"math"
)

// CalculateNormalSample draws count values from a normal distribution with
// the given mean and standard deviation using the Box-Muller transform.
// The output is deterministic given a deterministic rng and fixed count.
func CalculateNormalSample(mean, std float64, count int, rng Rand) ([]float64, error) {
	if std < 0 {
		return nil, fmt.Errorf("standard deviation must be non-negative, got %v: %w", std, ErrInvalidParameter)
	}
	if count <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d: %w", count, ErrInvalidParameter)
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required: %w", ErrInvalidParameter)
	}

	samples := make([]float64, count)
	for i := range samples {
		samples[i] = mean + std*standardNormal(rng)
	}
	return samples, nil
}

// standardNormal returns one standard-normal variate via Box-Muller,
// consuming two uniforms per call.
//
// Box-Muller is undefined at u1 == 0 (ln 0 is -Inf). A zero draw is rejected
// and redrawn so a non-finite value can never enter a sample population.
func standardNormal(rng Rand) float64 {
	u1 := rng()
	for u1 == 0 {
		u1 = rng()
	}
	u2 := rng()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// CalculateTriangularSample draws count values from a triangular distribution
// on [min, max] with the given mode, using inverse-CDF sampling. Every sample
// lies in [min, max].
func CalculateTriangularSample(min, max, mode float64, count int, rng Rand) ([]float64, error) {
	if max <= min {
		return nil, fmt.Errorf("triangular max %v must exceed min %v: %w", max, min, ErrInvalidParameter)
	}
	if mode < min || mode > max {
		return nil, fmt.Errorf("triangular mode %v outside [%v, %v]: %w", mode, min, max, ErrInvalidParameter)
	}
	if count <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d: %w", count, ErrInvalidParameter)
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required: %w", ErrInvalidParameter)
	}

	span := max - min
	modePosition := (mode - min) / span

	samples := make([]float64, count)
	for i := range samples {
		r := rng()
		if r < modePosition {
			samples[i] = min + math.Sqrt(r*span*(mode-min))
		} else {
			samples[i] = max - math.Sqrt((1-r)*span*(max-mode))
		}
	}
	return samples, nil
}
