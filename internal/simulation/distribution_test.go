package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestCalculateNormalSampleMoments(t *testing.T) {
	rng := NewSeededRand("normal-moments")

	samples, err := CalculateNormalSample(0, 1, 100000, rng)
	require.NoError(t, err)
	require.Len(t, samples, 100000)

	mean := stat.Mean(samples, nil)
	std := stat.PopStdDev(samples, nil)
	assert.InDelta(t, 0.0, mean, 0.05)
	assert.InDelta(t, 1.0, std, 0.05)
}

func TestCalculateNormalSampleShiftAndScale(t *testing.T) {
	rng := NewSeededRand("normal-shift")

	samples, err := CalculateNormalSample(75, 12, 50000, rng)
	require.NoError(t, err)

	assert.InDelta(t, 75.0, stat.Mean(samples, nil), 0.5)
	assert.InDelta(t, 12.0, stat.PopStdDev(samples, nil), 0.5)
}

func TestCalculateNormalSampleFinite(t *testing.T) {
	// A uniform source that opens with zeros; Box-Muller must redraw rather
	// than emit ln(0).
	draws := []float64{0, 0, 0.5, 0.25, 0.75}
	i := 0
	rng := Rand(func() float64 {
		v := draws[i%len(draws)]
		i++
		return v
	})

	samples, err := CalculateNormalSample(0, 1, 10, rng)
	require.NoError(t, err)
	for _, s := range samples {
		require.False(t, math.IsNaN(s) || math.IsInf(s, 0), "non-finite sample %v", s)
	}
}

func TestCalculateNormalSampleDeterministic(t *testing.T) {
	first, err := CalculateNormalSample(5, 2, 100, NewSeededRand("repeat"))
	require.NoError(t, err)
	second, err := CalculateNormalSample(5, 2, 100, NewSeededRand("repeat"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculateNormalSampleInvalidParameters(t *testing.T) {
	rng := NewSeededRand("invalid")

	_, err := CalculateNormalSample(0, -1, 10, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = CalculateNormalSample(0, 1, 0, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = CalculateNormalSample(0, 1, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCalculateTriangularSampleSupport(t *testing.T) {
	rng := NewSeededRand("triangular-support")

	samples, err := CalculateTriangularSample(10, 50, 20, 20000, rng)
	require.NoError(t, err)
	require.Len(t, samples, 20000)

	for _, s := range samples {
		require.GreaterOrEqual(t, s, 10.0)
		require.LessOrEqual(t, s, 50.0)
	}

	// The mass should concentrate near the mode: the triangular mean is
	// (min+mode+max)/3.
	assert.InDelta(t, (10.0+20.0+50.0)/3, stat.Mean(samples, nil), 0.5)
}

func TestCalculateTriangularSampleInvalidParameters(t *testing.T) {
	rng := NewSeededRand("triangular-invalid")

	_, err := CalculateTriangularSample(10, 50, 5, 100, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter, "mode below min")

	_, err = CalculateTriangularSample(10, 50, 60, 100, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter, "mode above max")

	_, err = CalculateTriangularSample(50, 10, 30, 100, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter, "max below min")

	_, err = CalculateTriangularSample(10, 50, 20, 0, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter, "zero count")
}
