package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateTokenPricePathPositivity(t *testing.T) {
	rng := NewSeededRand("gbm-positivity")

	path, err := SimulateTokenPricePath(1.25, 0.05, 0.80, 120, 1, rng)
	require.NoError(t, err)
	require.Len(t, path, 120)

	for i, price := range path {
		require.Greater(t, price, 0.0, "price at step %d", i)
	}
}

func TestSimulateTokenPricePathFirstElement(t *testing.T) {
	rng := NewSeededRand("gbm-first")

	path, err := SimulateTokenPricePath(42.0, 0.10, 0.30, 36, 1, rng)
	require.NoError(t, err)
	assert.Equal(t, 42.0, path[0], "step 0 must be the initial price with no randomness applied")
}

func TestSimulateTokenPricePathDeterministic(t *testing.T) {
	first, err := SimulateTokenPricePath(2.0, 0.08, 0.45, 60, 1, NewSeededRand("gbm-repeat"))
	require.NoError(t, err)
	second, err := SimulateTokenPricePath(2.0, 0.08, 0.45, 60, 1, NewSeededRand("gbm-repeat"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSimulateTokenPricePathZeroVolatility(t *testing.T) {
	rng := NewSeededRand("gbm-drift-only")

	// With zero volatility the path is pure drift and strictly increasing
	// for positive drift.
	path, err := SimulateTokenPricePath(1.0, 0.12, 0, 24, 1, rng)
	require.NoError(t, err)
	for i := 1; i < len(path); i++ {
		require.Greater(t, path[i], path[i-1], "step %d", i)
	}
}

func TestSimulateTokenPricePathInvalidParameters(t *testing.T) {
	rng := NewSeededRand("gbm-invalid")

	_, err := SimulateTokenPricePath(0, 0.05, 0.5, 12, 1, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter, "zero initial price")

	_, err = SimulateTokenPricePath(-1, 0.05, 0.5, 12, 1, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter, "negative initial price")

	_, err = SimulateTokenPricePath(1, 0.05, -0.5, 12, 1, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter, "negative volatility")

	_, err = SimulateTokenPricePath(1, 0.05, 0.5, 0, 1, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter, "zero steps")

	_, err = SimulateTokenPricePath(1, 0.05, 0.5, 12, 0, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter, "zero step length")

	_, err = SimulateTokenPricePath(1, 0.05, 0.5, 12, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter, "nil rng")
}
