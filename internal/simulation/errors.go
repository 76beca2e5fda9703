package simulation

import "errors"

// Error kinds surfaced by the engine. Callers match them with errors.Is;
// individual failures wrap these with context via fmt.Errorf.
var (
	// ErrInvalidParameter reports malformed distribution or simulation
	// parameters, e.g. a triangular mode outside [min, max], a negative
	// standard deviation, or a negative trial count.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientSampleSize reports a statistic whose tail contains no
	// qualifying element for the requested confidence level, e.g. expected
	// shortfall over a population too small to have a 5% tail.
	ErrInsufficientSampleSize = errors.New("insufficient sample size")

	// ErrNonFiniteResult reports an input or computation that would
	// otherwise silently produce NaN or an infinity.
	ErrNonFiniteResult = errors.New("non-finite result")
)
