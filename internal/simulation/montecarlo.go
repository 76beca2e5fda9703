package simulation

import (
	"fmt"
)

// DefaultNumSimulations is the trial count used when Parameters leaves
// NumSimulations at zero.
const DefaultNumSimulations = 1000

// Fixed seeds for the two run modes. They are distinct so the modes cannot
// collide or interfere: re-running either mode with the same inputs and the
// same trial count reproduces bit-identical output.
const (
	returnSimulationSeed           = "rwai-token-holder-returns"
	priceFluctuationSimulationSeed = "rwai-token-holder-returns-with-price-fluctuations"
)

// ReturnFunc maps one trial's sampled inputs to a scalar outcome. The engine
// treats it as an opaque pure function: deterministic given its inputs, no
// side effects. utilization and salvageRate are percentages in [0, 100];
// pricePath is nil unless the run simulates token price fluctuations. A
// ReturnFunc that produces a non-finite value fails the whole run.
type ReturnFunc func(utilization, salvageRate float64, pricePath []float64) float64

// Parameters describes one simulation request. It is a transient input; the
// engine never retains it.
type Parameters struct {
	UtilizationMean float64
	UtilizationStd  float64
	SalvageRateMean float64
	SalvageRateStd  float64

	// Price-path settings, consumed only by RunWithPriceFluctuations.
	// Months doubles as the path length at one step per month.
	InitialTokenPrice    float64
	TokenPriceDrift      float64
	TokenPriceVolatility float64
	Months               int

	// NumSimulations of zero selects DefaultNumSimulations.
	NumSimulations int

	CalculateReturn ReturnFunc
}

// Simulator runs token-holder return simulations. All trials within a run
// execute sequentially on the caller's goroutine and draw from one unshared
// generator, which is what keeps runs reproducible end to end.
type Simulator struct {
	logger Logger
}

// NewSimulator creates a simulator with a no-op logger.
func NewSimulator() *Simulator {
	return &Simulator{logger: NopLogger{}}
}

// SetLogger replaces the simulator's logger. Nil is ignored.
func (s *Simulator) SetLogger(l Logger) {
	if l != nil {
		s.logger = l
	}
}

// Run executes the simulation without token price fluctuations: each trial
// draws a clamped utilization and salvage-rate sample and hands them to the
// return function with a nil price path.
func (s *Simulator) Run(params Parameters) (*Result, error) {
	if err := validateParameters(params); err != nil {
		return nil, err
	}
	return s.run(params, NewSeededRand(returnSimulationSeed), false)
}

// RunWithPriceFluctuations executes the simulation with a full token price
// path generated per trial from the same generator and passed to the return
// function, so downstream formulas can use the terminal simulated price
// instead of a static salvage value. It is seeded independently of Run.
func (s *Simulator) RunWithPriceFluctuations(params Parameters) (*Result, error) {
	if err := validateParameters(params); err != nil {
		return nil, err
	}
	if params.Months <= 0 {
		return nil, fmt.Errorf("months must be positive for price fluctuations, got %d: %w", params.Months, ErrInvalidParameter)
	}
	if params.InitialTokenPrice <= 0 {
		return nil, fmt.Errorf("initial token price must be positive, got %v: %w", params.InitialTokenPrice, ErrInvalidParameter)
	}
	if params.TokenPriceVolatility < 0 {
		return nil, fmt.Errorf("token price volatility must be non-negative, got %v: %w", params.TokenPriceVolatility, ErrInvalidParameter)
	}
	return s.run(params, NewSeededRand(priceFluctuationSimulationSeed), true)
}

func (s *Simulator) run(params Parameters, rng Rand, withPricePath bool) (*Result, error) {
	numSimulations := params.NumSimulations
	if numSimulations == 0 {
		numSimulations = DefaultNumSimulations
	}

	values := make([]float64, numSimulations)
	for i := 0; i < numSimulations; i++ {
		utilization := clamp(params.UtilizationMean+params.UtilizationStd*standardNormal(rng), 0, 100)
		salvageRate := clamp(params.SalvageRateMean+params.SalvageRateStd*standardNormal(rng), 0, 100)

		var pricePath []float64
		if withPricePath {
			var err error
			pricePath, err = SimulateTokenPricePath(
				params.InitialTokenPrice,
				params.TokenPriceDrift,
				params.TokenPriceVolatility,
				params.Months, 1, rng)
			if err != nil {
				return nil, fmt.Errorf("trial %d: %w", i, err)
			}
		}

		values[i] = params.CalculateReturn(utilization, salvageRate, pricePath)
	}

	s.logger.Debugf("collected %d trial outcomes", numSimulations)
	return CalculateStatistics(values)
}

func validateParameters(params Parameters) error {
	if params.CalculateReturn == nil {
		return fmt.Errorf("a return function is required: %w", ErrInvalidParameter)
	}
	if params.UtilizationStd < 0 {
		return fmt.Errorf("utilization standard deviation must be non-negative, got %v: %w", params.UtilizationStd, ErrInvalidParameter)
	}
	if params.SalvageRateStd < 0 {
		return fmt.Errorf("salvage rate standard deviation must be non-negative, got %v: %w", params.SalvageRateStd, ErrInvalidParameter)
	}
	if params.NumSimulations < 0 {
		return fmt.Errorf("simulation count must be non-negative, got %d: %w", params.NumSimulations, ErrInvalidParameter)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
