package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Cryptonomikhan/rwai-financials/internal/domain"
	"github.com/Cryptonomikhan/rwai-financials/internal/finance"
)

// InputParser handles parsing of scenario files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario from a YAML file and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var scenario domain.Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &scenario, nil
}

// ValidateScenario validates a loaded scenario. Lease economics are checked
// here field by field so a bad file fails before any simulation work; the
// metric name must also resolve, since it is parsed once at load time rather
// than dispatched per trial.
func (ip *InputParser) ValidateScenario(scenario *domain.Scenario) error {
	if err := ip.validateLease(&scenario.Lease); err != nil {
		return fmt.Errorf("lease validation failed: %w", err)
	}
	if err := ip.validateSimulation(&scenario.Simulation); err != nil {
		return fmt.Errorf("simulation settings validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validateLease(lease *domain.LeaseScenario) error {
	if lease.Name == "" {
		return fmt.Errorf("lease name is required")
	}
	if lease.GPUCount <= 0 {
		return fmt.Errorf("gpu count must be positive")
	}
	if !lease.GPUUnitCost.IsPositive() {
		return fmt.Errorf("gpu unit cost must be positive")
	}
	if lease.HourlyLeaseRate.IsNegative() {
		return fmt.Errorf("hourly lease rate cannot be negative")
	}
	if lease.OperatingCostRate.IsNegative() || lease.OperatingCostRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("operating cost rate must be between 0 and 1 (exclusive)")
	}
	if lease.LeaseMonths <= 0 || lease.LeaseMonths > 120 {
		return fmt.Errorf("lease months must be between 1 and 120")
	}
	if !lease.TokenSupply.IsPositive() {
		return fmt.Errorf("token supply must be positive")
	}
	if !lease.InitialTokenPrice.IsPositive() {
		return fmt.Errorf("initial token price must be positive")
	}
	if lease.DiscountRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("discount rate must exceed -100%%")
	}
	if lease.DebtRatio.IsNegative() || lease.DebtRatio.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("debt ratio must be between 0 and 1 (exclusive)")
	}
	if lease.TaxRate.IsNegative() || lease.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("tax rate must be between 0 and 1 (exclusive)")
	}
	return nil
}

func (ip *InputParser) validateSimulation(settings *domain.SimulationSettings) error {
	if settings.UtilizationMean < 0 || settings.UtilizationMean > 100 {
		return fmt.Errorf("utilization mean must be between 0 and 100")
	}
	if settings.UtilizationStd < 0 {
		return fmt.Errorf("utilization standard deviation cannot be negative")
	}
	if settings.SalvageRateMean < 0 || settings.SalvageRateMean > 100 {
		return fmt.Errorf("salvage rate mean must be between 0 and 100")
	}
	if settings.SalvageRateStd < 0 {
		return fmt.Errorf("salvage rate standard deviation cannot be negative")
	}
	if settings.NumSimulations < 0 {
		return fmt.Errorf("num simulations cannot be negative")
	}
	if _, err := finance.ParseMetric(settings.Metric); err != nil {
		return fmt.Errorf("metric: %w", err)
	}
	if settings.PriceFluctuations {
		if settings.TokenPriceVolatility <= 0 {
			return fmt.Errorf("token price volatility must be positive when price fluctuations are enabled")
		}
	}
	return nil
}

// CreateExampleScenario returns a complete, valid starter scenario: an
// eight-GPU H100 cluster leased for three years, simulated on annualized IRR.
func (ip *InputParser) CreateExampleScenario() *domain.Scenario {
	target := 0.10
	return &domain.Scenario{
		Lease: domain.LeaseScenario{
			Name:              "h100-cluster-example",
			GPUCount:          8,
			GPUUnitCost:       decimal.NewFromInt(30000),
			TokenSupply:       decimal.NewFromInt(240000),
			InitialTokenPrice: decimal.NewFromInt(1),
			HourlyLeaseRate:   decimal.NewFromFloat(2.50),
			OperatingCostRate: decimal.NewFromFloat(0.30),
			LeaseMonths:       36,
			ProgressiveNOI:    true,
			DiscountRate:      decimal.NewFromFloat(0.12),
		},
		Simulation: domain.SimulationSettings{
			UtilizationMean:      70,
			UtilizationStd:       15,
			SalvageRateMean:      25,
			SalvageRateStd:       10,
			NumSimulations:       1000,
			Metric:               "irr",
			PriceFluctuations:    false,
			TokenPriceDrift:      0.05,
			TokenPriceVolatility: 0.60,
			TargetReturn:         &target,
		},
	}
}
