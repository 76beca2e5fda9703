package domain

import (
	"github.com/shopspring/decimal"
)

// LeaseScenario describes the economics of one fractionalized GPU compute
// lease: the fleet the token sale funded, what leasing it earns, and how the
// capital stack is priced. Monetary fields carry financial precision; they
// are converted to float64 only at the simulation boundary.
type LeaseScenario struct {
	Name string `yaml:"name" json:"name"`

	// Fleet and token structure.
	GPUCount          int             `yaml:"gpu_count" json:"gpu_count"`
	GPUUnitCost       decimal.Decimal `yaml:"gpu_unit_cost" json:"gpu_unit_cost"`
	TokenSupply       decimal.Decimal `yaml:"token_supply" json:"token_supply"`
	InitialTokenPrice decimal.Decimal `yaml:"initial_token_price" json:"initial_token_price"`

	// Lease economics.
	HourlyLeaseRate   decimal.Decimal `yaml:"hourly_lease_rate" json:"hourly_lease_rate"`     // per GPU at full utilization
	OperatingCostRate decimal.Decimal `yaml:"operating_cost_rate" json:"operating_cost_rate"` // fraction of gross revenue
	LeaseMonths       int             `yaml:"lease_months" json:"lease_months"`

	// ProgressiveNOI ramps net operating income over the first year instead
	// of assuming the sampled utilization from month one.
	ProgressiveNOI bool `yaml:"progressive_noi" json:"progressive_noi"`

	// Capital pricing.
	DiscountRate decimal.Decimal `yaml:"discount_rate" json:"discount_rate"` // annual, used by NPV
	CostOfEquity decimal.Decimal `yaml:"cost_of_equity,omitempty" json:"cost_of_equity,omitempty"`
	CostOfDebt   decimal.Decimal `yaml:"cost_of_debt,omitempty" json:"cost_of_debt,omitempty"`
	DebtRatio    decimal.Decimal `yaml:"debt_ratio,omitempty" json:"debt_ratio,omitempty"` // debt / (debt + equity)
	TaxRate      decimal.Decimal `yaml:"tax_rate,omitempty" json:"tax_rate,omitempty"`
}

// HardwareCost is the total fleet acquisition cost.
func (ls *LeaseScenario) HardwareCost() decimal.Decimal {
	return ls.GPUUnitCost.Mul(decimal.NewFromInt(int64(ls.GPUCount)))
}

// SimulationSettings configures the Monte Carlo run for a scenario.
// Utilization and salvage rate are percentages in [0, 100].
type SimulationSettings struct {
	UtilizationMean float64 `yaml:"utilization_mean" json:"utilization_mean"`
	UtilizationStd  float64 `yaml:"utilization_std" json:"utilization_std"`
	SalvageRateMean float64 `yaml:"salvage_rate_mean" json:"salvage_rate_mean"`
	SalvageRateStd  float64 `yaml:"salvage_rate_std" json:"salvage_rate_std"`

	// NumSimulations of zero selects the engine default.
	NumSimulations int `yaml:"num_simulations" json:"num_simulations"`

	// Metric names the scalar each trial records; parsed once at load time.
	Metric string `yaml:"metric" json:"metric"`

	// Token price fluctuation settings. When enabled, each trial simulates a
	// full price path and the terminal price replaces the static salvage
	// value in the return calculation.
	PriceFluctuations    bool    `yaml:"price_fluctuations" json:"price_fluctuations"`
	TokenPriceDrift      float64 `yaml:"token_price_drift,omitempty" json:"token_price_drift,omitempty"`
	TokenPriceVolatility float64 `yaml:"token_price_volatility,omitempty" json:"token_price_volatility,omitempty"`

	// TargetReturn, when set, adds a probability-of-target line to reports.
	TargetReturn *float64 `yaml:"target_return,omitempty" json:"target_return,omitempty"`
}

// Scenario is one complete simulation request as loaded from a scenario file.
type Scenario struct {
	Lease      LeaseScenario      `yaml:"lease" json:"lease"`
	Simulation SimulationSettings `yaml:"simulation" json:"simulation"`
}
