package finance

import (
	"fmt"
	"math"
	"strings"

	"github.com/Cryptonomikhan/rwai-financials/internal/domain"
	"github.com/Cryptonomikhan/rwai-financials/internal/simulation"
)

// Metric identifies the scalar each simulation trial records. The extraction
// function is resolved once, before the simulation loop, never per trial.
type Metric int

const (
	// MetricIRR is the annualized internal rate of return of the flow vector.
	MetricIRR Metric = iota
	// MetricNPV is the net present value at the scenario's discount rate.
	MetricNPV
	// MetricMIRR is the annualized modified internal rate of return.
	MetricMIRR
	// MetricPaybackPeriod is the months until the outlay is recovered.
	MetricPaybackPeriod
	// MetricTotalReturn is (total inflows - outlay) / outlay, undiscounted.
	MetricTotalReturn
)

// ParseMetric resolves a scenario-file metric name.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "irr":
		return MetricIRR, nil
	case "npv":
		return MetricNPV, nil
	case "mirr":
		return MetricMIRR, nil
	case "payback", "payback_period":
		return MetricPaybackPeriod, nil
	case "total_return":
		return MetricTotalReturn, nil
	default:
		return 0, fmt.Errorf("unknown metric %q: %w", name, simulation.ErrInvalidParameter)
	}
}

func (m Metric) String() string {
	switch m {
	case MetricIRR:
		return "irr"
	case MetricNPV:
		return "npv"
	case MetricMIRR:
		return "mirr"
	case MetricPaybackPeriod:
		return "payback_period"
	case MetricTotalReturn:
		return "total_return"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// hoursPerMonth is the leasing convention for a month of GPU availability.
const hoursPerMonth = 730

// ReturnCalculator turns a lease scenario into the pure return function the
// simulation engine consumes. All decimal scenario fields are converted to
// float64 once, at construction.
type ReturnCalculator struct {
	hardwareCost       float64
	outlay             float64 // tokenSupply * initialTokenPrice, the raise
	monthlyGrossAtFull float64 // fleet revenue per month at 100% utilization
	operatingCostRate  float64
	months             int
	progressive        bool

	monthlyDiscountRate float64
	financeRate         float64 // monthly, MIRR financing leg
	reinvestRate        float64 // monthly, MIRR reinvestment leg

	tokenSupply float64
}

// NewReturnCalculator validates the lease scenario and precomputes the flow
// model. If the scenario carries no explicit discount rate but prices its
// capital stack, the discount rate is derived from WACC.
func NewReturnCalculator(lease domain.LeaseScenario) (*ReturnCalculator, error) {
	if lease.GPUCount <= 0 {
		return nil, fmt.Errorf("gpu count must be positive, got %d: %w", lease.GPUCount, simulation.ErrInvalidParameter)
	}
	if !lease.GPUUnitCost.IsPositive() {
		return nil, fmt.Errorf("gpu unit cost must be positive, got %s: %w", lease.GPUUnitCost, simulation.ErrInvalidParameter)
	}
	if lease.HourlyLeaseRate.IsNegative() {
		return nil, fmt.Errorf("hourly lease rate cannot be negative, got %s: %w", lease.HourlyLeaseRate, simulation.ErrInvalidParameter)
	}
	opRate := lease.OperatingCostRate.InexactFloat64()
	if opRate < 0 || opRate >= 1 {
		return nil, fmt.Errorf("operating cost rate must be in [0, 1), got %s: %w", lease.OperatingCostRate, simulation.ErrInvalidParameter)
	}
	if lease.LeaseMonths <= 0 {
		return nil, fmt.Errorf("lease months must be positive, got %d: %w", lease.LeaseMonths, simulation.ErrInvalidParameter)
	}
	if !lease.TokenSupply.IsPositive() {
		return nil, fmt.Errorf("token supply must be positive, got %s: %w", lease.TokenSupply, simulation.ErrInvalidParameter)
	}
	if !lease.InitialTokenPrice.IsPositive() {
		return nil, fmt.Errorf("initial token price must be positive, got %s: %w", lease.InitialTokenPrice, simulation.ErrInvalidParameter)
	}

	annualDiscount := lease.DiscountRate.InexactFloat64()
	if annualDiscount <= -1 {
		return nil, fmt.Errorf("discount rate must exceed -100%%, got %s: %w", lease.DiscountRate, simulation.ErrInvalidParameter)
	}
	if annualDiscount == 0 && !lease.CostOfEquity.IsZero() {
		debtRatio := lease.DebtRatio.InexactFloat64()
		if debtRatio < 0 || debtRatio >= 1 {
			return nil, fmt.Errorf("debt ratio must be in [0, 1), got %s: %w", lease.DebtRatio, simulation.ErrInvalidParameter)
		}
		wacc, err := WACC(1-debtRatio, debtRatio,
			lease.CostOfEquity.InexactFloat64(),
			lease.CostOfDebt.InexactFloat64(),
			lease.TaxRate.InexactFloat64())
		if err != nil {
			return nil, err
		}
		annualDiscount = wacc
	}

	monthlyDiscount := MonthlyRate(annualDiscount)
	financeAnnual := lease.CostOfDebt.InexactFloat64()
	if financeAnnual == 0 {
		financeAnnual = annualDiscount
	}

	hardwareCost := lease.HardwareCost().InexactFloat64()
	return &ReturnCalculator{
		hardwareCost:        hardwareCost,
		outlay:              lease.TokenSupply.Mul(lease.InitialTokenPrice).InexactFloat64(),
		monthlyGrossAtFull:  lease.HourlyLeaseRate.InexactFloat64() * hoursPerMonth * float64(lease.GPUCount),
		operatingCostRate:   opRate,
		months:              lease.LeaseMonths,
		progressive:         lease.ProgressiveNOI,
		monthlyDiscountRate: monthlyDiscount,
		financeRate:         MonthlyRate(financeAnnual),
		reinvestRate:        monthlyDiscount,
		tokenSupply:         lease.TokenSupply.InexactFloat64(),
	}, nil
}

// Months is the lease term, which doubles as the simulated price path length.
func (rc *ReturnCalculator) Months() int {
	return rc.months
}

// MonthlyNOISchedule returns the per-month net operating income at the given
// utilization percentage. Progressive scenarios ramp from 60% of the sampled
// utilization to the full sampled level across the first year, reflecting
// fleet onboarding.
func (rc *ReturnCalculator) MonthlyNOISchedule(utilization float64) []float64 {
	schedule := make([]float64, rc.months)
	for m := 1; m <= rc.months; m++ {
		u := utilization
		if rc.progressive && m < 12 {
			u = utilization * (0.6 + 0.4*float64(m)/12)
		}
		gross := rc.monthlyGrossAtFull * u / 100
		schedule[m-1] = gross * (1 - rc.operatingCostRate)
	}
	return schedule
}

// CashFlows assembles the full flow vector for one trial: the token raise as
// the time-zero outlay, monthly NOI distributions, and a terminal value. The
// terminal value is the hardware salvage (salvageRate percent of fleet cost)
// unless a simulated price path is supplied, in which case holders exit at
// the terminal token price.
func (rc *ReturnCalculator) CashFlows(utilization, salvageRate float64, pricePath []float64) []float64 {
	flows := make([]float64, rc.months+1)
	flows[0] = -rc.outlay
	for i, noi := range rc.MonthlyNOISchedule(utilization) {
		flows[i+1] = noi
	}

	terminal := rc.hardwareCost * salvageRate / 100
	if len(pricePath) > 0 {
		terminal = rc.tokenSupply * pricePath[len(pricePath)-1]
	}
	flows[rc.months] += terminal
	return flows
}

// ReturnFunc binds the calculator and a metric into the closure the
// simulation engine consumes. A trial whose metric cannot be computed (IRR
// root not bracketed, outlay never recovered) yields NaN, which the engine
// rejects for the whole run rather than silently averaging in.
func (rc *ReturnCalculator) ReturnFunc(metric Metric) (simulation.ReturnFunc, error) {
	extract, err := rc.extractor(metric)
	if err != nil {
		return nil, err
	}
	return func(utilization, salvageRate float64, pricePath []float64) float64 {
		return extract(rc.CashFlows(utilization, salvageRate, pricePath))
	}, nil
}

func (rc *ReturnCalculator) extractor(metric Metric) (func([]float64) float64, error) {
	switch metric {
	case MetricIRR:
		return func(flows []float64) float64 {
			monthly, err := IRR(flows)
			if err != nil {
				return math.NaN()
			}
			return AnnualizeMonthlyRate(monthly)
		}, nil
	case MetricNPV:
		rate := rc.monthlyDiscountRate
		return func(flows []float64) float64 {
			return NPV(rate, flows)
		}, nil
	case MetricMIRR:
		finance, reinvest := rc.financeRate, rc.reinvestRate
		return func(flows []float64) float64 {
			monthly, err := MIRR(flows, finance, reinvest)
			if err != nil {
				return math.NaN()
			}
			return AnnualizeMonthlyRate(monthly)
		}, nil
	case MetricPaybackPeriod:
		return func(flows []float64) float64 {
			months, err := PaybackPeriod(flows)
			if err != nil {
				return math.NaN()
			}
			return months
		}, nil
	case MetricTotalReturn:
		return func(flows []float64) float64 {
			outlay := -flows[0]
			total := 0.0
			for _, cf := range flows[1:] {
				total += cf
			}
			return (total - outlay) / outlay
		}, nil
	default:
		return nil, fmt.Errorf("unknown metric %v: %w", metric, simulation.ErrInvalidParameter)
	}
}
