package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Cryptonomikhan/rwai-financials/internal/domain"
	"github.com/Cryptonomikhan/rwai-financials/internal/simulation"
	"github.com/Cryptonomikhan/rwai-financials/pkg/decimal"
)

// percentileOrder fixes the display order of the engine's percentile map.
var percentileOrder = []string{"p1", "p5", "p10", "p25", "p50", "p75", "p90", "p95", "p99"}

// Report pairs a simulation result with the scenario context a reader needs
// to interpret it. It is a pure view over the result object.
type Report struct {
	Scenario          string             `json:"scenario"`
	Metric            string             `json:"metric"`
	Trials            int                `json:"trials"`
	PriceFluctuations bool               `json:"price_fluctuations"`
	TokenRaise        decimal.Money      `json:"token_raise"`
	HardwareCost      decimal.Money      `json:"hardware_cost"`
	TargetReturn      *float64           `json:"target_return,omitempty"`
	TargetProbability *float64           `json:"target_probability,omitempty"`
	Result            *simulation.Result `json:"result"`
}

// NewReport builds a report for a completed run. When the scenario names a
// target return, the empirical probability of achieving it is included.
func NewReport(scenario *domain.Scenario, result *simulation.Result) *Report {
	report := &Report{
		Scenario:          scenario.Lease.Name,
		Metric:            scenario.Simulation.Metric,
		Trials:            len(result.Values),
		PriceFluctuations: scenario.Simulation.PriceFluctuations,
		TokenRaise:        decimal.NewMoneyFromDecimal(scenario.Lease.TokenSupply.Mul(scenario.Lease.InitialTokenPrice)),
		HardwareCost:      decimal.NewMoneyFromDecimal(scenario.Lease.HardwareCost()),
		TargetReturn:      scenario.Simulation.TargetReturn,
		Result:            result,
	}
	if report.TargetReturn != nil {
		p := simulation.ProbabilityOfAchievingTarget(result, *report.TargetReturn)
		report.TargetProbability = &p
	}
	return report
}

// FormatConsole renders the report as a plain-text summary.
func (r *Report) FormatConsole() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Scenario: %s\n", r.Scenario)
	fmt.Fprintf(&b, "Metric: %s (%d trials", r.Metric, r.Trials)
	if r.PriceFluctuations {
		b.WriteString(", with token price fluctuations")
	}
	b.WriteString(")\n")
	fmt.Fprintf(&b, "Token raise: %s  Hardware cost: %s\n\n", r.TokenRaise.Format(), r.HardwareCost.Format())

	fmt.Fprintf(&b, "Mean:    %12.4f\n", r.Result.Mean)
	fmt.Fprintf(&b, "Median:  %12.4f\n", r.Result.Median)
	fmt.Fprintf(&b, "Std Dev: %12.4f\n", r.Result.StdDev)
	fmt.Fprintf(&b, "Min:     %12.4f\n", r.Result.Min)
	fmt.Fprintf(&b, "Max:     %12.4f\n", r.Result.Max)
	b.WriteString("\nPercentiles:\n")
	for _, label := range percentileOrder {
		if v, ok := r.Result.Percentiles[label]; ok {
			fmt.Fprintf(&b, "  %-4s %12.4f\n", label, v)
		}
	}
	b.WriteString("\nRisk:\n")
	fmt.Fprintf(&b, "  VaR 95%%:                %12.4f\n", r.Result.VaR95)
	fmt.Fprintf(&b, "  VaR 99%%:                %12.4f\n", r.Result.VaR99)
	fmt.Fprintf(&b, "  Expected Shortfall 95%%: %12.4f\n", r.Result.ExpectedShortfall95)

	if r.TargetReturn != nil && r.TargetProbability != nil {
		fmt.Fprintf(&b, "\nP(%s >= %.4f): %.1f%%\n", r.Metric, *r.TargetReturn, *r.TargetProbability*100)
	}
	return b.String()
}

// FormatJSON renders the report, including the full trial population, as
// indented JSON.
func (r *Report) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data), nil
}
