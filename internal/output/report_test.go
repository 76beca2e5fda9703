package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cryptonomikhan/rwai-financials/internal/config"
	"github.com/Cryptonomikhan/rwai-financials/internal/simulation"
)

func testResult(t *testing.T) *simulation.Result {
	t.Helper()
	rng := simulation.NewSeededRand("report-test")
	values, err := simulation.CalculateNormalSample(0.10, 0.05, 200, rng)
	require.NoError(t, err)
	result, err := simulation.CalculateStatistics(values)
	require.NoError(t, err)
	return result
}

func TestNewReportIncludesTargetProbability(t *testing.T) {
	scenario := config.NewInputParser().CreateExampleScenario()
	result := testResult(t)

	report := NewReport(scenario, result)
	require.NotNil(t, report.TargetReturn)
	require.NotNil(t, report.TargetProbability)

	assert.Equal(t, scenario.Lease.Name, report.Scenario)
	assert.Equal(t, len(result.Values), report.Trials)
	assert.Equal(t, simulation.ProbabilityOfAchievingTarget(result, *report.TargetReturn), *report.TargetProbability)
}

func TestNewReportWithoutTarget(t *testing.T) {
	scenario := config.NewInputParser().CreateExampleScenario()
	scenario.Simulation.TargetReturn = nil

	report := NewReport(scenario, testResult(t))
	assert.Nil(t, report.TargetProbability)
}

func TestFormatConsole(t *testing.T) {
	scenario := config.NewInputParser().CreateExampleScenario()
	report := NewReport(scenario, testResult(t))

	text := report.FormatConsole()
	assert.Contains(t, text, "Scenario: h100-cluster-example")
	assert.Contains(t, text, "Token raise: $240000.00")
	assert.Contains(t, text, "Hardware cost: $240000.00")
	assert.Contains(t, text, "Mean:")
	assert.Contains(t, text, "VaR 95%")
	assert.Contains(t, text, "Expected Shortfall 95%")
	assert.Contains(t, text, "p50")
	assert.Contains(t, text, "P(irr >= 0.1000)")
}

func TestFormatJSONRoundTrip(t *testing.T) {
	scenario := config.NewInputParser().CreateExampleScenario()
	report := NewReport(scenario, testResult(t))

	text, err := report.FormatJSON()
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal([]byte(text), &decoded))
	assert.Equal(t, report.Scenario, decoded.Scenario)
	assert.Equal(t, report.Trials, decoded.Trials)
	assert.True(t, decoded.TokenRaise.Equal(report.TokenRaise.Decimal))
	require.NotNil(t, decoded.Result)
	assert.InDelta(t, report.Result.Mean, decoded.Result.Mean, 1e-12)
	assert.Len(t, decoded.Result.Values, report.Trials)
}
