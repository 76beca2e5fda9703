package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cryptonomikhan/rwai-financials/internal/config"
	"github.com/Cryptonomikhan/rwai-financials/internal/output"
)

func TestReportGeneration_ConsoleAndJSON(t *testing.T) {
	parser := config.NewInputParser()
	scenario, err := parser.LoadFromFile("../testdata/example_scenario.yaml")
	require.NoError(t, err)

	sim, params, _ := loadScenario(t)
	result, err := sim.Run(params)
	require.NoError(t, err)

	report := output.NewReport(scenario, result)

	console := report.FormatConsole()
	assert.Contains(t, console, "Scenario: h100-cluster")
	assert.Contains(t, console, "Metric: irr (300 trials)")
	assert.Contains(t, console, "Token raise: $240000.00")
	assert.Contains(t, console, "VaR 95%")

	text, err := report.FormatJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &decoded))
	assert.Equal(t, "h100-cluster", decoded["scenario"])
	assert.Equal(t, float64(300), decoded["trials"])
	assert.Contains(t, decoded, "result")
}
