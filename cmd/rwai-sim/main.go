package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Cryptonomikhan/rwai-financials/internal/config"
	"github.com/Cryptonomikhan/rwai-financials/internal/finance"
	"github.com/Cryptonomikhan/rwai-financials/internal/output"
	"github.com/Cryptonomikhan/rwai-financials/internal/simulation"
)

var (
	inputFile    string
	outputFormat string
	trials       int
	targetReturn float64
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "rwai-sim",
	Short: "Monte Carlo return simulator for tokenized GPU compute leases",
	Long: `rwai-sim models token-holder returns from leasing fractionalized GPU
compute capacity. A scenario file describes the cluster economics and the
uncertain inputs; the simulator draws utilization and salvage outcomes,
optionally simulates token price paths, and reports the distribution of the
chosen return metric.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation from a scenario file",
	RunE:  runSimulation,
}

var exampleCmd = &cobra.Command{
	Use:   "example [filename]",
	Short: "Write a starter scenario file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  writeExample,
}

func init() {
	runCmd.Flags().StringVarP(&inputFile, "input", "i", "", "path to scenario YAML file (required)")
	runCmd.Flags().StringVarP(&outputFormat, "format", "f", "console", "output format (console, json)")
	runCmd.Flags().IntVar(&trials, "trials", 0, "override the scenario's trial count")
	runCmd.Flags().Float64Var(&targetReturn, "target", 0, "override the scenario's target return")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-stage progress")
	runCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(exampleCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	if outputFormat != "console" && outputFormat != "json" {
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}

	parser := config.NewInputParser()
	scenario, err := parser.LoadFromFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	if trials > 0 {
		scenario.Simulation.NumSimulations = trials
	}
	if cmd.Flags().Changed("target") {
		scenario.Simulation.TargetReturn = &targetReturn
	}

	calc, err := finance.NewReturnCalculator(scenario.Lease)
	if err != nil {
		return fmt.Errorf("failed to build return calculator: %w", err)
	}

	metric, err := finance.ParseMetric(scenario.Simulation.Metric)
	if err != nil {
		return err
	}
	returnFn, err := calc.ReturnFunc(metric)
	if err != nil {
		return err
	}

	params := simulation.Parameters{
		UtilizationMean:      scenario.Simulation.UtilizationMean,
		UtilizationStd:       scenario.Simulation.UtilizationStd,
		SalvageRateMean:      scenario.Simulation.SalvageRateMean,
		SalvageRateStd:       scenario.Simulation.SalvageRateStd,
		NumSimulations:       scenario.Simulation.NumSimulations,
		Months:               calc.Months(),
		InitialTokenPrice:    scenario.Lease.InitialTokenPrice.InexactFloat64(),
		TokenPriceDrift:      scenario.Simulation.TokenPriceDrift,
		TokenPriceVolatility: scenario.Simulation.TokenPriceVolatility,
		CalculateReturn:      returnFn,
	}

	sim := simulation.NewSimulator()
	if verbose {
		sim.SetLogger(&consoleLogger{})
	}

	var result *simulation.Result
	if scenario.Simulation.PriceFluctuations {
		result, err = sim.RunWithPriceFluctuations(params)
	} else {
		result, err = sim.Run(params)
	}
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	report := output.NewReport(scenario, result)
	switch outputFormat {
	case "json":
		text, err := report.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Println(text)
	default:
		fmt.Print(report.FormatConsole())
	}
	return nil
}

func writeExample(cmd *cobra.Command, args []string) error {
	filename := "scenario.yaml"
	if len(args) > 0 {
		filename = args[0]
	}

	scenario := config.NewInputParser().CreateExampleScenario()
	data, err := yaml.Marshal(scenario)
	if err != nil {
		return fmt.Errorf("failed to marshal example scenario: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	fmt.Printf("Wrote example scenario to %s\n", filename)
	return nil
}

// consoleLogger satisfies simulation.Logger for --verbose runs.
type consoleLogger struct{}

func (l *consoleLogger) Debugf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "DEBUG: "+format+"\n", args...)
}

func (l *consoleLogger) Infof(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "INFO: "+format+"\n", args...)
}

func (l *consoleLogger) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "WARN: "+format+"\n", args...)
}

func (l *consoleLogger) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
