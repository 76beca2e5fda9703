package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Cryptonomikhan/rwai-financials/internal/config"
	"github.com/Cryptonomikhan/rwai-financials/internal/finance"
)

// Prints the monthly cash flow schedule a scenario implies at a fixed
// utilization, as CSV. Useful for eyeballing the progressive NOI ramp and the
// terminal month before trusting a full simulation of the scenario.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: print_cashflows <scenario-file> [utilization]")
		return
	}

	parser := config.NewInputParser()
	scenario, err := parser.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}

	utilization := scenario.Simulation.UtilizationMean
	if len(os.Args) > 2 {
		utilization, err = strconv.ParseFloat(os.Args[2], 64)
		if err != nil {
			panic(err)
		}
	}

	calc, err := finance.NewReturnCalculator(scenario.Lease)
	if err != nil {
		panic(err)
	}

	flows := calc.CashFlows(utilization, scenario.Simulation.SalvageRateMean, nil)
	schedule := calc.MonthlyNOISchedule(utilization)

	fmt.Println("Month,NOI,CashFlow,Cumulative")
	cumulative := 0.0
	for m, cf := range flows {
		cumulative += cf
		noi := 0.0
		if m > 0 {
			noi = schedule[m-1]
		}
		fmt.Printf("%d,%.2f,%.2f,%.2f\n", m, noi, cf, cumulative)
	}

	if payback, err := finance.PaybackPeriod(flows); err == nil {
		fmt.Printf("\nPayback: %.2f months at %.1f%% utilization\n", payback, utilization)
	} else {
		fmt.Printf("\nNo payback within the lease at %.1f%% utilization\n", utilization)
	}
}
