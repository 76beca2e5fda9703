package main

import (
	"fmt"
	"os"

	"github.com/Cryptonomikhan/rwai-financials/internal/config"
	"github.com/Cryptonomikhan/rwai-financials/internal/finance"
)

// Prints NPV across the utilization range for a scenario and bisects for the
// break-even utilization where NPV crosses zero. Handy when tuning lease
// rates: it shows how much slack a cluster has before token holders lose
// money on a discounted basis.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: break_even_utilization <scenario-file>")
		return
	}

	parser := config.NewInputParser()
	scenario, err := parser.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}

	calc, err := finance.NewReturnCalculator(scenario.Lease)
	if err != nil {
		panic(err)
	}
	npvFn, err := calc.ReturnFunc(finance.MetricNPV)
	if err != nil {
		panic(err)
	}

	salvage := scenario.Simulation.SalvageRateMean
	npvAt := func(utilization float64) float64 {
		return npvFn(utilization, salvage, nil)
	}

	fmt.Println("Utilization,NPV")
	for u := 0.0; u <= 100.0; u += 5.0 {
		fmt.Printf("%.0f,%.2f\n", u, npvAt(u))
	}

	lo, hi := 0.0, 100.0
	if npvAt(lo) > 0 {
		fmt.Println("\nNPV positive even at zero utilization; no break-even point")
		return
	}
	if npvAt(hi) < 0 {
		fmt.Println("\nNPV negative even at full utilization; no break-even point")
		return
	}
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if npvAt(mid) < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	fmt.Printf("\nBreak-even utilization: %.2f%% (salvage %.1f%%)\n", (lo+hi)/2, salvage)
}
