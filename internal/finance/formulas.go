package finance

import (
	"errors"
	"fmt"
	"math"

	"github.com/Cryptonomikhan/rwai-financials/internal/simulation"
)

// Formula-specific error kinds. Parameter validation reuses the engine's
// sentinel so callers have one vocabulary to match against.
var (
	// ErrNoConvergence reports an iterative solve (IRR) that found no root.
	ErrNoConvergence = errors.New("no convergence")

	// ErrNoPayback reports cash flows that never recover the initial outlay.
	ErrNoPayback = errors.New("initial outlay never recovered")
)

const (
	irrMaxIterations = 100
	irrTolerance     = 1e-9
)

// NPV returns the net present value of a cash flow series at the given
// per-period discount rate. cashflows[0] is the time-zero flow and is not
// discounted.
func NPV(rate float64, cashflows []float64) float64 {
	npv := 0.0
	for t, cf := range cashflows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// npvDerivative is d(NPV)/d(rate), used by Newton's method.
func npvDerivative(rate float64, cashflows []float64) float64 {
	d := 0.0
	for t := 1; t < len(cashflows); t++ {
		d -= float64(t) * cashflows[t] / math.Pow(1+rate, float64(t+1))
	}
	return d
}

// IRR returns the per-period internal rate of return of a cash flow series:
// the rate at which NPV is zero. Newton's method from a 10% starting guess;
// if it fails to converge, a bisection pass over (-1, 10] is attempted before
// giving up with ErrNoConvergence.
func IRR(cashflows []float64) (float64, error) {
	if len(cashflows) < 2 {
		return 0, fmt.Errorf("IRR needs at least two cash flows, got %d: %w", len(cashflows), simulation.ErrInvalidParameter)
	}
	hasPositive, hasNegative := false, false
	for _, cf := range cashflows {
		if cf > 0 {
			hasPositive = true
		}
		if cf < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return 0, fmt.Errorf("IRR needs both inflows and outflows: %w", simulation.ErrInvalidParameter)
	}

	rate := 0.1
	for i := 0; i < irrMaxIterations; i++ {
		f := NPV(rate, cashflows)
		if math.Abs(f) < irrTolerance {
			return rate, nil
		}
		d := npvDerivative(rate, cashflows)
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			break
		}
		next := rate - f/d
		if next <= -1 {
			// Newton stepped past -100%; pull back to the midpoint of the
			// current rate and the domain boundary. Convergence is judged on
			// |NPV| alone, never on step size, so the pullback cannot fake a
			// root.
			next = (rate - 1) / 2
		}
		rate = next
	}
	return bisectIRR(cashflows)
}

func bisectIRR(cashflows []float64) (float64, error) {
	lo, hi := -0.9999, 10.0
	fLo := NPV(lo, cashflows)
	fHi := NPV(hi, cashflows)
	if fLo*fHi > 0 {
		return 0, fmt.Errorf("IRR root not bracketed in (-100%%, 1000%%]: %w", ErrNoConvergence)
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		fMid := NPV(mid, cashflows)
		if math.Abs(fMid) < irrTolerance || hi-lo < irrTolerance {
			return mid, nil
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return 0, fmt.Errorf("IRR bisection exhausted: %w", ErrNoConvergence)
}

// MIRR returns the per-period modified internal rate of return: negative
// flows discounted at financeRate, positive flows compounded to the horizon
// at reinvestRate.
func MIRR(cashflows []float64, financeRate, reinvestRate float64) (float64, error) {
	if len(cashflows) < 2 {
		return 0, fmt.Errorf("MIRR needs at least two cash flows, got %d: %w", len(cashflows), simulation.ErrInvalidParameter)
	}

	n := len(cashflows) - 1
	futurePositive := 0.0
	presentNegative := 0.0
	for t, cf := range cashflows {
		if cf > 0 {
			futurePositive += cf * math.Pow(1+reinvestRate, float64(n-t))
		} else if cf < 0 {
			presentNegative += cf / math.Pow(1+financeRate, float64(t))
		}
	}
	if futurePositive == 0 || presentNegative == 0 {
		return 0, fmt.Errorf("MIRR needs both inflows and outflows: %w", simulation.ErrInvalidParameter)
	}
	return math.Pow(futurePositive/-presentNegative, 1/float64(n)) - 1, nil
}

// WACC returns the weighted average cost of capital for the given equity and
// debt weights (any consistent unit), with the debt leg tax-shielded.
func WACC(equityValue, debtValue, costOfEquity, costOfDebt, taxRate float64) (float64, error) {
	total := equityValue + debtValue
	if equityValue < 0 || debtValue < 0 || total <= 0 {
		return 0, fmt.Errorf("capital weights must be non-negative with a positive total: %w", simulation.ErrInvalidParameter)
	}
	if taxRate < 0 || taxRate >= 1 {
		return 0, fmt.Errorf("tax rate must be in [0, 1), got %v: %w", taxRate, simulation.ErrInvalidParameter)
	}
	return equityValue/total*costOfEquity + debtValue/total*costOfDebt*(1-taxRate), nil
}

// PaybackPeriod returns the number of periods, fractional within the
// recovering period, until cumulative cash flow first reaches zero.
// cashflows[0] must be the negative initial outlay.
func PaybackPeriod(cashflows []float64) (float64, error) {
	if len(cashflows) < 2 {
		return 0, fmt.Errorf("payback needs at least two cash flows, got %d: %w", len(cashflows), simulation.ErrInvalidParameter)
	}
	if cashflows[0] >= 0 {
		return 0, fmt.Errorf("payback expects a negative initial outlay, got %v: %w", cashflows[0], simulation.ErrInvalidParameter)
	}

	cumulative := cashflows[0]
	for t := 1; t < len(cashflows); t++ {
		previous := cumulative
		cumulative += cashflows[t]
		if cumulative >= 0 {
			if cashflows[t] == 0 {
				return float64(t), nil
			}
			return float64(t-1) + -previous/cashflows[t], nil
		}
	}
	return 0, fmt.Errorf("cumulative flow still %v after %d periods: %w", cumulative, len(cashflows)-1, ErrNoPayback)
}

// AnnualizeMonthlyRate compounds a monthly rate to its annual equivalent.
func AnnualizeMonthlyRate(monthly float64) float64 {
	return math.Pow(1+monthly, 12) - 1
}

// MonthlyRate de-compounds an annual rate to its monthly equivalent.
func MonthlyRate(annual float64) float64 {
	return math.Pow(1+annual, 1.0/12) - 1
}
