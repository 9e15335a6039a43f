/*
rate.go - Effective annual rate solver

PURPOSE:
  Given an amortization table and the original principal, finds the monthly
  discount rate that zeroes the net present value of the cashflow stream
  (+principal at t=0, -payment_t thereafter), then annualizes it.

METHOD:
  Bisection over [0, 0.2] monthly, 60 iterations. If the bracket shows no
  sign change the search cannot locate a root; the solver then reports an
  annual rate of 0 with Converged=false instead of failing. Callers that
  need to distinguish a genuine 0% loan from a failed search check the flag.
*/
package mortgage

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	rateSearchLo   = 0.0
	rateSearchHi   = 0.2
	bisectionIters = 60
)

// RateSolution is the solver output. Annual is the effective annual rate
// ((1+r_monthly)^12 - 1); Converged reports whether the search bracket
// contained a root.
type RateSolution struct {
	Annual    float64
	Converged bool
}

// EffectiveAnnualRate solves for the internal rate of return implied by a
// schedule's payment stream against the original principal.
func EffectiveAnnualRate(schedule []AmortizationEntry, principal decimal.Decimal) (RateSolution, error) {
	if len(schedule) == 0 {
		return RateSolution{}, fmt.Errorf("%w: empty schedule", ErrInvalidInput)
	}
	if principal.Sign() <= 0 {
		return RateSolution{}, fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidInput, principal)
	}

	// Cashflow vector: loan disbursement at t=0, payments out thereafter.
	flows := make([]float64, len(schedule)+1)
	flows[0] = principal.InexactFloat64()
	for i, e := range schedule {
		flows[i+1] = -e.Payment.InexactFloat64()
	}

	npv := func(r float64) float64 {
		sum := 0.0
		for t, cf := range flows {
			sum += cf / math.Pow(1+r, float64(t))
		}
		return sum
	}

	lo, hi := rateSearchLo, rateSearchHi
	fLo := npv(lo)
	if fLo*npv(hi) > 0 {
		// Rate outside the search bracket; report the documented fallback.
		return RateSolution{Annual: 0, Converged: false}, nil
	}

	for i := 0; i < bisectionIters; i++ {
		mid := (lo + hi) / 2
		fMid := npv(mid)
		if fLo*fMid <= 0 {
			hi = mid
		} else {
			lo = mid
			fLo = fMid
		}
	}

	monthly := (lo + hi) / 2
	return RateSolution{
		Annual:    math.Pow(1+monthly, 12) - 1,
		Converged: true,
	}, nil
}
