/*
errors.go - Centralized error types for the mortgage engine

PURPOSE:
  All engine error kinds in one place. Callers branch with errors.Is; the
  structured types carry the offending date or step budget for diagnostics.

ERROR CATEGORIES:
  1. Invalid input   - caller bugs (non-positive principal/term, empty schedule)
  2. Negative amortization - payment cannot cover accruing interest
  3. Convergence failure   - forward simulation exhausted its step budget

Every failure aborts the whole computation for that call; the engine never
returns a partially-filled schedule. The effective-rate solver's
no-sign-change case is deliberately NOT an error (see rate.go).
*/
package mortgage

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is returned for inputs that indicate a caller bug:
	// non-positive principal, non-positive term, negative rate, unparseable
	// dates, or an empty schedule handed to the rate solver.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNegativeAmortization is returned when the contractual payment is
	// insufficient to cover interest accruing on the remaining balance. The
	// engine refuses to produce an ever-growing schedule.
	ErrNegativeAmortization = errors.New("payment does not cover accruing interest")

	// ErrConvergenceFailure is returned when the forward simulation exhausts
	// its step budget without reaching payoff.
	ErrConvergenceFailure = errors.New("simulation did not reach payoff within step budget")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NegativeAmortizationError reports the period at which interest first
// exceeded the payment.
type NegativeAmortizationError struct {
	Date      Date
	Payment   decimal.Decimal
	Interest  decimal.Decimal
	Remaining decimal.Decimal
}

func (e *NegativeAmortizationError) Error() string {
	return fmt.Sprintf("negative amortization at %s: payment %s < interest %s (remaining %s)",
		e.Date, e.Payment, e.Interest, e.Remaining)
}

func (e *NegativeAmortizationError) Unwrap() error { return ErrNegativeAmortization }

// ConvergenceError reports an exhausted simulation step budget.
type ConvergenceError struct {
	Steps     int
	Remaining decimal.Decimal
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("no payoff after %d simulated months (remaining %s)", e.Steps, e.Remaining)
}

func (e *ConvergenceError) Unwrap() error { return ErrConvergenceFailure }

// IsClientError returns true if the error is due to invalid caller input
// rather than a pathological configuration.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
