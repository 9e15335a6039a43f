/*
amortize.go - Baseline and history amortizers

PURPOSE:
  Computes the fixed contractual payment and full amortization tables, with
  or without dated historical extra-principal payments replayed into the
  schedule.

PAYMENT FORMULA:
  Standard annuity: P * r * (1+r)^n / ((1+r)^n - 1), where r is the monthly
  periodic rate. A zero rate degenerates to principal / termMonths.

CAP RULE:
  When contractual principal plus extra would overshoot the remaining
  balance, total principal is capped at the balance and extra is applied
  first against the cap: the recorded Principal field is
  max(0, capped - extra). Payment always records real cash for the period.

SEE ALSO:
  - scenario.go: the forward simulator reuses the same period arithmetic
  - types.go: entry/result shapes and invariants
*/
package mortgage

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// epsilon is the payoff threshold for contractual schedules.
var epsilon = decimal.New(1, -6) // 1e-6

// MonthlyPayment computes the fixed contractual payment for the given terms.
func MonthlyPayment(terms LoanTerms) (decimal.Decimal, error) {
	if terms.Principal.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidInput, terms.Principal)
	}
	if terms.TermMonths <= 0 {
		return decimal.Zero, fmt.Errorf("%w: term must be positive, got %d months", ErrInvalidInput, terms.TermMonths)
	}
	if terms.AnnualRate < 0 {
		return decimal.Zero, fmt.Errorf("%w: annual rate must be non-negative, got %g", ErrInvalidInput, terms.AnnualRate)
	}

	r := terms.AnnualRate / 12
	if r == 0 {
		return terms.Principal.Div(decimal.NewFromInt(int64(terms.TermMonths))), nil
	}

	pow := math.Pow(1+r, float64(terms.TermMonths))
	factor := r * pow / (pow - 1)
	return terms.Principal.Mul(decimal.NewFromFloat(factor)), nil
}

// Baseline computes the no-prepayment contractual amortization table.
func Baseline(terms LoanTerms) (*AmortizationResult, error) {
	return amortize(terms, nil)
}

// WithPrepayments replays the amortization with dated historical
// extra-principal payments injected at their payment periods.
func WithPrepayments(terms LoanTerms, prepayments []PastPrepayment) (*AmortizationResult, error) {
	return amortize(terms, prepayments)
}

// CompareWithPrepayments computes both tables and their savings deltas.
func CompareWithPrepayments(terms LoanTerms, prepayments []PastPrepayment) (*PrepaymentComparison, error) {
	baseline, err := Baseline(terms)
	if err != nil {
		return nil, err
	}
	actual, err := WithPrepayments(terms, prepayments)
	if err != nil {
		return nil, err
	}
	return &PrepaymentComparison{
		Baseline:      baseline,
		Actual:        actual,
		InterestSaved: baseline.TotalInterest.Sub(actual.TotalInterest),
		MonthsSaved:   baseline.Months() - actual.Months(),
	}, nil
}

// datedAmount is a prepayment flattened for cursor consumption.
type datedAmount struct {
	date   Date
	amount decimal.Decimal
}

// sortedPrepayments filters no-ops and orders the log by date. Each
// prepayment is consumed exactly once by the amortization cursor.
func sortedPrepayments(prepayments []PastPrepayment) []datedAmount {
	out := make([]datedAmount, 0, len(prepayments))
	for _, p := range prepayments {
		if p.Amount.Sign() <= 0 {
			continue
		}
		out = append(out, datedAmount{date: p.Date, amount: p.Amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].date.Before(out[j].date) })
	return out
}

// amortize iterates payment periods 1..TermMonths, accruing interest on the
// remaining balance, applying payment minus interest as principal, and
// stopping early once the balance is within epsilon of zero.
func amortize(terms LoanTerms, prepayments []PastPrepayment) (*AmortizationResult, error) {
	payment, err := MonthlyPayment(terms)
	if err != nil {
		return nil, err
	}

	rate := decimal.NewFromFloat(terms.AnnualRate / 12)
	extras := sortedPrepayments(prepayments)
	cursor := 0

	remaining := terms.Principal
	totalInterest := decimal.Zero
	schedule := make([]AmortizationEntry, 0, terms.TermMonths)

	for n := 1; n <= terms.TermMonths; n++ {
		if remaining.LessThanOrEqual(epsilon) {
			break
		}

		due := terms.DueDate(n)
		interest := remaining.Mul(rate)
		contractual := payment.Sub(interest)
		if contractual.Sign() < 0 {
			return nil, &NegativeAmortizationError{
				Date:      due,
				Payment:   payment,
				Interest:  interest,
				Remaining: remaining,
			}
		}

		extra := decimal.Zero
		for cursor < len(extras) && extras[cursor].date.BeforeOrEqual(due) {
			extra = extra.Add(extras[cursor].amount)
			cursor++
		}

		entry := settlePeriod(due, interest, contractual, extra, remaining)
		remaining = entry.Remaining
		totalInterest = totalInterest.Add(interest)
		schedule = append(schedule, entry)
	}

	result := &AmortizationResult{
		Schedule:      schedule,
		TotalInterest: totalInterest,
	}
	if len(schedule) > 0 {
		result.PayoffDate = schedule[len(schedule)-1].Date
	} else {
		result.PayoffDate = terms.StartDate
	}
	return result, nil
}

// settlePeriod applies one period's principal reduction with the cap rule
// and returns the recorded entry.
func settlePeriod(due Date, interest, contractual, extra, remaining decimal.Decimal) AmortizationEntry {
	total := contractual.Add(extra)
	recorded := total
	if total.GreaterThanOrEqual(remaining) {
		total = remaining
		recorded = decimal.Max(decimal.Zero, total.Sub(extra))
	}
	return AmortizationEntry{
		Date:      due,
		Payment:   interest.Add(total),
		Interest:  interest,
		Principal: recorded,
		Remaining: remaining.Sub(total),
	}
}
