/*
Package mortgage implements the core amortization and scenario engine.

PURPOSE:
  Computes mortgage amortization schedules under three regimes: the pure
  contractual baseline, an "actual" path enriched with historical
  extra-principal payments, and forward-looking what-if scenarios that layer
  recurring or ad-hoc future extra payments onto an as-of point in the
  loan's life.

KEY CONCEPTS IN THIS FILE (types.go):
  - LoanTerms: immutable contractual inputs
  - AmortizationEntry / AmortizationResult: one schedule row / a full table
  - PastPrepayment: a dated historical extra-principal fact
  - ScenarioPattern: sum type describing future extra-payment cadences
  - ScenarioConfig / ScenarioContext / ScenarioRunResult: what-if plumbing

DESIGN PRINCIPLES:
  1. Purity: every function is a computation over its arguments; the engine
     never mutates inputs and retains no state between calls.
  2. Precision: monetary values are decimal.Decimal; rates are unitless
     float64 fractions (0.05 = 5% annual).
  3. Closed pattern set: ScenarioPattern is a sealed interface so the
     expander's type switch is the single exhaustive dispatch point.

SEE ALSO:
  - amortize.go: baseline and history amortizers
  - patterns.go: pattern expansion
  - scenario.go: the three-phase scenario runner
  - rate.go: effective-rate bisection solver
*/
package mortgage

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// LOAN TERMS - Contractual inputs
// =============================================================================

// LoanTerms defines a fixed-rate loan. AnnualRate is a decimal fraction
// (0.05 = 5%), divided by 12 for the monthly periodic rate.
type LoanTerms struct {
	Principal  decimal.Decimal
	AnnualRate float64
	TermMonths int
	StartDate  Date
}

// DueDate returns the date payment number n (1-based) falls due. Due dates
// are always a single month-offset from the start date so end-of-month
// clamping never drifts across the schedule.
func (t LoanTerms) DueDate(n int) Date {
	return t.StartDate.AddMonths(n)
}

// =============================================================================
// AMORTIZATION SCHEDULE
// =============================================================================

// AmortizationEntry is one payment period. Payment records the real cash out
// for the period (interest + all principal applied, extras included), so
// interest + principal == payment except in a capped final period, where
// surplus extra absorbed by the cap is excluded from Principal.
type AmortizationEntry struct {
	Date      Date
	Payment   decimal.Decimal
	Interest  decimal.Decimal
	Principal decimal.Decimal
	Remaining decimal.Decimal
}

// AmortizationResult is a complete schedule with its aggregates.
type AmortizationResult struct {
	Schedule      []AmortizationEntry
	TotalInterest decimal.Decimal
	PayoffDate    Date
}

// Months returns the number of payment periods in the schedule.
func (r *AmortizationResult) Months() int { return len(r.Schedule) }

// =============================================================================
// HISTORICAL PREPAYMENTS
// =============================================================================

// PastPrepayment records extra principal the borrower has already paid.
// The log may arrive unordered; the engine sorts by date internally.
// Non-positive amounts are treated as no-ops.
type PastPrepayment struct {
	Date   Date
	Amount decimal.Decimal
	Note   string
}

// PrepaymentComparison pairs the contractual baseline with the replayed
// actual path.
type PrepaymentComparison struct {
	Baseline      *AmortizationResult
	Actual        *AmortizationResult
	InterestSaved decimal.Decimal
	MonthsSaved   int
}

// =============================================================================
// SCENARIO PATTERNS - Sum type over future extra-payment cadences
// =============================================================================

// DayOfMonthStrategy selects which day of the month a monthly pattern lands on.
type DayOfMonthStrategy string

const (
	// DaySameAsDueDate targets the loan's contractual due date each month.
	DaySameAsDueDate DayOfMonthStrategy = "same_as_due_date"
	// DaySpecific targets a caller-chosen day, clamped to month length.
	DaySpecific DayOfMonthStrategy = "specific_day"
)

// ScenarioPattern is a declarative description of a future extra payment
// cadence. It is pure data with no behavior; patterns.go expands it. The
// interface is sealed so the expander's type switch stays exhaustive.
type ScenarioPattern interface {
	isScenarioPattern()
}

// OneTimeExtra pays a single extra amount on a specific date.
type OneTimeExtra struct {
	Amount decimal.Decimal
	Date   Date
}

// MonthlyExtra pays an extra amount each payment month from StartDate until
// UntilDate (or payoff). SpecificDay is only consulted when Strategy is
// DaySpecific; zero means "use the loan's contractual due day".
type MonthlyExtra struct {
	Amount      decimal.Decimal
	StartDate   Date
	UntilDate   *Date
	Strategy    DayOfMonthStrategy
	SpecificDay int
}

// YearlyExtra pays an extra amount once a year on (Month, Day), clamped to
// month length, from FirstYear through LastYear (zero = until payoff).
type YearlyExtra struct {
	Amount    decimal.Decimal
	Month     int // 1-12
	Day       int // 1-31
	FirstYear int
	LastYear  int
}

// BiweeklyExtra pays an extra amount every 14 days. AnchorDate fixes the
// cadence's phase; StartDate/UntilDate optionally narrow the active window.
type BiweeklyExtra struct {
	Amount     decimal.Decimal
	AnchorDate Date
	StartDate  *Date
	UntilDate  *Date
}

func (OneTimeExtra) isScenarioPattern()  {}
func (MonthlyExtra) isScenarioPattern()  {}
func (YearlyExtra) isScenarioPattern()   {}
func (BiweeklyExtra) isScenarioPattern() {}

// =============================================================================
// SCENARIO CONFIGURATION AND RESULTS
// =============================================================================

// ScenarioConfig is a named, toggleable bundle of patterns. Inactive
// scenarios are excluded from evaluation entirely.
type ScenarioConfig struct {
	ID       string
	Name     string
	Active   bool
	Patterns []ScenarioPattern
}

// ScenarioContext is the shared input for a scenario run: the loan, its
// historical prepayments, and the pivot date separating past from future.
type ScenarioContext struct {
	Terms           LoanTerms
	PastPrepayments []PastPrepayment
	AsOfDate        Date
}

// ScenarioOutcome is one evaluated scenario with its comparative savings.
type ScenarioOutcome struct {
	ID                      string
	Name                    string
	Schedule                []AmortizationEntry
	TotalInterest           decimal.Decimal
	PayoffDate              Date
	EffectiveAnnualRate     float64
	RateConverged           bool
	InterestSavedVsBaseline decimal.Decimal
	MonthsSavedVsBaseline   int
	InterestSavedVsActual   decimal.Decimal
	MonthsSavedVsActual     int
}

// ScenarioRunResult carries the ground-truth tables, the sliced as-of state,
// and every active scenario's outcome. Scenarios are independent: one
// scenario's extras never affect another's simulation.
type ScenarioRunResult struct {
	Baseline *AmortizationResult
	// Actual is the past prefix concatenated with a no-future-extras
	// resimulation; it is the comparison path for "vs actual" metrics.
	Actual *AmortizationResult

	RemainingAtAsOf decimal.Decimal
	EffectiveAsOf   Date
	InterestToDate  decimal.Decimal
	MonthsElapsed   int

	Scenarios []ScenarioOutcome
}
