/*
scenario.go - What-if scenario runner

PURPOSE:
  Orchestrates the full what-if evaluation in three phases:

  Phase 1 - Ground truth: compute the contractual baseline and the actual
  table (with historical prepayments), then slice the actual table at the
  as-of date to find the loan's true state: remaining balance, accrued
  interest, elapsed months.

  Phase 2 - Reference path: re-simulate forward from the as-of state with no
  future extras. Concatenated with the past prefix, this is the comparison
  path for each scenario's "vs actual" metrics.

  Phase 3 - Per-scenario simulation: expand each active scenario's patterns
  into per-date extras, run the same forward simulation, and compute
  interest/months saved versus both the baseline and the reference path.

INDEPENDENCE:
  Scenarios never see each other's extras. The whole run is a pure
  computation over its arguments; nothing is cached or mutated.

SAFETY:
  The forward simulation caps at TermMonths + 600 steps. Exhausting the cap
  without payoff is a fatal convergence error, guarding against pathological
  inputs such as a near-zero or negative amortizing payment.
*/
package mortgage

import (
	"github.com/shopspring/decimal"
)

// forwardStopThreshold ends the forward simulation once the balance is
// effectively paid off.
var forwardStopThreshold = decimal.NewFromFloat(0.01)

// extraStepBudget bounds the forward simulation beyond the contractual term.
const extraStepBudget = 600

// asOfState is the loan's true state at the effective as-of date.
type asOfState struct {
	prefix        []AmortizationEntry
	remaining     decimal.Decimal
	effectiveAsOf Date
	interestSoFar decimal.Decimal
	monthsElapsed int
}

// RunScenarios evaluates every active scenario configuration against the
// loan's as-of state and returns comparative savings metrics.
func RunScenarios(ctx ScenarioContext, configs []ScenarioConfig) (*ScenarioRunResult, error) {
	// Phase 1: ground truth.
	baseline, err := Baseline(ctx.Terms)
	if err != nil {
		return nil, err
	}
	history, err := WithPrepayments(ctx.Terms, ctx.PastPrepayments)
	if err != nil {
		return nil, err
	}
	state := sliceAtAsOf(ctx, history)

	// Phase 2: continue-with-no-extras reference path.
	actual, err := continueFrom(ctx.Terms, state, nil)
	if err != nil {
		return nil, err
	}

	result := &ScenarioRunResult{
		Baseline:        baseline,
		Actual:          actual,
		RemainingAtAsOf: state.remaining,
		EffectiveAsOf:   state.effectiveAsOf,
		InterestToDate:  state.interestSoFar,
		MonthsElapsed:   state.monthsElapsed,
		Scenarios:       []ScenarioOutcome{},
	}

	// Phase 3: per-scenario simulation.
	for _, cfg := range configs {
		if !cfg.Active || len(cfg.Patterns) == 0 {
			continue
		}
		extras := BuildExtraByDate(baseline, ctx, cfg.Patterns)
		scenario, err := continueFrom(ctx.Terms, state, extras.flatten())
		if err != nil {
			return nil, err
		}

		rate, err := EffectiveAnnualRate(scenario.Schedule, ctx.Terms.Principal)
		if err != nil {
			return nil, err
		}

		result.Scenarios = append(result.Scenarios, ScenarioOutcome{
			ID:                      cfg.ID,
			Name:                    cfg.Name,
			Schedule:                scenario.Schedule,
			TotalInterest:           scenario.TotalInterest,
			PayoffDate:              scenario.PayoffDate,
			EffectiveAnnualRate:     rate.Annual,
			RateConverged:           rate.Converged,
			InterestSavedVsBaseline: baseline.TotalInterest.Sub(scenario.TotalInterest),
			MonthsSavedVsBaseline:   baseline.Months() - scenario.Months(),
			InterestSavedVsActual:   actual.TotalInterest.Sub(scenario.TotalInterest),
			MonthsSavedVsActual:     actual.Months() - scenario.Months(),
		})
	}

	return result, nil
}

// sliceAtAsOf splits the actual schedule at the as-of date. The prefix holds
// every entry dated at/before as-of. When the as-of date precedes the first
// payment the prefix is empty and the simulation anchors at the loan start
// with the full principal outstanding.
func sliceAtAsOf(ctx ScenarioContext, history *AmortizationResult) asOfState {
	cut := 0
	for cut < len(history.Schedule) && history.Schedule[cut].Date.BeforeOrEqual(ctx.AsOfDate) {
		cut++
	}

	if cut == 0 {
		return asOfState{
			prefix:        nil,
			remaining:     ctx.Terms.Principal,
			effectiveAsOf: ctx.Terms.StartDate,
			interestSoFar: decimal.Zero,
			monthsElapsed: 0,
		}
	}

	prefix := history.Schedule[:cut]
	interest := decimal.Zero
	for _, e := range prefix {
		interest = interest.Add(e.Interest)
	}
	return asOfState{
		prefix:        prefix,
		remaining:     prefix[cut-1].Remaining,
		effectiveAsOf: prefix[cut-1].Date,
		interestSoFar: interest,
		monthsElapsed: cut,
	}
}

// continueFrom re-simulates the remaining balance forward with the given
// extras and concatenates the result with the past prefix.
func continueFrom(terms LoanTerms, state asOfState, extras []datedAmount) (*AmortizationResult, error) {
	future, err := simulateForward(terms, state.remaining, state.monthsElapsed, extras)
	if err != nil {
		return nil, err
	}

	schedule := make([]AmortizationEntry, 0, len(state.prefix)+len(future))
	schedule = append(schedule, state.prefix...)
	schedule = append(schedule, future...)

	totalInterest := state.interestSoFar
	for _, e := range future {
		totalInterest = totalInterest.Add(e.Interest)
	}

	result := &AmortizationResult{
		Schedule:      schedule,
		TotalInterest: totalInterest,
	}
	if len(schedule) > 0 {
		result.PayoffDate = schedule[len(schedule)-1].Date
	} else {
		result.PayoffDate = state.effectiveAsOf
	}
	return result, nil
}

// simulateForward steps monthly from the period after monthsElapsed,
// accruing interest, applying the contractual payment plus any extras due,
// capping at the remaining balance, and stopping at payoff. Due dates are a
// single month-offset from the loan start so they line up exactly with the
// contractual schedule regardless of end-of-month clamping.
func simulateForward(terms LoanTerms, opening decimal.Decimal, monthsElapsed int, extras []datedAmount) ([]AmortizationEntry, error) {
	payment, err := MonthlyPayment(terms)
	if err != nil {
		return nil, err
	}

	rate := decimal.NewFromFloat(terms.AnnualRate / 12)
	maxSteps := terms.TermMonths + extraStepBudget
	cursor := 0

	remaining := opening
	var schedule []AmortizationEntry

	for step := 1; remaining.GreaterThan(forwardStopThreshold); step++ {
		if step > maxSteps {
			return nil, &ConvergenceError{Steps: maxSteps, Remaining: remaining}
		}

		due := terms.DueDate(monthsElapsed + step)
		interest := remaining.Mul(rate)
		contractual := payment.Sub(interest)

		extra := decimal.Zero
		for cursor < len(extras) && extras[cursor].date.BeforeOrEqual(due) {
			extra = extra.Add(extras[cursor].amount)
			cursor++
		}

		// A negative contractual component is not fatal here: extras may
		// still pay the loan down, and the step budget catches the case
		// where the balance genuinely diverges.
		entry := settlePeriod(due, interest, contractual, extra, remaining)
		remaining = entry.Remaining
		schedule = append(schedule, entry)
	}

	return schedule, nil
}
