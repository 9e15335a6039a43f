/*
patterns.go - Scenario pattern expansion

PURPOSE:
  Converts declarative extra-payment patterns into a concrete date->amount
  map. Multiple patterns landing on the same date sum. A candidate date is
  discarded if it is at/before the as-of cutoff or strictly after the
  baseline payoff, so the map only ever contains strictly-future, in-term
  dates. Non-positive amounts are no-ops by construction.

EXPANSION RULES:
  one-time:  single candidate at the pattern date.
  monthly:   walks the baseline schedule's due dates after
             max(startDate, asOf); targets either the due date itself or a
             clamped specific day in the same month.
  yearly:    one candidate per year at clampDay(year, month, day).
  biweekly:  fixed 14-day steps from the anchor date; the anchor fixes the
             cadence's phase, not the start of payments.
*/
package mortgage

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ExtraByDate accumulates extra-principal amounts per calendar date.
type ExtraByDate map[Date]decimal.Decimal

// add accumulates a candidate, enforcing the global guards: positive amount,
// strictly after the cutoff, at/before payoff.
func (m ExtraByDate) add(date Date, amount decimal.Decimal, asOf, payoff Date) {
	if amount.Sign() <= 0 {
		return
	}
	if !date.After(asOf) || date.After(payoff) {
		return
	}
	m[date] = m[date].Add(amount)
}

// BuildExtraByDate expands a scenario's patterns against the baseline
// schedule into concrete per-date extra-principal injections.
func BuildExtraByDate(baseline *AmortizationResult, ctx ScenarioContext, patterns []ScenarioPattern) ExtraByDate {
	extras := make(ExtraByDate)
	asOf := ctx.AsOfDate
	payoff := baseline.PayoffDate

	for _, pattern := range patterns {
		switch p := pattern.(type) {
		case OneTimeExtra:
			extras.add(p.Date, p.Amount, asOf, payoff)

		case MonthlyExtra:
			expandMonthly(extras, baseline, ctx, p)

		case YearlyExtra:
			expandYearly(extras, ctx, p, payoff)

		case BiweeklyExtra:
			expandBiweekly(extras, ctx, p, payoff)
		}
	}
	return extras
}

func expandMonthly(extras ExtraByDate, baseline *AmortizationResult, ctx ScenarioContext, p MonthlyExtra) {
	lower := p.StartDate
	if ctx.AsOfDate.After(lower) {
		lower = ctx.AsOfDate
	}

	day := p.SpecificDay
	if day == 0 {
		day = ctx.Terms.StartDate.Day()
	}

	for _, entry := range baseline.Schedule {
		if !entry.Date.After(lower) {
			continue
		}
		target := entry.Date
		if p.Strategy == DaySpecific {
			target = ClampDay(entry.Date.Year(), entry.Date.Month(), day)
		}
		if p.UntilDate != nil && target.After(*p.UntilDate) {
			continue
		}
		extras.add(target, p.Amount, ctx.AsOfDate, baseline.PayoffDate)
	}
}

func expandYearly(extras ExtraByDate, ctx ScenarioContext, p YearlyExtra, payoff Date) {
	first := p.FirstYear
	if y := ctx.AsOfDate.Year(); y > first {
		first = y
	}
	last := p.LastYear
	if last == 0 {
		last = payoff.Year() + 1
	}
	for year := first; year <= last; year++ {
		extras.add(ClampDay(year, time.Month(p.Month), p.Day), p.Amount, ctx.AsOfDate, payoff)
	}
}

func expandBiweekly(extras ExtraByDate, ctx ScenarioContext, p BiweeklyExtra, payoff Date) {
	upper := payoff
	if p.UntilDate != nil && p.UntilDate.Before(upper) {
		upper = *p.UntilDate
	}
	for d := p.AnchorDate; !d.After(upper); d = d.AddDays(14) {
		if p.StartDate != nil && d.Before(*p.StartDate) {
			continue
		}
		extras.add(d, p.Amount, ctx.AsOfDate, payoff)
	}
}

// flatten orders the map for cursor consumption by the forward simulator.
func (m ExtraByDate) flatten() []datedAmount {
	out := make([]datedAmount, 0, len(m))
	for date, amount := range m {
		out = append(out, datedAmount{date: date, amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].date.Before(out[j].date) })
	return out
}
