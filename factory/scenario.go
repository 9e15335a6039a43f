/*
Package factory provides JSON to Go scenario conversion.

PURPOSE:
  Converts JSON scenario definitions into mortgage.ScenarioConfig values.
  Scenario configs are stored and transported as JSON (database rows, API
  bodies); the factory is the single place that knows the schema.

JSON SCHEMA:
  {
    "id": "pay-200-monthly",
    "name": "Extra 200/month",
    "active": true,
    "patterns": [
      {"kind": "monthly", "amount": 200, "start_date": "2027-01-01",
       "day_of_month_strategy": "same_as_due_date"},
      {"kind": "one_time", "amount": 10000, "date": "2027-06-01"},
      {"kind": "yearly", "amount": 1000, "month": 6, "day": 15,
       "first_year": 2027, "last_year": 2030},
      {"kind": "biweekly", "amount": 50, "anchor_date": "2027-01-08",
       "until_date": "2030-01-01"}
    ]
  }

  Patterns are discriminated by "kind". Unknown kinds are rejected so a
  schema typo cannot silently drop a payment plan.

SEE ALSO:
  - mortgage/types.go: the pattern sum type this package targets
  - store/sqlite: persists ScenarioJSON payloads
  - api: accepts ScenarioJSON in request bodies
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/mortgage-engine/mortgage"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ScenarioJSON is the JSON representation of a scenario configuration.
type ScenarioJSON struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Active   bool          `json:"active"`
	Patterns []PatternJSON `json:"patterns"`
}

// PatternJSON is the JSON representation of one extra-payment pattern.
// Only the fields relevant to its kind are populated.
type PatternJSON struct {
	Kind   string  `json:"kind"` // one_time, monthly, yearly, biweekly
	Amount float64 `json:"amount"`

	// one_time
	Date string `json:"date,omitempty"`

	// monthly / biweekly
	StartDate string `json:"start_date,omitempty"`
	UntilDate string `json:"until_date,omitempty"`

	// monthly
	DayOfMonthStrategy string `json:"day_of_month_strategy,omitempty"` // same_as_due_date, specific_day
	SpecificDayOfMonth int    `json:"specific_day_of_month,omitempty"`

	// yearly
	Month     int `json:"month,omitempty"` // 1-12
	Day       int `json:"day,omitempty"`   // 1-31
	FirstYear int `json:"first_year,omitempty"`
	LastYear  int `json:"last_year,omitempty"`

	// biweekly
	AnchorDate string `json:"anchor_date,omitempty"`
}

const (
	kindOneTime  = "one_time"
	kindMonthly  = "monthly"
	kindYearly   = "yearly"
	kindBiweekly = "biweekly"
)

// =============================================================================
// SCENARIO FACTORY
// =============================================================================

// ScenarioFactory converts JSON scenarios to engine configs and back.
type ScenarioFactory struct{}

func NewScenarioFactory() *ScenarioFactory {
	return &ScenarioFactory{}
}

// ParseScenario parses a JSON string into a ScenarioConfig.
func (f *ScenarioFactory) ParseScenario(jsonStr string) (*mortgage.ScenarioConfig, error) {
	var sj ScenarioJSON
	if err := json.Unmarshal([]byte(jsonStr), &sj); err != nil {
		return nil, fmt.Errorf("failed to parse scenario JSON: %w", err)
	}
	return f.FromJSON(sj)
}

// FromJSON converts a ScenarioJSON into a ScenarioConfig.
func (f *ScenarioFactory) FromJSON(sj ScenarioJSON) (*mortgage.ScenarioConfig, error) {
	cfg := &mortgage.ScenarioConfig{
		ID:     sj.ID,
		Name:   sj.Name,
		Active: sj.Active,
	}
	for i, pj := range sj.Patterns {
		pattern, err := PatternFromJSON(pj)
		if err != nil {
			return nil, fmt.Errorf("scenario %q pattern %d: %w", sj.ID, i, err)
		}
		cfg.Patterns = append(cfg.Patterns, pattern)
	}
	return cfg, nil
}

// PatternFromJSON converts one PatternJSON into the engine's sum type.
func PatternFromJSON(pj PatternJSON) (mortgage.ScenarioPattern, error) {
	amount := decimal.NewFromFloat(pj.Amount)

	switch pj.Kind {
	case kindOneTime:
		date, err := mortgage.ParseDate(pj.Date)
		if err != nil {
			return nil, fmt.Errorf("one_time date: %w", err)
		}
		return mortgage.OneTimeExtra{Amount: amount, Date: date}, nil

	case kindMonthly:
		start, err := mortgage.ParseDate(pj.StartDate)
		if err != nil {
			return nil, fmt.Errorf("monthly start_date: %w", err)
		}
		until, err := optionalDate(pj.UntilDate)
		if err != nil {
			return nil, fmt.Errorf("monthly until_date: %w", err)
		}
		strategy, err := dayStrategy(pj.DayOfMonthStrategy)
		if err != nil {
			return nil, err
		}
		return mortgage.MonthlyExtra{
			Amount:      amount,
			StartDate:   start,
			UntilDate:   until,
			Strategy:    strategy,
			SpecificDay: pj.SpecificDayOfMonth,
		}, nil

	case kindYearly:
		if pj.Month < 1 || pj.Month > 12 {
			return nil, fmt.Errorf("%w: yearly month must be 1-12, got %d", mortgage.ErrInvalidInput, pj.Month)
		}
		if pj.Day < 1 || pj.Day > 31 {
			return nil, fmt.Errorf("%w: yearly day must be 1-31, got %d", mortgage.ErrInvalidInput, pj.Day)
		}
		return mortgage.YearlyExtra{
			Amount:    amount,
			Month:     pj.Month,
			Day:       pj.Day,
			FirstYear: pj.FirstYear,
			LastYear:  pj.LastYear,
		}, nil

	case kindBiweekly:
		anchor, err := mortgage.ParseDate(pj.AnchorDate)
		if err != nil {
			return nil, fmt.Errorf("biweekly anchor_date: %w", err)
		}
		start, err := optionalDate(pj.StartDate)
		if err != nil {
			return nil, fmt.Errorf("biweekly start_date: %w", err)
		}
		until, err := optionalDate(pj.UntilDate)
		if err != nil {
			return nil, fmt.Errorf("biweekly until_date: %w", err)
		}
		return mortgage.BiweeklyExtra{
			Amount:     amount,
			AnchorDate: anchor,
			StartDate:  start,
			UntilDate:  until,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown pattern kind %q", mortgage.ErrInvalidInput, pj.Kind)
	}
}

// PatternToJSON converts an engine pattern back to its JSON form.
func PatternToJSON(pattern mortgage.ScenarioPattern) (PatternJSON, error) {
	switch p := pattern.(type) {
	case mortgage.OneTimeExtra:
		return PatternJSON{
			Kind:   kindOneTime,
			Amount: p.Amount.InexactFloat64(),
			Date:   p.Date.String(),
		}, nil

	case mortgage.MonthlyExtra:
		return PatternJSON{
			Kind:               kindMonthly,
			Amount:             p.Amount.InexactFloat64(),
			StartDate:          p.StartDate.String(),
			UntilDate:          dateString(p.UntilDate),
			DayOfMonthStrategy: string(p.Strategy),
			SpecificDayOfMonth: p.SpecificDay,
		}, nil

	case mortgage.YearlyExtra:
		return PatternJSON{
			Kind:      kindYearly,
			Amount:    p.Amount.InexactFloat64(),
			Month:     p.Month,
			Day:       p.Day,
			FirstYear: p.FirstYear,
			LastYear:  p.LastYear,
		}, nil

	case mortgage.BiweeklyExtra:
		return PatternJSON{
			Kind:       kindBiweekly,
			Amount:     p.Amount.InexactFloat64(),
			AnchorDate: p.AnchorDate.String(),
			StartDate:  dateString(p.StartDate),
			UntilDate:  dateString(p.UntilDate),
		}, nil

	default:
		return PatternJSON{}, fmt.Errorf("%w: unsupported pattern type %T", mortgage.ErrInvalidInput, pattern)
	}
}

// ToJSON converts a ScenarioConfig back to its JSON form.
func (f *ScenarioFactory) ToJSON(cfg *mortgage.ScenarioConfig) (ScenarioJSON, error) {
	sj := ScenarioJSON{
		ID:     cfg.ID,
		Name:   cfg.Name,
		Active: cfg.Active,
	}
	for _, pattern := range cfg.Patterns {
		pj, err := PatternToJSON(pattern)
		if err != nil {
			return ScenarioJSON{}, err
		}
		sj.Patterns = append(sj.Patterns, pj)
	}
	return sj, nil
}

func optionalDate(s string) (*mortgage.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := mortgage.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func dateString(d *mortgage.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func dayStrategy(s string) (mortgage.DayOfMonthStrategy, error) {
	switch s {
	case "", string(mortgage.DaySameAsDueDate):
		return mortgage.DaySameAsDueDate, nil
	case string(mortgage.DaySpecific):
		return mortgage.DaySpecific, nil
	default:
		return "", fmt.Errorf("%w: unknown day_of_month_strategy %q", mortgage.ErrInvalidInput, s)
	}
}
