package factory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/mortgage-engine/factory"
	"github.com/warp/mortgage-engine/mortgage"
)

func TestParseScenario_AllKinds(t *testing.T) {
	jsonStr := `{
		"id": "mixed",
		"name": "Mixed plan",
		"active": true,
		"patterns": [
			{"kind": "one_time", "amount": 10000, "date": "2027-06-01"},
			{"kind": "monthly", "amount": 200, "start_date": "2027-01-01",
			 "day_of_month_strategy": "specific_day", "specific_day_of_month": 15},
			{"kind": "yearly", "amount": 1000, "month": 6, "day": 15, "first_year": 2027},
			{"kind": "biweekly", "amount": 50, "anchor_date": "2027-01-08", "until_date": "2030-01-01"}
		]
	}`

	f := factory.NewScenarioFactory()
	cfg, err := f.ParseScenario(jsonStr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ID != "mixed" || !cfg.Active {
		t.Errorf("header fields wrong: %+v", cfg)
	}
	if len(cfg.Patterns) != 4 {
		t.Fatalf("expected 4 patterns, got %d", len(cfg.Patterns))
	}

	if _, ok := cfg.Patterns[0].(mortgage.OneTimeExtra); !ok {
		t.Errorf("pattern 0: expected OneTimeExtra, got %T", cfg.Patterns[0])
	}
	monthly, ok := cfg.Patterns[1].(mortgage.MonthlyExtra)
	if !ok {
		t.Fatalf("pattern 1: expected MonthlyExtra, got %T", cfg.Patterns[1])
	}
	if monthly.Strategy != mortgage.DaySpecific || monthly.SpecificDay != 15 {
		t.Errorf("monthly strategy wrong: %+v", monthly)
	}
	if _, ok := cfg.Patterns[2].(mortgage.YearlyExtra); !ok {
		t.Errorf("pattern 2: expected YearlyExtra, got %T", cfg.Patterns[2])
	}
	biweekly, ok := cfg.Patterns[3].(mortgage.BiweeklyExtra)
	if !ok {
		t.Fatalf("pattern 3: expected BiweeklyExtra, got %T", cfg.Patterns[3])
	}
	if biweekly.UntilDate == nil || biweekly.UntilDate.String() != "2030-01-01" {
		t.Errorf("biweekly until_date wrong: %+v", biweekly)
	}
}

func TestParseScenario_DefaultsMonthlyStrategy(t *testing.T) {
	// An omitted strategy means "pay on the due date".
	jsonStr := `{"id": "s", "name": "s", "active": true, "patterns": [
		{"kind": "monthly", "amount": 200, "start_date": "2027-01-01"}
	]}`

	cfg, err := factory.NewScenarioFactory().ParseScenario(jsonStr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	monthly := cfg.Patterns[0].(mortgage.MonthlyExtra)
	if monthly.Strategy != mortgage.DaySameAsDueDate {
		t.Errorf("expected default same_as_due_date, got %q", monthly.Strategy)
	}
}

func TestParseScenario_UnknownKindRejected(t *testing.T) {
	jsonStr := `{"id": "s", "name": "s", "active": true, "patterns": [
		{"kind": "weekly", "amount": 200}
	]}`

	_, err := factory.NewScenarioFactory().ParseScenario(jsonStr)
	if !errors.Is(err, mortgage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown kind, got %v", err)
	}
}

func TestParseScenario_InvalidDatesRejected(t *testing.T) {
	cases := []string{
		`{"id":"s","name":"s","active":true,"patterns":[{"kind":"one_time","amount":1,"date":"06/01/2027"}]}`,
		`{"id":"s","name":"s","active":true,"patterns":[{"kind":"monthly","amount":1,"start_date":""}]}`,
		`{"id":"s","name":"s","active":true,"patterns":[{"kind":"biweekly","amount":1,"anchor_date":"nope"}]}`,
		`{"id":"s","name":"s","active":true,"patterns":[{"kind":"yearly","amount":1,"month":13,"day":1,"first_year":2027}]}`,
	}

	for i, jsonStr := range cases {
		_, err := factory.NewScenarioFactory().ParseScenario(jsonStr)
		if !errors.Is(err, mortgage.ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestScenarioRoundTrip(t *testing.T) {
	until := mortgage.MustDate("2030-01-01")
	cfg := &mortgage.ScenarioConfig{
		ID:     "rt",
		Name:   "round trip",
		Active: true,
		Patterns: []mortgage.ScenarioPattern{
			mortgage.OneTimeExtra{Amount: decimal.NewFromInt(10000), Date: mortgage.MustDate("2027-06-01")},
			mortgage.MonthlyExtra{Amount: decimal.NewFromInt(200), StartDate: mortgage.MustDate("2027-01-01"), Strategy: mortgage.DaySpecific, SpecificDay: 15},
			mortgage.YearlyExtra{Amount: decimal.NewFromInt(1000), Month: 6, Day: 15, FirstYear: 2027, LastYear: 2030},
			mortgage.BiweeklyExtra{Amount: decimal.NewFromInt(50), AnchorDate: mortgage.MustDate("2027-01-08"), UntilDate: &until},
		},
	}

	f := factory.NewScenarioFactory()
	sj, err := f.ToJSON(cfg)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	back, err := f.FromJSON(sj)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	if len(back.Patterns) != len(cfg.Patterns) {
		t.Fatalf("pattern count changed: %d vs %d", len(back.Patterns), len(cfg.Patterns))
	}
	monthly := back.Patterns[1].(mortgage.MonthlyExtra)
	if monthly.Strategy != mortgage.DaySpecific || monthly.SpecificDay != 15 {
		t.Errorf("monthly pattern did not survive the round trip: %+v", monthly)
	}
	biweekly := back.Patterns[3].(mortgage.BiweeklyExtra)
	if biweekly.UntilDate == nil || !biweekly.UntilDate.Equal(until) {
		t.Errorf("biweekly until_date did not survive the round trip: %+v", biweekly)
	}
}
