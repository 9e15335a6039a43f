package mortgage_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/mortgage-engine/mortgage"
)

func TestEffectiveAnnualRate_MatchesNominalForStandardLoan(t *testing.T) {
	// GIVEN: The standard 5% fixture with no prepayments
	// WHEN: Solving the schedule's internal rate of return
	// THEN: The effective annual rate lands near the nominal rate

	baseline, err := mortgage.Baseline(standardTerms())
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}

	rate, err := mortgage.EffectiveAnnualRate(baseline.Schedule, money(300000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Converged {
		t.Fatal("expected the search to converge")
	}
	if rate.Annual <= 0.04 || rate.Annual >= 0.06 {
		t.Errorf("expected effective rate in (0.04, 0.06), got %g", rate.Annual)
	}
}

func TestEffectiveAnnualRate_EmptySchedule(t *testing.T) {
	_, err := mortgage.EffectiveAnnualRate(nil, money(300000))
	if !errors.Is(err, mortgage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEffectiveAnnualRate_NonPositivePrincipal(t *testing.T) {
	baseline, err := mortgage.Baseline(standardTerms())
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}

	for _, p := range []decimal.Decimal{money(0), money(-100)} {
		_, err := mortgage.EffectiveAnnualRate(baseline.Schedule, p)
		if !errors.Is(err, mortgage.ErrInvalidInput) {
			t.Errorf("principal %s: expected ErrInvalidInput, got %v", p, err)
		}
	}
}

func TestEffectiveAnnualRate_NoSignChangeFallsBackToZero(t *testing.T) {
	// GIVEN: A stream whose NPV is negative across the whole search bracket
	//        (one giant payment against a small principal)
	// WHEN: Solving
	// THEN: The solver reports 0 with Converged=false instead of failing

	schedule := []mortgage.AmortizationEntry{
		{Date: mortgage.MustDate("2025-02-01"), Payment: money(5000)},
	}

	rate, err := mortgage.EffectiveAnnualRate(schedule, money(1000))
	if err != nil {
		t.Fatalf("fallback must not error: %v", err)
	}
	if rate.Converged {
		t.Error("expected Converged=false")
	}
	if rate.Annual != 0 {
		t.Errorf("expected fallback rate 0, got %g", rate.Annual)
	}
}
