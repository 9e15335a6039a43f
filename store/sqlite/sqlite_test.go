package sqlite_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/mortgage-engine/mortgage"
	"github.com/warp/mortgage-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testLoan(id string) sqlite.LoanRecord {
	return sqlite.LoanRecord{
		ID:         id,
		Name:       "primary residence",
		Principal:  decimal.NewFromInt(300000),
		AnnualRate: 0.05,
		TermMonths: 360,
		StartDate:  mortgage.MustDate("2025-01-01"),
	}
}

// =============================================================================
// LOANS
// =============================================================================

func TestStore_LoanRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLoan(ctx, testLoan("loan-1")))

	loan, err := store.GetLoan(ctx, "loan-1")
	require.NoError(t, err)
	require.NotNil(t, loan)

	assert.Equal(t, "primary residence", loan.Name)
	assert.True(t, loan.Principal.Equal(decimal.NewFromInt(300000)),
		"principal must round-trip exactly, got %s", loan.Principal)
	assert.Equal(t, 0.05, loan.AnnualRate)
	assert.Equal(t, 360, loan.TermMonths)
	assert.Equal(t, "2025-01-01", loan.StartDate.String())

	terms := loan.Terms()
	assert.Equal(t, 360, terms.TermMonths)
}

func TestStore_GetLoan_NotFound(t *testing.T) {
	store := newTestStore(t)

	loan, err := store.GetLoan(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, loan)
}

func TestStore_SaveLoan_Upsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLoan(ctx, testLoan("loan-1")))

	updated := testLoan("loan-1")
	updated.Name = "refinanced"
	updated.AnnualRate = 0.045
	require.NoError(t, store.SaveLoan(ctx, updated))

	loans, err := store.ListLoans(ctx)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "refinanced", loans[0].Name)
	assert.Equal(t, 0.045, loans[0].AnnualRate)
}

// =============================================================================
// PREPAYMENTS AND SCENARIOS
// =============================================================================

func TestStore_PrepaymentsOrderedByDate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLoan(ctx, testLoan("loan-1")))
	require.NoError(t, store.SavePrepayment(ctx, sqlite.PrepaymentRecord{
		ID: "p2", LoanID: "loan-1",
		Date:   mortgage.MustDate("2027-01-01"),
		Amount: decimal.NewFromInt(5000),
	}))
	require.NoError(t, store.SavePrepayment(ctx, sqlite.PrepaymentRecord{
		ID: "p1", LoanID: "loan-1",
		Date:   mortgage.MustDate("2026-01-01"),
		Amount: decimal.NewFromInt(5000),
		Note:   "bonus",
	}))

	prepayments, err := store.ListPrepayments(ctx, "loan-1")
	require.NoError(t, err)
	require.Len(t, prepayments, 2)

	assert.Equal(t, "p1", prepayments[0].ID)
	assert.Equal(t, "bonus", prepayments[0].Note)
	assert.Equal(t, "p2", prepayments[1].ID)

	past := prepayments[0].Prepayment()
	assert.True(t, past.Amount.Equal(decimal.NewFromInt(5000)))
}

func TestStore_ScenarioRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLoan(ctx, testLoan("loan-1")))

	patterns := `[{"kind":"monthly","amount":200,"start_date":"2027-01-01"}]`
	require.NoError(t, store.SaveScenario(ctx, sqlite.ScenarioRecord{
		ID: "s1", LoanID: "loan-1", Name: "200/month", Active: true,
		PatternsJSON: patterns,
	}))

	sc, err := store.GetScenario(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sc)
	assert.True(t, sc.Active)
	assert.JSONEq(t, patterns, sc.PatternsJSON)

	scenarios, err := store.ListScenarios(ctx, "loan-1")
	require.NoError(t, err)
	assert.Len(t, scenarios, 1)
}

func TestStore_DeleteLoanCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLoan(ctx, testLoan("loan-1")))
	require.NoError(t, store.SavePrepayment(ctx, sqlite.PrepaymentRecord{
		ID: "p1", LoanID: "loan-1",
		Date:   mortgage.MustDate("2026-01-01"),
		Amount: decimal.NewFromInt(5000),
	}))
	require.NoError(t, store.SaveScenario(ctx, sqlite.ScenarioRecord{
		ID: "s1", LoanID: "loan-1", Name: "x", Active: true, PatternsJSON: "[]",
	}))

	require.NoError(t, store.DeleteLoan(ctx, "loan-1"))

	prepayments, err := store.ListPrepayments(ctx, "loan-1")
	require.NoError(t, err)
	assert.Empty(t, prepayments)

	scenarios, err := store.ListScenarios(ctx, "loan-1")
	require.NoError(t, err)
	assert.Empty(t, scenarios)
}
