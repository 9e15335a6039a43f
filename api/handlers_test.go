package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/mortgage-engine/api"
	"github.com/warp/mortgage-engine/cache"
	"github.com/warp/mortgage-engine/factory"
	"github.com/warp/mortgage-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	handler := api.NewHandler(store, cache.NewMemory())
	server := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, server *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func standardTermsDTO() api.LoanTermsDTO {
	return api.LoanTermsDTO{
		Principal:  300000,
		AnnualRate: 0.05,
		TermMonths: 360,
		StartDate:  "2025-01-01",
	}
}

func scenarioPayload() []factory.ScenarioJSON {
	return []factory.ScenarioJSON{{
		ID:     "200-monthly",
		Name:   "200 extra per month",
		Active: true,
		Patterns: []factory.PatternJSON{
			{Kind: "monthly", Amount: 200, StartDate: "2027-01-01"},
		},
	}}
}

// =============================================================================
// ENGINE ENDPOINTS
// =============================================================================

func TestComputePayment(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server, "/api/engine/payment", api.AmortizeRequest{Terms: standardTermsDTO()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payment api.PaymentDTO
	decodeJSON(t, resp, &payment)
	assert.InDelta(t, 1610.46, payment.MonthlyPayment, 0.01)
}

func TestComputePayment_InvalidTerms(t *testing.T) {
	server := newTestServer(t)

	terms := standardTermsDTO()
	terms.Principal = -1

	resp := postJSON(t, server, "/api/engine/payment", api.AmortizeRequest{Terms: terms})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestComputeBaseline(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server, "/api/engine/baseline", api.AmortizeRequest{Terms: standardTermsDTO()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var schedule api.ScheduleDTO
	decodeJSON(t, resp, &schedule)
	assert.Equal(t, 360, schedule.Months)
	assert.Equal(t, "2055-01-01", schedule.PayoffDate)
	assert.Greater(t, schedule.TotalInterest, 250000.0)
}

func TestCompareSchedules(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server, "/api/engine/compare", api.AmortizeRequest{
		Terms: standardTermsDTO(),
		Prepayments: []api.PrepaymentDTO{
			{Date: "2026-01-01", Amount: 5000},
			{Date: "2027-01-01", Amount: 5000},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var comparison api.ComparisonDTO
	decodeJSON(t, resp, &comparison)
	assert.Greater(t, comparison.InterestSaved, 0.0)
	assert.Greater(t, comparison.MonthsSaved, 0)
	assert.Less(t, comparison.Actual.Months, comparison.Baseline.Months)
}

func TestSolveRate(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server, "/api/engine/rate", api.AmortizeRequest{Terms: standardTermsDTO()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rate api.RateDTO
	decodeJSON(t, resp, &rate)
	assert.True(t, rate.Converged)
	assert.InDelta(t, 0.05, rate.EffectiveAnnualRate, 0.01)
}

func TestRunScenarios_EndToEnd(t *testing.T) {
	server := newTestServer(t)

	req := api.RunScenariosRequest{
		Terms:    standardTermsDTO(),
		AsOfDate: "2027-01-01",
		Prepayments: []api.PrepaymentDTO{
			{Date: "2026-01-01", Amount: 5000},
		},
		Scenarios: scenarioPayload(),
	}

	resp := postJSON(t, server, "/api/engine/scenarios", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))

	var run api.RunScenariosDTO
	decodeJSON(t, resp, &run)
	require.Len(t, run.Scenarios, 1)
	assert.Equal(t, 24, run.MonthsElapsed)
	assert.Greater(t, run.Scenarios[0].InterestSavedVsActual, 0.0)
	assert.Greater(t, run.Scenarios[0].MonthsSavedVsActual, 0)
}

func TestRunScenarios_SecondCallHitsCache(t *testing.T) {
	server := newTestServer(t)

	req := api.RunScenariosRequest{
		Terms:     standardTermsDTO(),
		AsOfDate:  "2027-01-01",
		Scenarios: scenarioPayload(),
	}

	first := postJSON(t, server, "/api/engine/scenarios", req)
	require.Equal(t, http.StatusOK, first.StatusCode)
	require.Equal(t, "miss", first.Header.Get("X-Cache"))

	second := postJSON(t, server, "/api/engine/scenarios", req)
	require.Equal(t, http.StatusOK, second.StatusCode)
	assert.Equal(t, "hit", second.Header.Get("X-Cache"))

	var firstRun, secondRun api.RunScenariosDTO
	decodeJSON(t, first, &firstRun)
	decodeJSON(t, second, &secondRun)
	assert.Equal(t, firstRun.Baseline.TotalInterest, secondRun.Baseline.TotalInterest)
	assert.Equal(t, firstRun.Scenarios, secondRun.Scenarios)
}

func TestRunScenarios_UnknownPatternKind(t *testing.T) {
	server := newTestServer(t)

	payload := scenarioPayload()
	payload[0].Patterns[0].Kind = "weekly"

	resp := postJSON(t, server, "/api/engine/scenarios", api.RunScenariosRequest{
		Terms:     standardTermsDTO(),
		AsOfDate:  "2027-01-01",
		Scenarios: payload,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// STORED LOANS
// =============================================================================

func TestLoanLifecycle(t *testing.T) {
	server := newTestServer(t)

	created := postJSON(t, server, "/api/loans", api.CreateLoanRequest{
		ID: "loan-1", Name: "house", Terms: standardTermsDTO(),
	})
	require.Equal(t, http.StatusCreated, created.StatusCode)

	resp, err := http.Get(server.URL + "/api/loans/loan-1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loan api.LoanDTO
	decodeJSON(t, resp, &loan)
	assert.Equal(t, "house", loan.Name)
	assert.Equal(t, 360, loan.Terms.TermMonths)

	missing, err := http.Get(server.URL + "/api/loans/nope")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestCreateLoan_RejectsTermsTheEngineRefuses(t *testing.T) {
	server := newTestServer(t)

	terms := standardTermsDTO()
	terms.TermMonths = 0

	resp := postJSON(t, server, "/api/loans", api.CreateLoanRequest{
		ID: "bad", Name: "bad", Terms: terms,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRunStoredLoan(t *testing.T) {
	server := newTestServer(t)

	require.Equal(t, http.StatusCreated, postJSON(t, server, "/api/loans", api.CreateLoanRequest{
		ID: "loan-1", Name: "house", Terms: standardTermsDTO(),
	}).StatusCode)

	require.Equal(t, http.StatusCreated, postJSON(t, server, "/api/loans/loan-1/prepayments", api.CreatePrepaymentRequest{
		ID: "p1", Date: "2026-01-01", Amount: 5000, Note: "bonus",
	}).StatusCode)

	require.Equal(t, http.StatusCreated, postJSON(t, server, "/api/loans/loan-1/scenarios", scenarioPayload()[0]).StatusCode)

	resp := postJSON(t, server, "/api/loans/loan-1/run", api.RunStoredLoanRequest{AsOfDate: "2027-01-01"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var run api.RunScenariosDTO
	decodeJSON(t, resp, &run)
	require.Len(t, run.Scenarios, 1)
	assert.Equal(t, "200-monthly", run.Scenarios[0].ID)
	assert.Greater(t, run.Scenarios[0].InterestSavedVsActual, 0.0)

	// Stored state unchanged, so the second run is a cache hit.
	again := postJSON(t, server, "/api/loans/loan-1/run", api.RunStoredLoanRequest{AsOfDate: "2027-01-01"})
	require.Equal(t, http.StatusOK, again.StatusCode)
	assert.Equal(t, "hit", again.Header.Get("X-Cache"))
}
