/*
handlers.go - HTTP API handlers for the mortgage scenario engine

PURPOSE:
  Exposes the amortization and scenario engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Engine (stateless, computed from the request body):
    POST /api/engine/payment    Contractual monthly payment
    POST /api/engine/baseline   Baseline amortization schedule
    POST /api/engine/actual     Schedule replayed with prepayments
    POST /api/engine/compare    Baseline vs actual comparison
    POST /api/engine/rate       Effective annual rate of the actual path
    POST /api/engine/scenarios  Full scenario run (cached)

  Loans (persisted):
    GET    /api/loans                     List stored loans
    POST   /api/loans                     Create/replace a loan
    GET    /api/loans/{id}                Get loan details
    DELETE /api/loans/{id}                Delete loan (cascades)
    GET    /api/loans/{id}/prepayments    List recorded prepayments
    POST   /api/loans/{id}/prepayments    Record a prepayment
    GET    /api/loans/{id}/scenarios      List scenario configs
    POST   /api/loans/{id}/scenarios      Save a scenario config
    POST   /api/loans/{id}/run            Run stored scenarios (cached)

  Misc:
    DELETE /api/prepayments/{id}          Delete a prepayment
    DELETE /api/scenarios/{id}            Delete a scenario
    POST   /api/reset                     Database reset (dev only)

CACHING:
  Scenario runs are the expensive path (hundreds of schedule rows per
  scenario), so their responses are cached keyed by a SHA-256 digest of
  the request. Hits are marked with an X-Cache header. Cache failures
  are never surfaced to the client.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 422: Engine rejections (negative amortization, non-convergence)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/warp/mortgage-engine/cache"
	"github.com/warp/mortgage-engine/factory"
	"github.com/warp/mortgage-engine/mortgage"
	"github.com/warp/mortgage-engine/store/sqlite"
)

// cacheTTL bounds staleness for cached scenario runs. Results are pure
// functions of their inputs, so the TTL only caps memory growth.
const cacheTTL = 15 * time.Minute

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Cache   cache.ResultCache
	Factory *factory.ScenarioFactory
}

// NewHandler creates a new handler. Cache may be nil to disable caching.
func NewHandler(store *sqlite.Store, resultCache cache.ResultCache) *Handler {
	return &Handler{
		Store:   store,
		Cache:   resultCache,
		Factory: factory.NewScenarioFactory(),
	}
}

// =============================================================================
// ENGINE HANDLERS (stateless)
// =============================================================================

// ComputePayment returns the contractual monthly payment.
func (h *Handler) ComputePayment(w http.ResponseWriter, r *http.Request) {
	terms, ok := h.decodeTerms(w, r)
	if !ok {
		return
	}

	payment, err := mortgage.MonthlyPayment(terms)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PaymentDTO{MonthlyPayment: payment.InexactFloat64()})
}

// ComputeBaseline returns the contractual amortization schedule.
func (h *Handler) ComputeBaseline(w http.ResponseWriter, r *http.Request) {
	terms, ok := h.decodeTerms(w, r)
	if !ok {
		return
	}

	result, err := mortgage.Baseline(terms)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleDTO(result))
}

// ComputeActual replays the schedule with historical prepayments applied.
func (h *Handler) ComputeActual(w http.ResponseWriter, r *http.Request) {
	terms, prepayments, ok := h.decodeAmortizeRequest(w, r)
	if !ok {
		return
	}

	result, err := mortgage.WithPrepayments(terms, prepayments)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleDTO(result))
}

// CompareSchedules returns the baseline and actual paths side by side.
func (h *Handler) CompareSchedules(w http.ResponseWriter, r *http.Request) {
	terms, prepayments, ok := h.decodeAmortizeRequest(w, r)
	if !ok {
		return
	}

	comparison, err := mortgage.CompareWithPrepayments(terms, prepayments)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ComparisonDTO{
		Baseline:      toScheduleDTO(comparison.Baseline),
		Actual:        toScheduleDTO(comparison.Actual),
		InterestSaved: comparison.InterestSaved.InexactFloat64(),
		MonthsSaved:   comparison.MonthsSaved,
	})
}

// SolveRate returns the effective annual rate of the actual path.
func (h *Handler) SolveRate(w http.ResponseWriter, r *http.Request) {
	terms, prepayments, ok := h.decodeAmortizeRequest(w, r)
	if !ok {
		return
	}

	result, err := mortgage.WithPrepayments(terms, prepayments)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	rate, err := mortgage.EffectiveAnnualRate(result.Schedule, terms.Principal)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RateDTO{
		EffectiveAnnualRate: rate.Annual,
		Converged:           rate.Converged,
	})
}

// RunScenarios evaluates what-if scenarios supplied in the request body.
func (h *Handler) RunScenarios(w http.ResponseWriter, r *http.Request) {
	var req RunScenariosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if h.serveCached(w, r, "engine:scenarios", req) {
		return
	}

	ctx, configs, err := h.buildScenarioRun(req)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	result, err := mortgage.RunScenarios(ctx, configs)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.writeAndCache(w, r, "engine:scenarios", req, toRunDTO(result))
}

func (h *Handler) buildScenarioRun(req RunScenariosRequest) (mortgage.ScenarioContext, []mortgage.ScenarioConfig, error) {
	terms, err := req.Terms.toTerms()
	if err != nil {
		return mortgage.ScenarioContext{}, nil, err
	}
	prepayments, err := toPrepayments(req.Prepayments)
	if err != nil {
		return mortgage.ScenarioContext{}, nil, err
	}
	asOf, err := mortgage.ParseDate(req.AsOfDate)
	if err != nil {
		return mortgage.ScenarioContext{}, nil, fmt.Errorf("as_of_date: %w", err)
	}

	configs := make([]mortgage.ScenarioConfig, 0, len(req.Scenarios))
	for _, sj := range req.Scenarios {
		cfg, err := h.Factory.FromJSON(sj)
		if err != nil {
			return mortgage.ScenarioContext{}, nil, err
		}
		configs = append(configs, *cfg)
	}

	return mortgage.ScenarioContext{
		Terms:           terms,
		PastPrepayments: prepayments,
		AsOfDate:        asOf,
	}, configs, nil
}

// =============================================================================
// LOAN HANDLERS
// =============================================================================

// ListLoans returns all stored loans.
func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.Store.ListLoans(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list loans", err)
		return
	}

	dtos := make([]LoanDTO, len(loans))
	for i, loan := range loans {
		dtos[i] = toLoanDTO(loan)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateLoan creates or replaces a stored loan.
func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "Loan id is required", nil)
		return
	}

	terms, err := req.Terms.toTerms()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid loan terms", err)
		return
	}
	// Reject terms the engine would refuse before persisting them.
	if _, err := mortgage.MonthlyPayment(terms); err != nil {
		writeEngineError(w, err)
		return
	}

	record := sqlite.LoanRecord{
		ID:         req.ID,
		Name:       req.Name,
		Principal:  terms.Principal,
		AnnualRate: terms.AnnualRate,
		TermMonths: terms.TermMonths,
		StartDate:  terms.StartDate,
	}
	if err := h.Store.SaveLoan(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save loan", err)
		return
	}

	writeJSON(w, http.StatusCreated, toLoanDTO(record))
}

// GetLoan returns a single stored loan.
func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loan, ok := h.loadLoan(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toLoanDTO(*loan))
}

// DeleteLoan removes a loan and its prepayments and scenarios.
func (h *Handler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteLoan(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete loan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PREPAYMENT HANDLERS
// =============================================================================

// ListLoanPrepayments returns a loan's recorded prepayments.
func (h *Handler) ListLoanPrepayments(w http.ResponseWriter, r *http.Request) {
	loan, ok := h.loadLoan(w, r)
	if !ok {
		return
	}

	prepayments, err := h.Store.ListPrepayments(r.Context(), loan.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list prepayments", err)
		return
	}

	dtos := make([]StoredPrepaymentDTO, len(prepayments))
	for i, p := range prepayments {
		dtos[i] = toStoredPrepaymentDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateLoanPrepayment records a prepayment against a loan.
func (h *Handler) CreateLoanPrepayment(w http.ResponseWriter, r *http.Request) {
	loan, ok := h.loadLoan(w, r)
	if !ok {
		return
	}

	var req CreatePrepaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "Prepayment id is required", nil)
		return
	}
	date, err := mortgage.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "Amount must be positive", nil)
		return
	}

	record := sqlite.PrepaymentRecord{
		ID:     req.ID,
		LoanID: loan.ID,
		Date:   date,
		Amount: decimal.NewFromFloat(req.Amount),
		Note:   req.Note,
	}
	if err := h.Store.SavePrepayment(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save prepayment", err)
		return
	}

	writeJSON(w, http.StatusCreated, toStoredPrepaymentDTO(record))
}

// DeletePrepayment removes a prepayment.
func (h *Handler) DeletePrepayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeletePrepayment(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete prepayment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListLoanScenarios returns a loan's scenario configs.
func (h *Handler) ListLoanScenarios(w http.ResponseWriter, r *http.Request) {
	loan, ok := h.loadLoan(w, r)
	if !ok {
		return
	}

	scenarios, err := h.Store.ListScenarios(r.Context(), loan.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list scenarios", err)
		return
	}

	dtos := make([]StoredScenarioDTO, 0, len(scenarios))
	for _, sc := range scenarios {
		dto, err := toStoredScenarioDTO(sc)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Corrupt stored scenario", err)
			return
		}
		dtos = append(dtos, dto)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateLoanScenario saves a scenario config against a loan. The pattern
// payload is parsed through the factory first so malformed configs are
// rejected instead of stored.
func (h *Handler) CreateLoanScenario(w http.ResponseWriter, r *http.Request) {
	loan, ok := h.loadLoan(w, r)
	if !ok {
		return
	}

	var sj factory.ScenarioJSON
	if err := json.NewDecoder(r.Body).Decode(&sj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if sj.ID == "" {
		writeError(w, http.StatusBadRequest, "Scenario id is required", nil)
		return
	}
	if _, err := h.Factory.FromJSON(sj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scenario config", err)
		return
	}

	patternsJSON, err := json.Marshal(sj.Patterns)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode patterns", err)
		return
	}

	record := sqlite.ScenarioRecord{
		ID:           sj.ID,
		LoanID:       loan.ID,
		Name:         sj.Name,
		Active:       sj.Active,
		PatternsJSON: string(patternsJSON),
	}
	if err := h.Store.SaveScenario(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save scenario", err)
		return
	}

	dto, err := toStoredScenarioDTO(record)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode scenario", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// DeleteScenario removes a scenario config.
func (h *Handler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteScenario(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete scenario", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// STORED RUN
// =============================================================================

// RunStoredLoan assembles a scenario context from the store and runs it.
func (h *Handler) RunStoredLoan(w http.ResponseWriter, r *http.Request) {
	loan, ok := h.loadLoan(w, r)
	if !ok {
		return
	}

	var req RunStoredLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	asOf, err := mortgage.ParseDate(req.AsOfDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of_date (use YYYY-MM-DD)", err)
		return
	}

	prepaymentRecords, err := h.Store.ListPrepayments(r.Context(), loan.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load prepayments", err)
		return
	}
	scenarioRecords, err := h.Store.ListScenarios(r.Context(), loan.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenarios", err)
		return
	}

	prepayments := make([]mortgage.PastPrepayment, len(prepaymentRecords))
	for i, p := range prepaymentRecords {
		prepayments[i] = p.Prepayment()
	}

	configs := make([]mortgage.ScenarioConfig, 0, len(scenarioRecords))
	for _, sc := range scenarioRecords {
		cfg, err := h.scenarioFromRecord(sc)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Corrupt stored scenario", err)
			return
		}
		configs = append(configs, *cfg)
	}

	// The stored state is part of the cache identity, not just the request.
	cacheInput := struct {
		Loan        sqlite.LoanRecord
		Prepayments []sqlite.PrepaymentRecord
		Scenarios   []sqlite.ScenarioRecord
		AsOf        string
	}{*loan, prepaymentRecords, scenarioRecords, req.AsOfDate}

	if h.serveCached(w, r, "loans:run", cacheInput) {
		return
	}

	result, err := mortgage.RunScenarios(mortgage.ScenarioContext{
		Terms:           loan.Terms(),
		PastPrepayments: prepayments,
		AsOfDate:        asOf,
	}, configs)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.writeAndCache(w, r, "loans:run", cacheInput, toRunDTO(result))
}

func (h *Handler) scenarioFromRecord(sc sqlite.ScenarioRecord) (*mortgage.ScenarioConfig, error) {
	var patterns []factory.PatternJSON
	if err := json.Unmarshal([]byte(sc.PatternsJSON), &patterns); err != nil {
		return nil, err
	}
	return h.Factory.FromJSON(factory.ScenarioJSON{
		ID:       sc.ID,
		Name:     sc.Name,
		Active:   sc.Active,
		Patterns: patterns,
	})
}

// =============================================================================
// ADMIN
// =============================================================================

// ResetDatabase clears all stored data (dev only).
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) decodeTerms(w http.ResponseWriter, r *http.Request) (mortgage.LoanTerms, bool) {
	var req AmortizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return mortgage.LoanTerms{}, false
	}
	terms, err := req.Terms.toTerms()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid loan terms", err)
		return mortgage.LoanTerms{}, false
	}
	return terms, true
}

func (h *Handler) decodeAmortizeRequest(w http.ResponseWriter, r *http.Request) (mortgage.LoanTerms, []mortgage.PastPrepayment, bool) {
	var req AmortizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return mortgage.LoanTerms{}, nil, false
	}
	terms, err := req.Terms.toTerms()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid loan terms", err)
		return mortgage.LoanTerms{}, nil, false
	}
	prepayments, err := toPrepayments(req.Prepayments)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid prepayment", err)
		return mortgage.LoanTerms{}, nil, false
	}
	return terms, prepayments, true
}

func (h *Handler) loadLoan(w http.ResponseWriter, r *http.Request) (*sqlite.LoanRecord, bool) {
	id := chi.URLParam(r, "id")
	loan, err := h.Store.GetLoan(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get loan", err)
		return nil, false
	}
	if loan == nil {
		writeError(w, http.StatusNotFound, "Loan not found", nil)
		return nil, false
	}
	return loan, true
}

// cacheKey digests the prefix and request payload into a stable key.
func cacheKey(prefix string, payload any) (string, bool) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(append([]byte(prefix+"|"), raw...))
	return fmt.Sprintf("%s:%x", prefix, sum), true
}

// serveCached writes a cached response if one exists. Returns true when
// the request was served.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, prefix string, payload any) bool {
	if h.Cache == nil {
		return false
	}
	key, ok := cacheKey(prefix, payload)
	if !ok {
		return false
	}
	body, hit := h.Cache.Get(r.Context(), key)
	if !hit {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "hit")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
	return true
}

// writeAndCache sends the response and stores it for future hits.
func (h *Handler) writeAndCache(w http.ResponseWriter, r *http.Request, prefix string, payload, response any) {
	body, err := json.Marshal(response)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode response", err)
		return
	}
	if h.Cache != nil {
		if key, ok := cacheKey(prefix, payload); ok {
			// Best effort: a failed Set just means a future recompute.
			h.Cache.Set(r.Context(), key, string(body), cacheTTL)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func toLoanDTO(loan sqlite.LoanRecord) LoanDTO {
	dto := LoanDTO{
		ID:   loan.ID,
		Name: loan.Name,
		Terms: LoanTermsDTO{
			Principal:  loan.Principal.InexactFloat64(),
			AnnualRate: loan.AnnualRate,
			TermMonths: loan.TermMonths,
			StartDate:  loan.StartDate.String(),
		},
	}
	if !loan.CreatedAt.IsZero() {
		dto.CreatedAt = loan.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toStoredPrepaymentDTO(p sqlite.PrepaymentRecord) StoredPrepaymentDTO {
	return StoredPrepaymentDTO{
		ID:     p.ID,
		LoanID: p.LoanID,
		Date:   p.Date.String(),
		Amount: p.Amount.InexactFloat64(),
		Note:   p.Note,
	}
}

func toStoredScenarioDTO(sc sqlite.ScenarioRecord) (StoredScenarioDTO, error) {
	var patterns []factory.PatternJSON
	if err := json.Unmarshal([]byte(sc.PatternsJSON), &patterns); err != nil {
		return StoredScenarioDTO{}, err
	}
	return StoredScenarioDTO{
		ID:       sc.ID,
		LoanID:   sc.LoanID,
		Name:     sc.Name,
		Active:   sc.Active,
		Patterns: patterns,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps engine errors to HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mortgage.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	case errors.Is(err, mortgage.ErrNegativeAmortization):
		writeError(w, http.StatusUnprocessableEntity, "Payment does not cover interest", err)
	case errors.Is(err, mortgage.ErrConvergenceFailure):
		writeError(w, http.StatusUnprocessableEntity, "Simulation failed to converge", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
