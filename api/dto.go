/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  Amounts cross the wire as float64 for client convenience and are
  converted to decimal.Decimal at the handler boundary. The engine and
  the store never see floats for money.

VALIDATION:
  Validation is done in handlers and the engine, not in DTOs. DTOs are
  pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/scenario.go: PatternJSON / ScenarioJSON types embedded here
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/mortgage-engine/factory"
	"github.com/warp/mortgage-engine/mortgage"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// LoanTermsDTO carries loan terms in requests and responses.
type LoanTermsDTO struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	TermMonths int     `json:"term_months"`
	StartDate  string  `json:"start_date"`
}

// PrepaymentDTO is one historical extra-principal payment.
type PrepaymentDTO struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
}

// AmortizeRequest asks for a schedule: the baseline when prepayments is
// empty, the actual path otherwise.
type AmortizeRequest struct {
	Terms       LoanTermsDTO    `json:"terms"`
	Prepayments []PrepaymentDTO `json:"prepayments,omitempty"`
}

// RunScenariosRequest asks for a full scenario run.
type RunScenariosRequest struct {
	Terms       LoanTermsDTO           `json:"terms"`
	Prepayments []PrepaymentDTO        `json:"prepayments,omitempty"`
	AsOfDate    string                 `json:"as_of_date"`
	Scenarios   []factory.ScenarioJSON `json:"scenarios"`
}

// CreateLoanRequest creates or replaces a stored loan.
type CreateLoanRequest struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Terms LoanTermsDTO `json:"terms"`
}

// CreatePrepaymentRequest records a prepayment against a stored loan.
type CreatePrepaymentRequest struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
}

// RunStoredLoanRequest runs a stored loan's scenarios at a pivot date.
type RunStoredLoanRequest struct {
	AsOfDate string `json:"as_of_date"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// PaymentDTO is the contractual monthly payment.
type PaymentDTO struct {
	MonthlyPayment float64 `json:"monthly_payment"`
}

// EntryDTO is one amortization schedule row.
type EntryDTO struct {
	Date      string  `json:"date"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Remaining float64 `json:"remaining"`
}

// ScheduleDTO is a complete amortization table with aggregates.
type ScheduleDTO struct {
	Schedule      []EntryDTO `json:"schedule"`
	TotalInterest float64    `json:"total_interest"`
	PayoffDate    string     `json:"payoff_date"`
	Months        int        `json:"months"`
}

// ComparisonDTO pairs the baseline with the actual path.
type ComparisonDTO struct {
	Baseline      ScheduleDTO `json:"baseline"`
	Actual        ScheduleDTO `json:"actual"`
	InterestSaved float64     `json:"interest_saved"`
	MonthsSaved   int         `json:"months_saved"`
}

// RateDTO is the effective-rate solution for a schedule.
type RateDTO struct {
	EffectiveAnnualRate float64 `json:"effective_annual_rate"`
	Converged           bool    `json:"converged"`
}

// ScenarioOutcomeDTO is one evaluated scenario.
type ScenarioOutcomeDTO struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	TotalInterest           float64 `json:"total_interest"`
	PayoffDate              string  `json:"payoff_date"`
	Months                  int     `json:"months"`
	EffectiveAnnualRate     float64 `json:"effective_annual_rate"`
	RateConverged           bool    `json:"rate_converged"`
	InterestSavedVsBaseline float64 `json:"interest_saved_vs_baseline"`
	MonthsSavedVsBaseline   int     `json:"months_saved_vs_baseline"`
	InterestSavedVsActual   float64 `json:"interest_saved_vs_actual"`
	MonthsSavedVsActual     int     `json:"months_saved_vs_actual"`
}

// RunScenariosDTO is the full scenario-run response.
type RunScenariosDTO struct {
	Baseline        ScheduleDTO          `json:"baseline"`
	Actual          ScheduleDTO          `json:"actual"`
	RemainingAtAsOf float64              `json:"remaining_at_as_of"`
	EffectiveAsOf   string               `json:"effective_as_of"`
	InterestToDate  float64              `json:"interest_to_date"`
	MonthsElapsed   int                  `json:"months_elapsed"`
	Scenarios       []ScenarioOutcomeDTO `json:"scenarios"`
}

// LoanDTO represents a stored loan in API responses.
type LoanDTO struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Terms     LoanTermsDTO `json:"terms"`
	CreatedAt string       `json:"created_at,omitempty"`
}

// StoredPrepaymentDTO represents a stored prepayment.
type StoredPrepaymentDTO struct {
	ID     string  `json:"id"`
	LoanID string  `json:"loan_id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
}

// StoredScenarioDTO represents a stored scenario config.
type StoredScenarioDTO struct {
	ID       string                `json:"id"`
	LoanID   string                `json:"loan_id"`
	Name     string                `json:"name"`
	Active   bool                  `json:"active"`
	Patterns []factory.PatternJSON `json:"patterns"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func (d LoanTermsDTO) toTerms() (mortgage.LoanTerms, error) {
	start, err := mortgage.ParseDate(d.StartDate)
	if err != nil {
		return mortgage.LoanTerms{}, err
	}
	return mortgage.LoanTerms{
		Principal:  decimal.NewFromFloat(d.Principal),
		AnnualRate: d.AnnualRate,
		TermMonths: d.TermMonths,
		StartDate:  start,
	}, nil
}

func toPrepayments(dtos []PrepaymentDTO) ([]mortgage.PastPrepayment, error) {
	prepayments := make([]mortgage.PastPrepayment, 0, len(dtos))
	for _, d := range dtos {
		date, err := mortgage.ParseDate(d.Date)
		if err != nil {
			return nil, err
		}
		prepayments = append(prepayments, mortgage.PastPrepayment{
			Date:   date,
			Amount: decimal.NewFromFloat(d.Amount),
			Note:   d.Note,
		})
	}
	return prepayments, nil
}

func toEntryDTO(e mortgage.AmortizationEntry) EntryDTO {
	return EntryDTO{
		Date:      e.Date.String(),
		Payment:   e.Payment.InexactFloat64(),
		Interest:  e.Interest.InexactFloat64(),
		Principal: e.Principal.InexactFloat64(),
		Remaining: e.Remaining.InexactFloat64(),
	}
}

func toScheduleDTO(r *mortgage.AmortizationResult) ScheduleDTO {
	entries := make([]EntryDTO, len(r.Schedule))
	for i, e := range r.Schedule {
		entries[i] = toEntryDTO(e)
	}
	return ScheduleDTO{
		Schedule:      entries,
		TotalInterest: r.TotalInterest.InexactFloat64(),
		PayoffDate:    r.PayoffDate.String(),
		Months:        r.Months(),
	}
}

func toOutcomeDTO(s mortgage.ScenarioOutcome) ScenarioOutcomeDTO {
	return ScenarioOutcomeDTO{
		ID:                      s.ID,
		Name:                    s.Name,
		TotalInterest:           s.TotalInterest.InexactFloat64(),
		PayoffDate:              s.PayoffDate.String(),
		Months:                  len(s.Schedule),
		EffectiveAnnualRate:     s.EffectiveAnnualRate,
		RateConverged:           s.RateConverged,
		InterestSavedVsBaseline: s.InterestSavedVsBaseline.InexactFloat64(),
		MonthsSavedVsBaseline:   s.MonthsSavedVsBaseline,
		InterestSavedVsActual:   s.InterestSavedVsActual.InexactFloat64(),
		MonthsSavedVsActual:     s.MonthsSavedVsActual,
	}
}

func toRunDTO(r *mortgage.ScenarioRunResult) RunScenariosDTO {
	outcomes := make([]ScenarioOutcomeDTO, len(r.Scenarios))
	for i, s := range r.Scenarios {
		outcomes[i] = toOutcomeDTO(s)
	}
	return RunScenariosDTO{
		Baseline:        toScheduleDTO(r.Baseline),
		Actual:          toScheduleDTO(r.Actual),
		RemainingAtAsOf: r.RemainingAtAsOf.InexactFloat64(),
		EffectiveAsOf:   r.EffectiveAsOf.String(),
		InterestToDate:  r.InterestToDate.InexactFloat64(),
		MonthsElapsed:   r.MonthsElapsed,
		Scenarios:       outcomes,
	}
}
