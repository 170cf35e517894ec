/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's value types from the external API contract: row values go
  out as plain floats for charting, summaries carry both absolute and
  percentage metrics, and requests embed factory.LoanJSON so the wire
  schema has a single definition.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Validation lives in factory and finance, not in DTOs. DTOs are pure
  data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/loan.go: LoanJSON, ExtraJSON, RecurringJSON
*/
package api

import (
	"github.com/cutiepie25/FinSight/factory"
	"github.com/cutiepie25/FinSight/finance"
	"github.com/cutiepie25/FinSight/store/sqlite"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ScheduleRequest computes a baseline schedule.
type ScheduleRequest struct {
	Loan factory.LoanJSON `json:"loan"`
}

// ExtrasRequest computes a recalculated schedule from explicit injections.
type ExtrasRequest struct {
	Loan   factory.LoanJSON    `json:"loan"`
	Extras []factory.ExtraJSON `json:"extras"`
	Policy string              `json:"policy,omitempty"`
}

// RecurringRequest computes a recalculated schedule from a recurring cadence.
type RecurringRequest struct {
	Loan      factory.LoanJSON      `json:"loan"`
	Recurring factory.RecurringJSON `json:"recurring"`
	Policy    string                `json:"policy,omitempty"`
}

// SaveLoanRequest persists a named loan definition.
type SaveLoanRequest struct {
	ID   string           `json:"id"`
	Name string           `json:"name"`
	Loan factory.LoanJSON `json:"loan"`
}

// LoadScenarioRequest selects a demo scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// RowDTO is one period of an amortization table, floats for charting.
type RowDTO struct {
	Period      int     `json:"period"`
	Date        string  `json:"date,omitempty"`
	Installment float64 `json:"installment"`
	Interest    float64 `json:"interest"`
	Principal   float64 `json:"principal"`
	Extra       float64 `json:"extra"`
	Balance     float64 `json:"balance"`
}

// SummaryDTO aggregates one schedule.
type SummaryDTO struct {
	Principal          float64 `json:"principal"`
	TotalInterest      float64 `json:"total_interest"`
	TotalPrincipal     float64 `json:"total_principal"`
	TotalExtra         float64 `json:"total_extra"`
	TotalPaid          float64 `json:"total_paid"`
	PeriodCount        int     `json:"period_count"`
	AverageInstallment float64 `json:"average_installment"`
	FinalBalance       float64 `json:"final_balance"`
}

// SavingsDTO is the differential between baseline and recalculated runs.
type SavingsDTO struct {
	InterestSaved    float64 `json:"interest_saved"`
	TermReducedBy    int     `json:"term_reduced_by"`
	InterestSavedPct float64 `json:"interest_saved_pct"`
	TermReducedPct   float64 `json:"term_reduced_pct"`
}

// ScheduleResponse wraps a baseline computation.
type ScheduleResponse struct {
	PeriodRate float64    `json:"period_rate"`
	Table      []RowDTO   `json:"table"`
	Summary    SummaryDTO `json:"summary"`
}

// RecalculatedResponse wraps a computation with extras applied.
type RecalculatedResponse struct {
	PeriodRate float64    `json:"period_rate"`
	Policy     string     `json:"policy"`
	Table      []RowDTO   `json:"table"`
	Summary    SummaryDTO `json:"summary"`
	Baseline   SummaryDTO `json:"baseline_summary"`
	Savings    SavingsDTO `json:"savings"`
}

// CompareResponse is the table-free comparative report.
type CompareResponse struct {
	Baseline   SummaryDTO `json:"baseline_summary"`
	WithExtras SummaryDTO `json:"with_extras_summary"`
	Savings    SavingsDTO `json:"savings"`
}

// FrequencyDTO describes one supported payment frequency.
type FrequencyDTO struct {
	Name   string  `json:"name"`
	Months float64 `json:"months"`
	Days   int     `json:"days"`
}

// SavedLoanDTO is a persisted loan definition.
type SavedLoanDTO struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Loan      factory.LoanJSON `json:"loan"`
	CreatedAt string           `json:"created_at"`
}

// ScenarioDTO describes one demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// MAPPERS
// =============================================================================

func toRowDTOs(sched *finance.Schedule) []RowDTO {
	rows := make([]RowDTO, len(sched.Rows))
	for i, r := range sched.Rows {
		dto := RowDTO{
			Period:      r.Period,
			Installment: r.Installment.InexactFloat64(),
			Interest:    r.Interest.InexactFloat64(),
			Principal:   r.Principal.InexactFloat64(),
			Extra:       r.Extra.InexactFloat64(),
			Balance:     r.Balance.InexactFloat64(),
		}
		if !r.Date.IsZero() {
			dto.Date = r.Date.Format("2006-01-02")
		}
		rows[i] = dto
	}
	return rows
}

func toSummaryDTO(s finance.Summary) SummaryDTO {
	return SummaryDTO{
		Principal:          s.Principal.InexactFloat64(),
		TotalInterest:      s.TotalInterest.InexactFloat64(),
		TotalPrincipal:     s.TotalPrincipal.InexactFloat64(),
		TotalExtra:         s.TotalExtra.InexactFloat64(),
		TotalPaid:          s.TotalPaid.InexactFloat64(),
		PeriodCount:        s.PeriodCount,
		AverageInstallment: s.AverageInstallment.InexactFloat64(),
		FinalBalance:       s.FinalBalance.InexactFloat64(),
	}
}

func toSavingsDTO(s finance.Savings) SavingsDTO {
	return SavingsDTO{
		InterestSaved:    s.InterestSaved.InexactFloat64(),
		TermReducedBy:    s.TermReducedBy,
		InterestSavedPct: s.InterestSavedPct.InexactFloat64(),
		TermReducedPct:   s.TermReducedPct.InexactFloat64(),
	}
}

func toSavedLoanDTO(l sqlite.SavedLoan) SavedLoanDTO {
	return SavedLoanDTO{
		ID:        l.ID,
		Name:      l.Name,
		Loan:      l.Loan,
		CreatedAt: l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
