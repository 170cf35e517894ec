/*
handlers.go - HTTP API handlers for the amortization service

PURPOSE:
  Exposes the amortization engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates all computation to
  the finance package.

ENDPOINTS:
  Computation:
    POST   /api/schedule            Baseline amortization table
    POST   /api/schedule/extras     Table with explicit extra payments
    POST   /api/schedule/recurring  Table with a recurring extra cadence
    POST   /api/schedule/export     CSV download of a computed table
    POST   /api/compare             Comparative report (no tables)

  Reference data:
    GET    /api/frequencies         Supported payment frequencies
    GET    /api/health              Liveness

  Saved loans:
    GET    /api/loans               List saved definitions
    POST   /api/loans               Save a definition
    GET    /api/loans/{id}          Fetch one definition
    DELETE /api/loans/{id}          Delete a definition
    POST   /api/loans/{id}/schedule Compute a saved definition

  Scenarios:
    GET    /api/scenarios           List demo scenarios
    POST   /api/scenarios/load      Load a demo scenario

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Saved-loan persistence
  - Cache: Response cache for computed schedules

CACHING:
  Computation is deterministic, so responses for the computation
  endpoints are cached by a hash of the request body. The cache is
  ephemeral (TTL-bound); computed schedules are never persisted.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors (finance.IsClientError, factory parse errors)
  - 404: Saved loan not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - scenarios.go: Demo scenario loaders
*/
package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cutiepie25/FinSight/cache"
	"github.com/cutiepie25/FinSight/export"
	"github.com/cutiepie25/FinSight/factory"
	"github.com/cutiepie25/FinSight/finance"
	"github.com/cutiepie25/FinSight/store/sqlite"
)

// cacheTTL bounds how long a computed response may be served from cache.
const cacheTTL = 10 * time.Minute

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
	Cache cache.Cache

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store and cache.
func NewHandler(store *sqlite.Store, c cache.Cache) *Handler {
	if c == nil {
		c = cache.NewMemory()
	}
	return &Handler{Store: store, Cache: c}
}

// =============================================================================
// COMPUTATION HANDLERS
// =============================================================================

// CalculateSchedule computes a baseline amortization table.
func (h *Handler) CalculateSchedule(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, func(body []byte) (any, error) {
		var req ScheduleRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, badBody(err)
		}
		return h.baselineResponse(req.Loan)
	})
}

// CalculateWithExtras computes a table with explicit extra payments.
func (h *Handler) CalculateWithExtras(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, func(body []byte) (any, error) {
		var req ExtrasRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, badBody(err)
		}
		return h.recalculatedResponse(req.Loan, factory.ParseExtras(req.Extras), req.Policy)
	})
}

// CalculateRecurring computes a table with a recurring extra cadence.
func (h *Handler) CalculateRecurring(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, func(body []byte) (any, error) {
		var req RecurringRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, badBody(err)
		}
		loan, err := factory.ParseLoan(req.Loan)
		if err != nil {
			return nil, clientErr(err)
		}
		extras, err := factory.ExpandRecurring(req.Recurring, loan)
		if err != nil {
			return nil, clientErr(err)
		}
		return h.recalculatedResponse(req.Loan, extras, req.Policy)
	})
}

// Compare returns the comparative report without the row tables.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, func(body []byte) (any, error) {
		var req ExtrasRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, badBody(err)
		}
		resp, err := h.recalculatedResponse(req.Loan, factory.ParseExtras(req.Extras), req.Policy)
		if err != nil {
			return nil, err
		}
		return CompareResponse{
			Baseline:   resp.Baseline,
			WithExtras: resp.Summary,
			Savings:    resp.Savings,
		}, nil
	})
}

// ExportSchedule streams a computed table as a CSV attachment.
func (h *Handler) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	var req ExtrasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sched, _, err := h.compute(req.Loan, factory.ParseExtras(req.Extras), req.Policy)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="amortization.csv"`)
	if err := export.WriteCSV(w, sched); err != nil {
		// Headers are gone; nothing useful left to send.
		return
	}
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

// ListFrequencies returns the supported payment frequencies.
func (h *Handler) ListFrequencies(w http.ResponseWriter, r *http.Request) {
	freqs := finance.Frequencies()
	dtos := make([]FrequencyDTO, len(freqs))
	for i, f := range freqs {
		dtos[i] = FrequencyDTO{Name: string(f), Months: f.Months(), Days: f.Days()}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// SAVED-LOAN HANDLERS
// =============================================================================

// ListLoans returns all saved loan definitions.
func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.Store.ListLoans(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list loans", err)
		return
	}
	dtos := make([]SavedLoanDTO, len(loans))
	for i, l := range loans {
		dtos[i] = toSavedLoanDTO(l)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveLoan persists a named loan definition. The definition is validated
// before it is stored so the table never holds unparseable loans.
func (h *Handler) SaveLoan(w http.ResponseWriter, r *http.Request) {
	var req SaveLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required", nil)
		return
	}
	if _, err := factory.ParseLoan(req.Loan); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid loan definition", err)
		return
	}

	saved := sqlite.SavedLoan{ID: req.ID, Name: req.Name, Loan: req.Loan}
	if err := h.Store.SaveLoan(r.Context(), saved); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save loan", err)
		return
	}
	writeJSON(w, http.StatusCreated, SavedLoanDTO{ID: req.ID, Name: req.Name, Loan: req.Loan})
}

// GetLoan returns one saved definition.
func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loan, err := h.Store.GetLoan(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, sqlite.ErrLoanNotFound) {
		writeError(w, http.StatusNotFound, "Loan not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get loan", err)
		return
	}
	writeJSON(w, http.StatusOK, toSavedLoanDTO(*loan))
}

// DeleteLoan removes a saved definition.
func (h *Handler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteLoan(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, sqlite.ErrLoanNotFound) {
		writeError(w, http.StatusNotFound, "Loan not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete loan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ScheduleForLoan computes a saved definition, optionally with extras.
// The body is an ExtrasRequest without the loan; an empty body means a
// plain baseline.
func (h *Handler) ScheduleForLoan(w http.ResponseWriter, r *http.Request) {
	loan, err := h.Store.GetLoan(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, sqlite.ErrLoanNotFound) {
		writeError(w, http.StatusNotFound, "Loan not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get loan", err)
		return
	}

	var req ExtrasRequest
	if body, _ := io.ReadAll(r.Body); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	if len(req.Extras) == 0 {
		resp, err := h.baselineResponse(loan.Loan)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp, err := h.recalculatedResponse(loan.Loan, factory.ParseExtras(req.Extras), req.Policy)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// COMPUTATION CORE - Shared by handlers
// =============================================================================

func (h *Handler) baselineResponse(loanJSON factory.LoanJSON) (*ScheduleResponse, error) {
	loan, err := factory.ParseLoan(loanJSON)
	if err != nil {
		return nil, clientErr(err)
	}
	rate, err := finance.PeriodRateFromSpec(loan.RateSpec, loan.Frequency)
	if err != nil {
		return nil, err
	}
	sched, err := finance.GenerateBaseline(loan.Terms, rate)
	if err != nil {
		return nil, err
	}
	return &ScheduleResponse{
		PeriodRate: rate,
		Table:      toRowDTOs(sched),
		Summary:    toSummaryDTO(finance.Summarize(sched)),
	}, nil
}

// compute runs the full pipeline and returns the (possibly recalculated)
// schedule plus the baseline for comparison.
func (h *Handler) compute(loanJSON factory.LoanJSON, extras []finance.ExtraPayment, policyName string) (*finance.Schedule, *finance.Schedule, error) {
	loan, err := factory.ParseLoan(loanJSON)
	if err != nil {
		return nil, nil, clientErr(err)
	}
	rate, err := finance.PeriodRateFromSpec(loan.RateSpec, loan.Frequency)
	if err != nil {
		return nil, nil, err
	}
	baseline, err := finance.GenerateBaseline(loan.Terms, rate)
	if err != nil {
		return nil, nil, err
	}
	if len(extras) == 0 {
		return baseline, baseline, nil
	}

	policy, err := factory.ParsePolicy(policyName)
	if err != nil {
		return nil, nil, clientErr(err)
	}
	recalced, err := finance.Recalculate(loan.Terms, rate, extras, policy)
	if err != nil {
		return nil, nil, err
	}
	return recalced, baseline, nil
}

func (h *Handler) recalculatedResponse(loanJSON factory.LoanJSON, extras []finance.ExtraPayment, policyName string) (*RecalculatedResponse, error) {
	sched, baseline, err := h.compute(loanJSON, extras, policyName)
	if err != nil {
		return nil, err
	}
	baseSum := finance.Summarize(baseline)
	sum := finance.Summarize(sched)
	return &RecalculatedResponse{
		PeriodRate: sched.PeriodRate,
		Policy:     string(sched.Policy),
		Table:      toRowDTOs(sched),
		Summary:    toSummaryDTO(sum),
		Baseline:   toSummaryDTO(baseSum),
		Savings:    toSavingsDTO(finance.CompareSavings(baseSum, sum)),
	}, nil
}

// =============================================================================
// RESPONSE CACHING
// =============================================================================

// cached serves a deterministic POST computation through the response
// cache, keyed by a hash of the request path and body.
func (h *Handler) cached(w http.ResponseWriter, r *http.Request, compute func(body []byte) (any, error)) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	key := cacheKey(r.URL.Path, body)
	if hit, ok := h.Cache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		w.WriteHeader(http.StatusOK)
		io.Copy(w, bytes.NewReader([]byte(hit)))
		return
	}

	resp, err := compute(body)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	encoded, err := json.Marshal(resp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode response", err)
		return
	}
	if err := h.Cache.Set(r.Context(), key, string(encoded), cacheTTL); err != nil {
		log.Printf("Warning: Failed to cache response: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	w.WriteHeader(http.StatusOK)
	w.Write(encoded)
}

func cacheKey(path string, body []byte) string {
	sum := sha256.Sum256(append([]byte(path+"\n"), body...))
	return "finsight:" + hex.EncodeToString(sum[:])
}

// =============================================================================
// HELPERS
// =============================================================================

// clientError tags factory-level parse failures so writeEngineError maps
// them to 400 alongside the engine's own validation errors.
type clientError struct{ err error }

func (e clientError) Error() string { return e.err.Error() }
func (e clientError) Unwrap() error { return e.err }

func clientErr(err error) error { return clientError{err: err} }

func badBody(err error) error {
	return clientError{err: fmt.Errorf("invalid request body: %w", err)}
}

func writeEngineError(w http.ResponseWriter, err error) {
	var ce clientError
	if finance.IsClientError(err) || errors.As(err, &ce) {
		writeError(w, http.StatusBadRequest, "Invalid parameters", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Computation failed", err)
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
