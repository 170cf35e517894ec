/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built loan portfolios that populate the database with
	realistic definitions for testing and demos. Each scenario saves a
	small set of loans that demonstrate specific engine features.

AVAILABLE SCENARIOS:

	starter-mortgage:  Single effective-rate mortgage, monthly payments
	rate-quotes:       Same loan quoted nominal, effective and anticipated
	frequency-mix:     One principal paid monthly, quarterly, semiannually
	prepayment-lab:    Short loans sized for extra-payment experiments

HOW SCENARIOS WORK:
 1. Reset database (clear all saved loans)
 2. Save the scenario's loan definitions
 3. Client computes them via POST /api/loans/{id}/schedule

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "rate-quotes"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: writeJSON/writeError helpers
  - factory/loan.go: LoanJSON definitions saved here
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cutiepie25/FinSight/factory"
	"github.com/cutiepie25/FinSight/store/sqlite"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "starter-mortgage",
		Name:        "Starter Mortgage",
		Description: "Single effective-rate mortgage with monthly payments",
	},
	{
		ID:          "rate-quotes",
		Name:        "Rate Quote Comparison",
		Description: "The same loan quoted nominal, effective and anticipated",
	},
	{
		ID:          "frequency-mix",
		Name:        "Payment Frequency Mix",
		Description: "One principal amortized monthly, quarterly and semiannually",
	},
	{
		ID:          "prepayment-lab",
		Name:        "Prepayment Lab",
		Description: "Short loans sized for extra-payment experiments",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario resets the database and loads the requested scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	var err error
	switch req.ScenarioID {
	case "starter-mortgage":
		err = h.loadStarterMortgage(ctx)
	case "rate-quotes":
		err = h.loadRateQuotes(ctx)
	case "frequency-mix":
		err = h.loadFrequencyMix(ctx)
	case "prepayment-lab":
		err = h.loadPrepaymentLab(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "loaded",
		"scenario": req.ScenarioID,
	})
}

// ResetDatabase clears all saved loans.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) saveAll(ctx context.Context, loans []sqlite.SavedLoan) error {
	for _, l := range loans {
		if err := h.Store.SaveLoan(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadStarterMortgage(ctx context.Context) error {
	return h.saveAll(ctx, []sqlite.SavedLoan{
		{
			ID:   "starter-mortgage",
			Name: "Starter Mortgage",
			Loan: factory.LoanJSON{
				Principal:        250000,
				Rate:             11.4,
				RateBasis:        "effective",
				TermMonths:       240,
				PaymentFrequency: "monthly",
				StartDate:        "2026-01-15",
			},
		},
	})
}

func (h *Handler) loadRateQuotes(ctx context.Context) error {
	// Three quotes of the same underlying cost, stated differently.
	// Computing all three shows the normalization pipeline converging.
	return h.saveAll(ctx, []sqlite.SavedLoan{
		{
			ID:   "quote-nominal",
			Name: "Nominal 12% compounded monthly",
			Loan: factory.LoanJSON{
				Principal: 100000, Rate: 12,
				RateBasis: "nominal", RateFrequency: "monthly",
				TermMonths: 12, PaymentFrequency: "monthly",
			},
		},
		{
			ID:   "quote-effective",
			Name: "Effective 12.6825% annual",
			Loan: factory.LoanJSON{
				Principal: 100000, Rate: 12.6825,
				RateBasis:  "effective",
				TermMonths: 12, PaymentFrequency: "monthly",
			},
		},
		{
			ID:   "quote-anticipated",
			Name: "Anticipated 11.2551% annual",
			Loan: factory.LoanJSON{
				Principal: 100000, Rate: 11.2551,
				RateBasis: "effective", RateTiming: "anticipated",
				TermMonths: 12, PaymentFrequency: "monthly",
			},
		},
	})
}

func (h *Handler) loadFrequencyMix(ctx context.Context) error {
	mk := func(id, name, freq string) sqlite.SavedLoan {
		return sqlite.SavedLoan{
			ID:   id,
			Name: name,
			Loan: factory.LoanJSON{
				Principal: 60000, Rate: 10,
				RateBasis:  "effective",
				TermMonths: 36, PaymentFrequency: freq,
			},
		}
	}
	return h.saveAll(ctx, []sqlite.SavedLoan{
		mk("mix-monthly", "36mo @ monthly", "monthly"),
		mk("mix-quarterly", "36mo @ quarterly", "quarterly"),
		mk("mix-semiannual", "36mo @ semiannual", "semiannual"),
	})
}

func (h *Handler) loadPrepaymentLab(ctx context.Context) error {
	return h.saveAll(ctx, []sqlite.SavedLoan{
		{
			ID:   "lab-short",
			Name: "One-year personal loan",
			Loan: factory.LoanJSON{
				Principal: 100000, Rate: 12,
				RateBasis: "nominal", RateFrequency: "monthly",
				TermMonths: 12, PaymentFrequency: "monthly",
				StartDate: "2026-02-01",
			},
		},
		{
			ID:   "lab-car",
			Name: "Car loan, four years",
			Loan: factory.LoanJSON{
				Principal: 250000, Rate: 12,
				RateBasis: "nominal", RateFrequency: "monthly",
				TermMonths: 48, PaymentFrequency: "monthly",
				StartDate: "2026-02-01",
			},
		},
	})
}
