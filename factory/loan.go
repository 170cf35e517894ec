/*
Package factory converts JSON loan definitions into engine inputs.

PURPOSE:
  The API and the saved-loan store speak JSON: percent rates, frequency
  names, a term in months. The engine speaks normalized value types:
  decimal-fraction rates, period counts, RateSpec/LoanTerms. This package
  is the translation and validation layer between the two, so the engine
  itself never parses strings.

WHY JSON?
  - The dashboard posts loan parameters as-is
  - Saved loans round-trip through the store without re-mapping
  - Demo scenarios are plain literals

JSON SCHEMA:
  {
    "name": "first-mortgage",
    "principal": 150000,
    "rate": 15,
    "rate_basis": "effective",
    "rate_timing": "due",
    "rate_frequency": "annual",
    "term_months": 36,
    "payment_frequency": "monthly",
    "start_date": "2025-01-15"
  }

DEFAULTS:
  rate_basis "effective", rate_timing "due", rate_frequency "annual",
  payment_frequency "monthly".

SEE ALSO:
  - finance/rate.go: Consumes the produced RateSpec
  - api/dto.go: Embeds LoanJSON in request bodies
  - store/sqlite: Persists LoanJSON fields as a saved loan
*/
package factory

import (
	"fmt"
	"time"

	"github.com/cutiepie25/FinSight/finance"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// LoanJSON is the wire form of a loan definition. Rate is a percentage
// (12 for 12%), unlike the engine's decimal fractions.
type LoanJSON struct {
	Name             string  `json:"name,omitempty"`
	Principal        float64 `json:"principal"`
	Rate             float64 `json:"rate"`
	RateBasis        string  `json:"rate_basis,omitempty"`
	RateTiming       string  `json:"rate_timing,omitempty"`
	RateFrequency    string  `json:"rate_frequency,omitempty"`
	TermMonths       float64 `json:"term_months"`
	PaymentFrequency string  `json:"payment_frequency,omitempty"`
	StartDate        string  `json:"start_date,omitempty"`
}

// ExtraJSON is one explicit extra payment.
type ExtraJSON struct {
	Period int     `json:"period"`
	Amount float64 `json:"amount"`
}

// RecurringJSON describes a recurring extra-payment cadence, either as an
// interval in periods or as a frequency name (e.g. "quarterly").
type RecurringJSON struct {
	Amount           float64 `json:"amount"`
	Interval         int     `json:"interval,omitempty"`
	StartPeriod      int     `json:"start_period,omitempty"`
	EndPeriod        int     `json:"end_period,omitempty"`
	CadenceFrequency string  `json:"cadence_frequency,omitempty"`
}

// =============================================================================
// PARSING
// =============================================================================

// Loan is the validated, engine-ready form of a LoanJSON.
type Loan struct {
	Name      string
	RateSpec  finance.RateSpec
	Terms     finance.LoanTerms
	Frequency finance.PaymentFrequency
}

// ParseLoan validates a JSON loan definition and produces the engine
// inputs. The percent rate becomes a decimal fraction; the term in months
// becomes a period count for the payment frequency.
func ParseLoan(j LoanJSON) (*Loan, error) {
	if j.Principal <= 0 {
		return nil, fmt.Errorf("principal must be positive, got %v", j.Principal)
	}
	if j.Rate < 0 || j.Rate > 100 {
		return nil, fmt.Errorf("rate must be a percentage between 0 and 100, got %v", j.Rate)
	}

	freqName := j.PaymentFrequency
	if freqName == "" {
		freqName = string(finance.FreqMonthly)
	}
	freq, err := finance.ParseFrequency(freqName)
	if err != nil {
		return nil, err
	}

	periods, err := freq.PeriodsForTerm(j.TermMonths)
	if err != nil {
		return nil, err
	}

	spec := finance.RateSpec{Rate: j.Rate / 100}

	switch j.RateBasis {
	case "", string(finance.RateEffective):
		spec.Basis = finance.RateEffective
	case string(finance.RateNominal):
		spec.Basis = finance.RateNominal
	default:
		return nil, fmt.Errorf("rate_basis must be %q or %q, got %q",
			finance.RateNominal, finance.RateEffective, j.RateBasis)
	}

	switch j.RateTiming {
	case "", string(finance.TimingDue):
		spec.Timing = finance.TimingDue
	case string(finance.TimingAnticipated):
		spec.Timing = finance.TimingAnticipated
	default:
		return nil, fmt.Errorf("rate_timing must be %q or %q, got %q",
			finance.TimingAnticipated, finance.TimingDue, j.RateTiming)
	}

	if j.RateFrequency != "" {
		// Always recorded, so nominal + annual means one compounding per
		// year rather than the monthly default for omitted frequencies.
		rateFreq, err := finance.ParseFrequency(j.RateFrequency)
		if err != nil {
			return nil, err
		}
		spec.CompoundingMonths = rateFreq.Months()
	}

	var start time.Time
	if j.StartDate != "" {
		start, err = time.Parse("2006-01-02", j.StartDate)
		if err != nil {
			return nil, fmt.Errorf("start_date must be YYYY-MM-DD, got %q", j.StartDate)
		}
	}

	return &Loan{
		Name:     j.Name,
		RateSpec: spec,
		Terms: finance.LoanTerms{
			Principal: j.Principal,
			Periods:   periods,
			Frequency: freq,
			StartDate: start,
		},
		Frequency: freq,
	}, nil
}

// ParseExtras converts explicit extra-payment entries.
func ParseExtras(entries []ExtraJSON) []finance.ExtraPayment {
	extras := make([]finance.ExtraPayment, len(entries))
	for i, e := range entries {
		extras[i] = finance.ExtraPayment{Period: e.Period, Amount: e.Amount}
	}
	return extras
}

// ExpandRecurring materializes a recurring-cadence definition against a
// loan's horizon, accepting either an interval in periods or a cadence
// frequency name.
func ExpandRecurring(j RecurringJSON, loan *Loan) ([]finance.ExtraPayment, error) {
	if j.CadenceFrequency != "" {
		cadence, err := finance.ParseFrequency(j.CadenceFrequency)
		if err != nil {
			return nil, err
		}
		return finance.ExpandByFrequency(j.Amount, cadence, loan.Frequency, loan.Terms.Periods)
	}
	return finance.ExpandRecurring(finance.RecurringSpec{
		Amount:      j.Amount,
		Interval:    j.Interval,
		StartPeriod: j.StartPeriod,
		EndPeriod:   j.EndPeriod,
	}, loan.Terms.Periods)
}

// ParsePolicy maps the wire policy name, defaulting to reduce-installment.
func ParsePolicy(s string) (finance.RecalculationPolicy, error) {
	switch s {
	case "", string(finance.PolicyReduceInstallment):
		return finance.PolicyReduceInstallment, nil
	case string(finance.PolicyReduceTerm):
		return finance.PolicyReduceTerm, nil
	default:
		return "", fmt.Errorf("policy must be %q or %q, got %q",
			finance.PolicyReduceInstallment, finance.PolicyReduceTerm, s)
	}
}
