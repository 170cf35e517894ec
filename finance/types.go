/*
Package finance implements the amortization and rate-conversion engine for
fixed-installment ("French method") loans.

PURPOSE:
  This package contains the pure computational core: interest-rate
  normalization across compounding conventions, baseline amortization
  schedules, recalculation under extraordinary principal payments, and
  summary/savings aggregation. It has no I/O, no persistence, and no
  shared state; every function is deterministic over its inputs.

KEY CONCEPTS IN THIS FILE (types.go):
  - RateSpec: How the input rate is quoted (nominal/effective, timing,
    compounding period)
  - LoanTerms: Principal, period count, payment frequency, start date
  - ScheduleRow / Schedule: The amortization table and its rows
  - ExtraPayment / RecurringSpec: Out-of-band principal injections
  - RecalculationPolicy: What to shrink when an extra payment lands

DESIGN PRINCIPLES:
  1. Precision: Stored monetary values use decimal.Decimal, rounded to
     2 places (half-up) at the point of storage. Intermediate accrual
     runs unrounded so rounding error never compounds period over period.
  2. Immutability: Schedules are built in one pass and never mutated.
  3. One primitive: The fixed-installment formula is a single function
     re-evaluated against the current balance and remaining term, shared
     by the baseline generator and the recalculation engine.

USAGE:
  rate, err := finance.PeriodRateFromSpec(spec, finance.FreqMonthly)
  sched, err := finance.GenerateBaseline(terms, rate)
  summary := finance.Summarize(sched)

SEE ALSO:
  - rate.go: Rate conversion primitives
  - schedule.go: Baseline table generation
  - recalc.go: Extraordinary-payment recalculation
  - summary.go: Totals and savings comparison
*/
package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RATE SPECIFICATION
// =============================================================================

type RateBasis string

const (
	RateNominal   RateBasis = "nominal"
	RateEffective RateBasis = "effective"
)

type RateTiming string

const (
	TimingAnticipated RateTiming = "anticipated"
	TimingDue         RateTiming = "due"
)

// RateSpec describes how an input interest rate is quoted. The magnitude is
// a decimal fraction (0.12 for 12%). CompoundingMonths is the length of the
// compounding/quote period in months; zero means the rate is annual.
type RateSpec struct {
	Rate              float64
	Basis             RateBasis
	Timing            RateTiming
	CompoundingMonths float64
}

// =============================================================================
// LOAN TERMS
// =============================================================================

// LoanTerms is the immutable input to schedule generation.
type LoanTerms struct {
	Principal float64
	Periods   int
	Frequency PaymentFrequency
	StartDate time.Time
}

// =============================================================================
// EXTRAORDINARY PAYMENTS
// =============================================================================

// ExtraPayment is a single out-of-band principal injection. Period is the
// 1-based payment period the injection lands on.
type ExtraPayment struct {
	Period int
	Amount float64
}

// RecurringSpec describes a recurring cadence of equal extra payments.
// StartPeriod defaults to Interval when zero; EndPeriod zero means the
// cadence runs to the schedule horizon.
type RecurringSpec struct {
	Amount      float64
	Interval    int
	StartPeriod int
	EndPeriod   int
}

// =============================================================================
// RECALCULATION POLICY
// =============================================================================

// RecalculationPolicy selects what is re-derived after an extra payment:
// the installment (term fixed) or the remaining term (installment fixed).
type RecalculationPolicy string

const (
	PolicyNone              RecalculationPolicy = ""
	PolicyReduceInstallment RecalculationPolicy = "reduce_installment"
	PolicyReduceTerm        RecalculationPolicy = "reduce_term"
)

func (p RecalculationPolicy) Valid() bool {
	return p == PolicyReduceInstallment || p == PolicyReduceTerm
}

// =============================================================================
// SCHEDULE
// =============================================================================

// ScheduleRow is one period of an amortization table. All monetary fields
// are rounded to 2 decimals at construction. Invariants:
//   - Installment = Interest + Principal (every row; the closing row's
//     principal is clamped so the balance closes at exactly zero)
//   - Interest_t = Balance_{t-1} x periodRate
//   - Balance_t  = Balance_{t-1} - Principal_t - Extra_t, never negative
type ScheduleRow struct {
	Period      int
	Date        time.Time
	Installment decimal.Decimal
	Interest    decimal.Decimal
	Principal   decimal.Decimal
	Extra       decimal.Decimal
	Balance     decimal.Decimal
}

// Schedule is an ordered amortization table plus the policy and extra
// payments that produced it. Built in one pass, immutable afterward.
type Schedule struct {
	Rows       []ScheduleRow
	Policy     RecalculationPolicy
	Extras     []ExtraPayment
	PeriodRate float64
	Principal  float64
}

// PeriodCount returns the number of periods in the schedule.
func (s *Schedule) PeriodCount() int { return len(s.Rows) }

// FinalBalance returns the balance after the last period.
func (s *Schedule) FinalBalance() decimal.Decimal {
	if len(s.Rows) == 0 {
		return decimal.Zero
	}
	return s.Rows[len(s.Rows)-1].Balance
}

// =============================================================================
// MONEY ROUNDING
// =============================================================================

// closeEpsilon is the balance below which a schedule is considered closed.
const closeEpsilon = 0.01

// round2 converts an unrounded intermediate value to a stored monetary
// value: 2 decimal places, half-up.
func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// MustDecimal parses a decimal literal, returning zero on failure.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
