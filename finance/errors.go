/*
errors.go - Centralized error types for the amortization engine

PURPOSE:
  All engine error kinds in one place. Every failure is a deterministic
  input-validation or mathematical-domain failure reported synchronously;
  there are no transient faults and nothing is retryable. A failing call
  never returns a partial schedule.

ERROR CATEGORIES:
  1. Rate errors          - Invalid rate magnitude, compounding, or timing
  2. Loan errors          - Degenerate principal/term combinations
  3. Extra-payment errors - Invalid injections or incompatible cadences

USAGE:
  Callers match on sentinels:

    if errors.Is(err, finance.ErrInvalidRate) { ... }

  or unwrap the structured type to localize the offending field:

    var rateErr *finance.InvalidRateError
    if errors.As(err, &rateErr) { log.Println(rateErr.Field) }

SEE ALSO:
  - rate.go, schedule.go, extras.go: Producers of these errors
  - api/handlers.go: Maps IsClientError to HTTP 400
*/
package finance

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRate is returned for a negative rate, a non-positive
	// compounding count, or an anticipated rate hitting the conversion
	// singularity.
	ErrInvalidRate = errors.New("invalid rate")

	// ErrDegenerateLoan is returned for a non-positive principal, a
	// non-positive period count, or a rate/term combination that leaves
	// the fixed-installment formula undefined.
	ErrDegenerateLoan = errors.New("degenerate loan")

	// ErrInvalidExtraPayment is returned for a non-positive amount, a
	// period outside the schedule horizon, or a cadence incompatible
	// with the payment frequency.
	ErrInvalidExtraPayment = errors.New("invalid extra payment")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the offending field
// =============================================================================

// InvalidRateError localizes which rate component failed validation.
type InvalidRateError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("invalid rate: %s = %v (%s)", e.Field, e.Value, e.Reason)
}

func (e *InvalidRateError) Unwrap() error { return ErrInvalidRate }

// DegenerateLoanError localizes which loan term made the schedule undefined.
type DegenerateLoanError struct {
	Field  string
	Reason string
}

func (e *DegenerateLoanError) Error() string {
	return fmt.Sprintf("degenerate loan: %s (%s)", e.Field, e.Reason)
}

func (e *DegenerateLoanError) Unwrap() error { return ErrDegenerateLoan }

// InvalidExtraPaymentError localizes the offending extra-payment entry.
// Index is the position in the caller's list, -1 when not applicable.
type InvalidExtraPaymentError struct {
	Index  int
	Period int
	Amount float64
	Reason string
}

func (e *InvalidExtraPaymentError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid extra payment #%d (period %d, amount %v): %s",
			e.Index, e.Period, e.Amount, e.Reason)
	}
	return fmt.Sprintf("invalid extra payment (period %d, amount %v): %s",
		e.Period, e.Amount, e.Reason)
}

func (e *InvalidExtraPaymentError) Unwrap() error { return ErrInvalidExtraPayment }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
// Every engine error is; the helper exists so transport layers don't need
// to enumerate sentinels.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRate) ||
		errors.Is(err, ErrDegenerateLoan) ||
		errors.Is(err, ErrInvalidExtraPayment)
}
