package finance

import "math"

// =============================================================================
// RECALCULATION ENGINE - Schedules with extraordinary payments
// =============================================================================

// Recalculate re-derives the schedule with the given injections applied.
// Each extra payment is pure deleveraging: it is subtracted from the
// balance after the period's regular interest/principal split, never run
// through the split itself. Immediately afterward the forward plan is
// re-derived according to the policy:
//
//   - PolicyReduceInstallment: the installment is recomputed against the
//     new balance and the unchanged remaining term.
//   - PolicyReduceTerm: the installment is unchanged and the schedule
//     simply closes earlier. The closed-form remaining term (see
//     RemainingTerm) predicts the close; the actual closing period is
//     settled by forward simulation so 2-decimal rounding can never leave
//     the table off by a period.
//
// An extra payment large enough to retire the balance closes the schedule
// at that period under either policy. Under PolicyReduceTerm, extras
// scheduled beyond the shortened term refer to periods that no longer
// exist and are silently skipped.
func Recalculate(terms LoanTerms, periodRate float64, extras []ExtraPayment, policy RecalculationPolicy) (*Schedule, error) {
	if err := validateTerms(terms, periodRate); err != nil {
		return nil, err
	}
	if !policy.Valid() {
		return nil, &DegenerateLoanError{Field: "policy", Reason: "must be reduce_installment or reduce_term"}
	}
	if err := ValidateExtras(extras, terms.Periods); err != nil {
		return nil, err
	}
	return amortize(terms, periodRate, mergeExtras(sortExtras(extras)), policy)
}

// RemainingTerm returns the number of periods needed to amortize balance
// at a fixed installment and rate: ceil(log(C / (C - r*B)) / log(1+r)).
// Zero-rate loans divide linearly. The installment must actually cover
// the period interest, otherwise the balance never amortizes.
func RemainingTerm(balance, periodRate, installment float64) (int, error) {
	if balance <= closeEpsilon {
		return 0, nil
	}
	if installment <= 0 {
		return 0, &DegenerateLoanError{Field: "installment", Reason: "must be positive"}
	}
	if periodRate == 0 {
		return int(math.Ceil(balance/installment - 1e-9)), nil
	}
	if installment <= periodRate*balance {
		return 0, &DegenerateLoanError{Field: "installment", Reason: "does not cover period interest"}
	}
	n := math.Log(installment/(installment-periodRate*balance)) / math.Log(1+periodRate)
	// Guard against an exact integer term landing a hair above it in
	// floating point and ceiling to an extra period.
	return int(math.Ceil(n - 1e-9)), nil
}
