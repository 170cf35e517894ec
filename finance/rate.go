package finance

import "math"

// =============================================================================
// RATE CONVERTER - Pure transformations between rate conventions
// =============================================================================
//
// All rate transformations reduce to one exponential-equivalence formula
// parameterized by a period-length ratio (ConvertToFrequency). Annual to
// monthly, monthly to quarterly, etc. are all instances of it, which
// guarantees conversions round-trip within floating-point tolerance.

// NominalToEffectiveAnnual converts a nominal annual rate compounded m
// times per year to its effective annual equivalent: (1 + i/m)^m - 1.
func NominalToEffectiveAnnual(nominal float64, compoundingsPerYear int) (float64, error) {
	if nominal < 0 {
		return 0, &InvalidRateError{Field: "nominal", Value: nominal, Reason: "must be non-negative"}
	}
	if compoundingsPerYear <= 0 {
		return 0, &InvalidRateError{Field: "compoundings_per_year", Value: float64(compoundingsPerYear), Reason: "must be positive"}
	}
	m := float64(compoundingsPerYear)
	return math.Pow(1+nominal/m, m) - 1, nil
}

// AnticipatedToDue converts an anticipated (discount) rate to its due
// equivalent: ia / (1 + ia). Negative rates are rejected, which also
// covers the ia <= -1 division singularity.
func AnticipatedToDue(anticipated float64) (float64, error) {
	if anticipated < 0 {
		return 0, &InvalidRateError{Field: "anticipated", Value: anticipated, Reason: "must be non-negative"}
	}
	return anticipated / (1 + anticipated), nil
}

// ConvertToFrequency converts an effective rate quoted for a period of
// sourceMonths to the equivalent rate for a period of targetMonths:
// (1 + r)^(target/source) - 1.
func ConvertToFrequency(rate, sourceMonths, targetMonths float64) (float64, error) {
	if rate < 0 {
		return 0, &InvalidRateError{Field: "rate", Value: rate, Reason: "must be non-negative"}
	}
	if sourceMonths <= 0 {
		return 0, &InvalidRateError{Field: "source_months", Value: sourceMonths, Reason: "must be positive"}
	}
	if targetMonths <= 0 {
		return 0, &InvalidRateError{Field: "target_months", Value: targetMonths, Reason: "must be positive"}
	}
	return math.Pow(1+rate, targetMonths/sourceMonths) - 1, nil
}

// PeriodRateFromSpec runs the full normalization pipeline: nominal rates
// become effective annual, anticipated rates become due, and the result
// is converted to the loan's payment frequency.
func PeriodRateFromSpec(spec RateSpec, freq PaymentFrequency) (float64, error) {
	if !freq.Valid() {
		return 0, &InvalidRateError{Field: "payment_frequency", Reason: "unknown frequency"}
	}
	if spec.Rate < 0 {
		return 0, &InvalidRateError{Field: "rate", Value: spec.Rate, Reason: "must be non-negative"}
	}
	if spec.Rate > 1 {
		return 0, &InvalidRateError{Field: "rate", Value: spec.Rate, Reason: "must be a decimal fraction (0.12 for 12%)"}
	}

	rate := spec.Rate
	sourceMonths := 12.0

	switch spec.Basis {
	case RateNominal:
		m, err := compoundingsPerYear(spec.CompoundingMonths)
		if err != nil {
			return 0, err
		}
		rate, err = NominalToEffectiveAnnual(rate, m)
		if err != nil {
			return 0, err
		}
	case RateEffective, "":
		if spec.CompoundingMonths > 0 {
			sourceMonths = spec.CompoundingMonths
		}
	default:
		return 0, &InvalidRateError{Field: "basis", Reason: "must be nominal or effective"}
	}

	switch spec.Timing {
	case TimingAnticipated:
		var err error
		rate, err = AnticipatedToDue(rate)
		if err != nil {
			return 0, err
		}
	case TimingDue, "":
	default:
		return 0, &InvalidRateError{Field: "timing", Reason: "must be anticipated or due"}
	}

	return ConvertToFrequency(rate, sourceMonths, freq.Months())
}

// compoundingsPerYear derives the nominal compounding count from the
// compounding period length. Zero months means annual quotation with the
// conventional monthly compounding.
func compoundingsPerYear(compoundingMonths float64) (int, error) {
	if compoundingMonths == 0 {
		return 12, nil
	}
	if compoundingMonths < 0 {
		return 0, &InvalidRateError{Field: "compounding_months", Value: compoundingMonths, Reason: "must be positive"}
	}
	m := 12 / compoundingMonths
	if m < 1 || math.Abs(m-math.Round(m)) > 1e-9 {
		return 0, &InvalidRateError{Field: "compounding_months", Value: compoundingMonths, Reason: "must divide a 12-month year evenly"}
	}
	return int(math.Round(m)), nil
}
