package finance

import (
	"fmt"
	"math"
)

// =============================================================================
// PAYMENT FREQUENCY - Period length in months and commercial days
// =============================================================================

// PaymentFrequency enumerates the supported payment cadences. Each variant
// carries its length in months and in days under the 360-day commercial
// year convention. Both are used for rate-frequency conversion and for
// validating extra-payment cadences.
type PaymentFrequency string

const (
	FreqDaily       PaymentFrequency = "daily"
	FreqBiweekly    PaymentFrequency = "biweekly"
	FreqMonthly     PaymentFrequency = "monthly"
	FreqBimonthly   PaymentFrequency = "bimonthly"
	FreqQuarterly   PaymentFrequency = "quarterly"
	FreqFourMonthly PaymentFrequency = "four_monthly"
	FreqSemiannual  PaymentFrequency = "semiannual"
	FreqAnnual      PaymentFrequency = "annual"
)

var frequencyMonths = map[PaymentFrequency]float64{
	FreqDaily:       1.0 / 30.0,
	FreqBiweekly:    0.5,
	FreqMonthly:     1,
	FreqBimonthly:   2,
	FreqQuarterly:   3,
	FreqFourMonthly: 4,
	FreqSemiannual:  6,
	FreqAnnual:      12,
}

var frequencyDays = map[PaymentFrequency]int{
	FreqDaily:       1,
	FreqBiweekly:    15,
	FreqMonthly:     30,
	FreqBimonthly:   60,
	FreqQuarterly:   90,
	FreqFourMonthly: 120,
	FreqSemiannual:  180,
	FreqAnnual:      360,
}

// Frequencies returns all supported frequencies in ascending period length.
func Frequencies() []PaymentFrequency {
	return []PaymentFrequency{
		FreqDaily, FreqBiweekly, FreqMonthly, FreqBimonthly,
		FreqQuarterly, FreqFourMonthly, FreqSemiannual, FreqAnnual,
	}
}

// ParseFrequency parses a frequency name.
func ParseFrequency(s string) (PaymentFrequency, error) {
	f := PaymentFrequency(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown payment frequency %q", s)
	}
	return f, nil
}

func (f PaymentFrequency) Valid() bool {
	_, ok := frequencyMonths[f]
	return ok
}

// Months returns the period length in months.
func (f PaymentFrequency) Months() float64 { return frequencyMonths[f] }

// Days returns the period length in days (360-day commercial year).
func (f PaymentFrequency) Days() int { return frequencyDays[f] }

// PeriodsForTerm returns how many payment periods fit in a term expressed
// in months. The term must cover at least one full period.
func (f PaymentFrequency) PeriodsForTerm(termMonths float64) (int, error) {
	if termMonths < f.Months() {
		return 0, fmt.Errorf("term of %.2f months is shorter than one %s period", termMonths, f)
	}
	return int(termMonths / f.Months()), nil
}

// CadenceInterval returns how many payment periods separate consecutive
// occurrences of a cadence expressed as a frequency. The cadence must be
// at least as long as the payment period and an exact multiple of it.
func (f PaymentFrequency) CadenceInterval(cadence PaymentFrequency) (int, error) {
	if !cadence.Valid() {
		return 0, fmt.Errorf("unknown cadence frequency %q", string(cadence))
	}
	ratio := cadence.Months() / f.Months()
	if ratio < 1 {
		return 0, fmt.Errorf("cadence %s is shorter than payment frequency %s", cadence, f)
	}
	interval := math.Round(ratio)
	if math.Abs(ratio-interval) > 1e-9 {
		return 0, fmt.Errorf("cadence %s is not an exact multiple of payment frequency %s", cadence, f)
	}
	return int(interval), nil
}
