package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SCHEDULE GENERATOR - Baseline amortization table
// =============================================================================

// Installment computes the fixed French-method installment for amortizing
// balance over periods at periodRate: C = P * [r(1+r)^n] / [(1+r)^n - 1].
// Zero-rate loans amortize linearly. This is the single shared primitive:
// it is re-evaluated against the current balance and remaining term, both
// here and after every extra payment in the recalculation engine.
func Installment(balance, periodRate float64, periods int) float64 {
	if periodRate == 0 {
		return balance / float64(periods)
	}
	pow := math.Pow(1+periodRate, float64(periods))
	return balance * (periodRate * pow) / (pow - 1)
}

// GenerateBaseline produces the period-by-period amortization table for
// the loan with no extraordinary payments.
func GenerateBaseline(terms LoanTerms, periodRate float64) (*Schedule, error) {
	return amortize(terms, periodRate, nil, PolicyNone)
}

func validateTerms(terms LoanTerms, periodRate float64) error {
	if terms.Principal <= 0 {
		return &DegenerateLoanError{Field: "principal", Reason: "must be positive"}
	}
	if terms.Periods <= 0 {
		return &DegenerateLoanError{Field: "periods", Reason: "must be positive"}
	}
	if periodRate < 0 || periodRate >= 1 {
		return &DegenerateLoanError{Field: "period_rate", Reason: "must be in [0, 1)"}
	}
	return nil
}

// amortize is the single forward pass shared by the baseline generator and
// the recalculation engine. extraAt maps period index to the injection
// applied after that period's regular installment; policy decides what is
// re-derived once an injection lands.
//
// The in-progress balance runs unrounded; each row's monetary fields are
// rounded to 2 decimals at storage. The closing row's principal portion is
// clamped to the exact remaining balance so the table closes at 0.00.
func amortize(terms LoanTerms, periodRate float64, extraAt map[int]float64, policy RecalculationPolicy) (*Schedule, error) {
	if err := validateTerms(terms, periodRate); err != nil {
		return nil, err
	}

	balance := terms.Principal
	installment := Installment(balance, periodRate, terms.Periods)
	date := terms.StartDate

	// Under ReduceTerm the table can only shrink, but rounding drift gets
	// a hard stop at twice the original term.
	maxPeriods := terms.Periods
	if policy == PolicyReduceTerm {
		maxPeriods = terms.Periods * 2
	}

	sched := &Schedule{
		Policy:     policy,
		PeriodRate: periodRate,
		Principal:  terms.Principal,
	}

	for t := 1; t <= maxPeriods && balance > closeEpsilon; t++ {
		interest := balance * periodRate
		principal := installment - interest
		rowInstallment := installment
		extra := extraAt[t]

		newBalance := balance - principal - extra
		lastPlanned := policy != PolicyReduceTerm && t == terms.Periods
		if lastPlanned || newBalance <= closeEpsilon {
			// Clamp the regular principal portion so interest, principal
			// and extra together close the balance exactly.
			principal = balance - extra
			rowInstallment = interest + principal
			newBalance = 0
		}
		balance = newBalance

		if !date.IsZero() {
			date = date.AddDate(0, 0, terms.Frequency.Days())
		}

		sched.Rows = append(sched.Rows, ScheduleRow{
			Period:      t,
			Date:        date,
			Installment: round2(rowInstallment),
			Interest:    round2(interest),
			Principal:   round2(principal),
			Extra:       round2(extra),
			Balance:     round2(math.Max(balance, 0)),
		})
		if extra > 0 {
			sched.Extras = append(sched.Extras, ExtraPayment{Period: t, Amount: extra})
		}

		// Re-derive the forward plan after an injection.
		if extra > 0 && balance > closeEpsilon && policy == PolicyReduceInstallment {
			if remaining := terms.Periods - t; remaining > 0 {
				installment = Installment(balance, periodRate, remaining)
			}
		}
	}

	if len(sched.Rows) > 0 && balance <= closeEpsilon {
		// Force the stored closing balance to exactly zero.
		sched.Rows[len(sched.Rows)-1].Balance = decimal.Zero
	}
	return sched, nil
}
