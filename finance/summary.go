package finance

import "github.com/shopspring/decimal"

// =============================================================================
// SUMMARY / SAVINGS CALCULATOR - Aggregation over completed schedules
// =============================================================================

// Summary aggregates a completed schedule into totals.
type Summary struct {
	Principal          decimal.Decimal
	TotalInterest      decimal.Decimal
	TotalPrincipal     decimal.Decimal
	TotalExtra         decimal.Decimal
	TotalPaid          decimal.Decimal
	PeriodCount        int
	AverageInstallment decimal.Decimal
	FinalBalance       decimal.Decimal
}

// Savings is the differential between a baseline schedule and one with
// extraordinary payments applied.
type Savings struct {
	InterestSaved    decimal.Decimal
	TermReducedBy    int
	InterestSavedPct decimal.Decimal
	TermReducedPct   decimal.Decimal
}

// Summarize totals a schedule. TotalPaid is interest + principal + extra.
func Summarize(s *Schedule) Summary {
	sum := Summary{PeriodCount: len(s.Rows)}
	installments := decimal.Zero
	for _, row := range s.Rows {
		sum.TotalInterest = sum.TotalInterest.Add(row.Interest)
		sum.TotalPrincipal = sum.TotalPrincipal.Add(row.Principal)
		sum.TotalExtra = sum.TotalExtra.Add(row.Extra)
		installments = installments.Add(row.Installment)
	}
	sum.Principal = round2(s.Principal)
	sum.TotalPaid = sum.TotalInterest.Add(sum.TotalPrincipal).Add(sum.TotalExtra)
	sum.FinalBalance = s.FinalBalance()
	if sum.PeriodCount > 0 {
		sum.AverageInstallment = installments.Div(decimal.NewFromInt(int64(sum.PeriodCount))).Round(2)
	}
	return sum
}

// CompareSavings computes what the extra payments bought: interest saved
// and periods saved. TermReducedBy is zero under PolicyReduceInstallment
// and non-negative under PolicyReduceTerm.
func CompareSavings(baseline, withExtras Summary) Savings {
	sav := Savings{
		InterestSaved: baseline.TotalInterest.Sub(withExtras.TotalInterest),
		TermReducedBy: baseline.PeriodCount - withExtras.PeriodCount,
	}
	hundred := decimal.NewFromInt(100)
	if baseline.TotalInterest.IsPositive() {
		sav.InterestSavedPct = sav.InterestSaved.Div(baseline.TotalInterest).Mul(hundred).Round(2)
	}
	if baseline.PeriodCount > 0 {
		sav.TermReducedPct = decimal.NewFromInt(int64(sav.TermReducedBy)).
			Div(decimal.NewFromInt(int64(baseline.PeriodCount))).Mul(hundred).Round(2)
	}
	return sav
}
