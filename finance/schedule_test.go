package finance_test

import (
	"errors"
	"testing"
	"time"

	"github.com/cutiepie25/FinSight/finance"
	"github.com/shopspring/decimal"
)

func monthlyTerms(principal float64, periods int) finance.LoanTerms {
	return finance.LoanTerms{
		Principal: principal,
		Periods:   periods,
		Frequency: finance.FreqMonthly,
		StartDate: time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// =============================================================================
// FIXED-INSTALLMENT FORMULA
// =============================================================================

func TestInstallment_Standard(t *testing.T) {
	// GIVEN: 100000 at 1% per period over 12 periods
	// WHEN: Computing the French fixed installment
	// THEN: C = 8884.88 (to the cent)

	c := finance.Installment(100000, 0.01, 12)
	if !approx(c, 8884.88, 0.005) {
		t.Errorf("expected 8884.88, got %v", c)
	}
}

func TestInstallment_ZeroRate(t *testing.T) {
	// Zero-rate loans amortize linearly.
	c := finance.Installment(1200, 0, 12)
	if c != 100 {
		t.Errorf("expected 100, got %v", c)
	}
}

// =============================================================================
// BASELINE GENERATION
// =============================================================================

func TestGenerateBaseline_StandardLoan(t *testing.T) {
	// GIVEN: 100000 at 12% nominal annual compounded monthly, 12 monthly periods
	// WHEN: Generating the baseline schedule
	// THEN: Installment 8884.88, row-1 interest 1000.00, final balance 0.00,
	//       total interest about 6618.55

	rate, err := finance.PeriodRateFromSpec(finance.RateSpec{
		Rate:              0.12,
		Basis:             finance.RateNominal,
		CompoundingMonths: 1,
	}, finance.FreqMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sched, err := finance.GenerateBaseline(monthlyTerms(100000, 12), rate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := sched.PeriodCount(); got != 12 {
		t.Fatalf("expected 12 periods, got %d", got)
	}
	if !sched.Rows[0].Installment.Equal(money(8884.88)) {
		t.Errorf("expected installment 8884.88, got %v", sched.Rows[0].Installment)
	}
	if !sched.Rows[0].Interest.Equal(money(1000.00)) {
		t.Errorf("expected row-1 interest 1000.00, got %v", sched.Rows[0].Interest)
	}
	if !sched.FinalBalance().IsZero() {
		t.Errorf("expected final balance 0.00, got %v", sched.FinalBalance())
	}

	sum := finance.Summarize(sched)
	if !approx(sum.TotalInterest.InexactFloat64(), 6618.55, 0.05) {
		t.Errorf("expected total interest near 6618.55, got %v", sum.TotalInterest)
	}
}

func TestGenerateBaseline_BalanceMonotonicAndConserved(t *testing.T) {
	// GIVEN: Any baseline schedule
	// THEN: Balances are non-increasing, every row satisfies
	//       installment = interest + principal, and the principal
	//       portions sum back to the loan amount

	sched, err := finance.GenerateBaseline(monthlyTerms(250000, 48), 0.0095)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prev := decimal.NewFromFloat(250000)
	totalPrincipal := decimal.Zero
	for i, row := range sched.Rows {
		if row.Balance.GreaterThan(prev) {
			t.Errorf("row %d: balance %v grew from %v", row.Period, row.Balance, prev)
		}
		prev = row.Balance

		identity := row.Interest.Add(row.Principal)
		if !row.Installment.Sub(identity).Abs().LessThanOrEqual(money(0.01)) {
			t.Errorf("row %d: installment %v != interest+principal %v", i+1, row.Installment, identity)
		}
		totalPrincipal = totalPrincipal.Add(row.Principal)
	}

	diff := totalPrincipal.Sub(decimal.NewFromInt(250000)).Abs()
	if diff.GreaterThan(money(0.25)) {
		t.Errorf("principal not conserved: sum %v", totalPrincipal)
	}
	if !sched.FinalBalance().IsZero() {
		t.Errorf("expected exact close, got %v", sched.FinalBalance())
	}
}

func TestGenerateBaseline_ZeroRate(t *testing.T) {
	// GIVEN: An interest-free loan
	// THEN: Twelve equal installments of pure principal

	sched, err := finance.GenerateBaseline(monthlyTerms(1200, 12), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sched.PeriodCount() != 12 {
		t.Fatalf("expected 12 periods, got %d", sched.PeriodCount())
	}
	for _, row := range sched.Rows {
		if !row.Installment.Equal(money(100)) {
			t.Errorf("row %d: expected installment 100, got %v", row.Period, row.Installment)
		}
		if !row.Interest.IsZero() {
			t.Errorf("row %d: expected zero interest, got %v", row.Period, row.Interest)
		}
	}
}

func TestGenerateBaseline_PaymentDates(t *testing.T) {
	// Payment dates advance by the frequency's commercial-day length.
	terms := monthlyTerms(10000, 3)
	sched, err := finance.GenerateBaseline(terms, 0.01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := terms.StartDate
	for _, row := range sched.Rows {
		want = want.AddDate(0, 0, finance.FreqMonthly.Days())
		if !row.Date.Equal(want) {
			t.Errorf("row %d: expected date %v, got %v", row.Period, want, row.Date)
		}
	}
}

func TestGenerateBaseline_Degenerate(t *testing.T) {
	cases := []struct {
		name  string
		terms finance.LoanTerms
		rate  float64
	}{
		{"zero principal", monthlyTerms(0, 12), 0.01},
		{"negative principal", monthlyTerms(-5000, 12), 0.01},
		{"zero periods", monthlyTerms(10000, 0), 0.01},
		{"negative rate", monthlyTerms(10000, 12), -0.01},
		{"rate at one", monthlyTerms(10000, 12), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sched, err := finance.GenerateBaseline(tc.terms, tc.rate)
			if !errors.Is(err, finance.ErrDegenerateLoan) {
				t.Errorf("expected ErrDegenerateLoan, got %v", err)
			}
			if sched != nil {
				t.Errorf("no schedule should be returned on failure")
			}
		})
	}
}
