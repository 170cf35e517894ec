package factory_test

import (
	"math"
	"testing"

	"github.com/cutiepie25/FinSight/factory"
	"github.com/cutiepie25/FinSight/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoan_Defaults(t *testing.T) {
	// GIVEN: A minimal definition with only principal, rate and term
	// WHEN: Parsing
	// THEN: Effective/due/annual/monthly defaults apply and the term
	//       converts to monthly periods

	loan, err := factory.ParseLoan(factory.LoanJSON{
		Principal:  100000,
		Rate:       12,
		TermMonths: 24,
	})
	require.NoError(t, err)

	assert.Equal(t, finance.RateEffective, loan.RateSpec.Basis)
	assert.Equal(t, finance.TimingDue, loan.RateSpec.Timing)
	assert.Equal(t, 0.12, loan.RateSpec.Rate)
	assert.Zero(t, loan.RateSpec.CompoundingMonths)
	assert.Equal(t, finance.FreqMonthly, loan.Frequency)
	assert.Equal(t, 24, loan.Terms.Periods)
}

func TestParseLoan_QuarterlyTerm(t *testing.T) {
	loan, err := factory.ParseLoan(factory.LoanJSON{
		Principal:        50000,
		Rate:             10,
		TermMonths:       36,
		PaymentFrequency: "quarterly",
		StartDate:        "2025-03-01",
	})
	require.NoError(t, err)

	assert.Equal(t, 12, loan.Terms.Periods, "36 months = 12 quarters")
	assert.Equal(t, finance.FreqQuarterly, loan.Terms.Frequency)
	assert.Equal(t, "2025-03-01", loan.Terms.StartDate.Format("2006-01-02"))
}

func TestParseLoan_NominalMonthlyCompounding(t *testing.T) {
	loan, err := factory.ParseLoan(factory.LoanJSON{
		Principal:     100000,
		Rate:          12,
		RateBasis:     "nominal",
		RateFrequency: "monthly",
		TermMonths:    12,
	})
	require.NoError(t, err)

	assert.Equal(t, finance.RateNominal, loan.RateSpec.Basis)
	assert.Equal(t, 1.0, loan.RateSpec.CompoundingMonths)

	// End to end: this definition normalizes to exactly 1% per month.
	rate, err := finance.PeriodRateFromSpec(loan.RateSpec, loan.Frequency)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, rate, 1e-9)
}

func TestParseLoan_NominalAnnualCompounding(t *testing.T) {
	// GIVEN: A nominal quote with an explicit annual compounding frequency
	// WHEN: Parsing and normalizing
	// THEN: The quote compounds once per year, not the monthly default

	loan, err := factory.ParseLoan(factory.LoanJSON{
		Principal:     100000,
		Rate:          12,
		RateBasis:     "nominal",
		RateFrequency: "annual",
		TermMonths:    12,
	})
	require.NoError(t, err)
	assert.Equal(t, 12.0, loan.RateSpec.CompoundingMonths)

	// (1 + 0.12/1)^1 - 1 = 12% effective annual, then to monthly.
	rate, err := finance.PeriodRateFromSpec(loan.RateSpec, loan.Frequency)
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(1.12, 1.0/12)-1, rate, 1e-9)
}

func TestParseLoan_Invalid(t *testing.T) {
	cases := []struct {
		name string
		j    factory.LoanJSON
	}{
		{"zero principal", factory.LoanJSON{Rate: 10, TermMonths: 12}},
		{"rate above 100", factory.LoanJSON{Principal: 1000, Rate: 150, TermMonths: 12}},
		{"unknown frequency", factory.LoanJSON{Principal: 1000, Rate: 10, TermMonths: 12, PaymentFrequency: "fortnightly"}},
		{"term shorter than period", factory.LoanJSON{Principal: 1000, Rate: 10, TermMonths: 2, PaymentFrequency: "quarterly"}},
		{"bad basis", factory.LoanJSON{Principal: 1000, Rate: 10, TermMonths: 12, RateBasis: "simple"}},
		{"bad timing", factory.LoanJSON{Principal: 1000, Rate: 10, TermMonths: 12, RateTiming: "deferred"}},
		{"bad date", factory.LoanJSON{Principal: 1000, Rate: 10, TermMonths: 12, StartDate: "15/01/2025"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := factory.ParseLoan(tc.j)
			assert.Error(t, err)
		})
	}
}

func TestExpandRecurring_ByFrequency(t *testing.T) {
	loan, err := factory.ParseLoan(factory.LoanJSON{
		Principal: 100000, Rate: 12, TermMonths: 12,
	})
	require.NoError(t, err)

	extras, err := factory.ExpandRecurring(factory.RecurringJSON{
		Amount:           5000,
		CadenceFrequency: "quarterly",
	}, loan)
	require.NoError(t, err)
	require.Len(t, extras, 4)
	assert.Equal(t, 3, extras[0].Period)
}

func TestParsePolicy(t *testing.T) {
	p, err := factory.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, finance.PolicyReduceInstallment, p, "default policy")

	p, err = factory.ParsePolicy("reduce_term")
	require.NoError(t, err)
	assert.Equal(t, finance.PolicyReduceTerm, p)

	_, err = factory.ParsePolicy("reduce_everything")
	assert.Error(t, err)
}
