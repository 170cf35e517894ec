package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/cutiepie25/FinSight/export"
	"github.com/cutiepie25/FinSight/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	// GIVEN: A small baseline schedule
	// WHEN: Exporting to CSV
	// THEN: Header plus one record per period, money with two decimals

	terms := finance.LoanTerms{
		Principal: 1200,
		Periods:   3,
		Frequency: finance.FreqMonthly,
		StartDate: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	sched, err := finance.GenerateBaseline(terms, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, sched))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header + 3 rows")

	assert.Equal(t, []string{"period", "date", "installment", "interest", "principal", "extra", "balance"}, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "2025-07-01", records[1][1])
	assert.Equal(t, "400.00", records[1][2])
	assert.Equal(t, "0.00", records[3][6], "closing balance is exactly zero")
}
