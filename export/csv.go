/*
Package export renders computed schedules for download.

PURPOSE:
  Turns a finance.Schedule into a CSV table the dashboard can offer as a
  file download. Presentation only: all numbers are already rounded by the
  engine, this package just formats them.
*/
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cutiepie25/FinSight/finance"
)

var csvHeader = []string{"period", "date", "installment", "interest", "principal", "extra", "balance"}

// WriteCSV writes the schedule as CSV: a header row followed by one record
// per period, monetary values with two decimals.
func WriteCSV(w io.Writer, sched *finance.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range sched.Rows {
		date := ""
		if !row.Date.IsZero() {
			date = row.Date.Format("2006-01-02")
		}
		record := []string{
			strconv.Itoa(row.Period),
			date,
			row.Installment.StringFixed(2),
			row.Interest.StringFixed(2),
			row.Principal.StringFixed(2),
			row.Extra.StringFixed(2),
			row.Balance.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
