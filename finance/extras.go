package finance

import "sort"

// =============================================================================
// EXTRAORDINARY-PAYMENT SCHEDULER - Expands payment policies to injections
// =============================================================================

// ValidateExtras checks an explicit list of injections against a schedule
// horizon. The returned error localizes the offending entry by index.
func ValidateExtras(extras []ExtraPayment, horizon int) error {
	for i, e := range extras {
		if e.Period < 1 || e.Period > horizon {
			return &InvalidExtraPaymentError{
				Index: i, Period: e.Period, Amount: e.Amount,
				Reason: "period outside schedule horizon",
			}
		}
		if e.Amount <= 0 {
			return &InvalidExtraPaymentError{
				Index: i, Period: e.Period, Amount: e.Amount,
				Reason: "amount must be positive",
			}
		}
	}
	return nil
}

// ExpandRecurring materializes a recurring cadence into concrete
// injections: one payment every Interval periods from StartPeriod up to
// EndPeriod (or the horizon when EndPeriod is zero).
func ExpandRecurring(spec RecurringSpec, horizon int) ([]ExtraPayment, error) {
	if spec.Amount <= 0 {
		return nil, &InvalidExtraPaymentError{
			Index: -1, Amount: spec.Amount,
			Reason: "amount must be positive",
		}
	}
	if spec.Interval < 1 {
		return nil, &InvalidExtraPaymentError{
			Index: -1, Amount: spec.Amount,
			Reason: "interval must be at least one period",
		}
	}

	start := spec.StartPeriod
	if start == 0 {
		start = spec.Interval
	}
	if start < 1 || start > horizon {
		return nil, &InvalidExtraPaymentError{
			Index: -1, Period: start, Amount: spec.Amount,
			Reason: "start period outside schedule horizon",
		}
	}

	end := horizon
	if spec.EndPeriod > 0 {
		if spec.EndPeriod < start || spec.EndPeriod > horizon {
			return nil, &InvalidExtraPaymentError{
				Index: -1, Period: spec.EndPeriod, Amount: spec.Amount,
				Reason: "end period outside schedule horizon",
			}
		}
		end = spec.EndPeriod
	}

	var extras []ExtraPayment
	for p := start; p <= end; p += spec.Interval {
		extras = append(extras, ExtraPayment{Period: p, Amount: spec.Amount})
	}
	return extras, nil
}

// ExpandByFrequency materializes a cadence expressed as a frequency
// (e.g. a quarterly extra payment on a monthly loan). The cadence must be
// an exact multiple of the payment frequency.
func ExpandByFrequency(amount float64, cadence, payment PaymentFrequency, horizon int) ([]ExtraPayment, error) {
	interval, err := payment.CadenceInterval(cadence)
	if err != nil {
		return nil, &InvalidExtraPaymentError{Index: -1, Amount: amount, Reason: err.Error()}
	}
	return ExpandRecurring(RecurringSpec{Amount: amount, Interval: interval}, horizon)
}

// mergeExtras folds a list of injections into a per-period lookup,
// summing payments that land on the same period.
func mergeExtras(extras []ExtraPayment) map[int]float64 {
	if len(extras) == 0 {
		return nil
	}
	merged := make(map[int]float64, len(extras))
	for _, e := range extras {
		merged[e.Period] += e.Amount
	}
	return merged
}

// sortExtras returns the injections in period order.
func sortExtras(extras []ExtraPayment) []ExtraPayment {
	out := make([]ExtraPayment, len(extras))
	copy(out, extras)
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
