package forecast

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultHorizonDays is the forecast window applied when a caller does
// not specify one.
const DefaultHorizonDays = 90

// Forecast projects probability-weighted cash inflows from the given
// invoices over horizonDays calendar days starting at today (inclusive).
// The caller supplies today explicitly so identical inputs always yield
// identical output.
func Forecast(invoices []Invoice, today time.Time, horizonDays int) Prediction {
	if horizonDays < 0 {
		horizonDays = 0
	}
	start := dateOnly(today)
	daily := buildDailySeries(invoices, start, horizonDays)
	accumulate(daily)
	return Prediction{
		Daily:   daily,
		Weekly:  aggregateWeekly(daily),
		Monthly: aggregateMonthly(daily),
		Summary: summarize(daily),
	}
}

// buildDailySeries allocates each open invoice's probability-weighted
// remaining balance onto the horizon day matching its predicted payment
// date. Paid invoices are realized cash and contribute nothing.
// Predictions landing outside the horizon are dropped, not clamped to
// the nearest boundary day.
func buildDailySeries(invoices []Invoice, start time.Time, horizonDays int) []DataPoint {
	series := make([]DataPoint, horizonDays)
	for i := range series {
		series[i] = zeroPoint(start.AddDate(0, 0, i))
	}
	for _, inv := range invoices {
		if inv.Status == StatusPaid {
			continue
		}
		daysOverdue := daysBetween(dateOnly(inv.DueDate), start)
		prob := PaymentProbability(inv.Status, daysOverdue)
		predicted := dateOnly(PredictPaymentDate(inv, start))
		offset := daysBetween(start, predicted)
		if offset < 0 || offset >= horizonDays {
			continue
		}
		remaining := inv.Remaining()
		day := &series[offset]
		day.Expected = day.Expected.Add(remaining.Mul(decimal.NewFromFloat(prob.Expected)))
		day.Optimistic = day.Optimistic.Add(remaining.Mul(decimal.NewFromFloat(prob.Optimistic)))
		day.Pessimistic = day.Pessimistic.Add(remaining.Mul(decimal.NewFromFloat(prob.Pessimistic)))
	}
	return series
}

// accumulate folds per-day amounts into running totals, left to right.
func accumulate(series []DataPoint) {
	var expected, optimistic, pessimistic decimal.Decimal
	for i := range series {
		expected = expected.Add(series[i].Expected)
		optimistic = optimistic.Add(series[i].Optimistic)
		pessimistic = pessimistic.Add(series[i].Pessimistic)
		series[i].CumulativeExpected = expected
		series[i].CumulativeOptimistic = optimistic
		series[i].CumulativePessimistic = pessimistic
	}
}

func zeroPoint(date time.Time) DataPoint {
	return DataPoint{
		Date:                  date,
		Expected:              decimal.Zero,
		Optimistic:            decimal.Zero,
		Pessimistic:           decimal.Zero,
		CumulativeExpected:    decimal.Zero,
		CumulativeOptimistic:  decimal.Zero,
		CumulativePessimistic: decimal.Zero,
	}
}

// dateOnly truncates a timestamp to its UTC calendar day.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole-day difference to - from. Both arguments
// must already be truncated to calendar days.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
