package forecast

import "time"

// aggregateWeekly re-buckets the daily series into weeks. A new week
// opens on Mondays, so the first bucket may span fewer than seven days.
func aggregateWeekly(daily []DataPoint) []DataPoint {
	return aggregate(daily, func(i int) bool {
		return daily[i].Date.Weekday() == time.Monday
	})
}

// aggregateMonthly re-buckets the daily series by calendar month.
func aggregateMonthly(daily []DataPoint) []DataPoint {
	return aggregate(daily, func(i int) bool {
		prev := daily[i-1].Date
		cur := daily[i].Date
		return cur.Month() != prev.Month() || cur.Year() != prev.Year()
	})
}

// aggregate folds the daily series into periods. boundary reports whether
// day i opens a new period; the first day always does. Per-period amounts
// are summed while cumulative fields carry the last daily cumulative value
// falling inside the period.
func aggregate(daily []DataPoint, boundary func(i int) bool) []DataPoint {
	periods := make([]DataPoint, 0)
	for i, day := range daily {
		if i == 0 || boundary(i) {
			periods = append(periods, zeroPoint(day.Date))
		}
		p := &periods[len(periods)-1]
		p.Expected = p.Expected.Add(day.Expected)
		p.Optimistic = p.Optimistic.Add(day.Optimistic)
		p.Pessimistic = p.Pessimistic.Add(day.Pessimistic)
		p.CumulativeExpected = day.CumulativeExpected
		p.CumulativeOptimistic = day.CumulativeOptimistic
		p.CumulativePessimistic = day.CumulativePessimistic
	}
	return periods
}
