package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// dailyOnes builds a series with one unit expected per day starting at
// start, cumulative fields already folded.
func dailyOnes(start time.Time, days int) []DataPoint {
	series := make([]DataPoint, days)
	for i := range series {
		series[i] = zeroPoint(start.AddDate(0, 0, i))
		series[i].Expected = decimal.NewFromInt(1)
		series[i].Optimistic = decimal.NewFromInt(2)
		series[i].Pessimistic = decimal.NewFromFloat(0.5)
	}
	accumulate(series)
	return series
}

func TestAggregateWeeklyMondayBoundary(t *testing.T) {
	// 2026-01-01 is a Thursday, so the first bucket holds four days.
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	weekly := aggregateWeekly(dailyOnes(start, 14))

	require.Len(t, weekly, 3)
	require.Equal(t, start, weekly[0].Date)
	require.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), weekly[1].Date)
	require.Equal(t, time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), weekly[2].Date)

	requireAmount(t, "4", weekly[0].Expected)
	requireAmount(t, "7", weekly[1].Expected)
	requireAmount(t, "3", weekly[2].Expected)

	// Cumulative fields carry the last daily value inside each bucket,
	// not a per-bucket restart.
	requireAmount(t, "4", weekly[0].CumulativeExpected)
	requireAmount(t, "11", weekly[1].CumulativeExpected)
	requireAmount(t, "14", weekly[2].CumulativeExpected)
	requireAmount(t, "7", weekly[2].CumulativePessimistic)
}

func TestAggregateWeeklyStartsOnMonday(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	weekly := aggregateWeekly(dailyOnes(start, 7))

	require.Len(t, weekly, 1)
	requireAmount(t, "7", weekly[0].Expected)
	requireAmount(t, "14", weekly[0].CumulativeOptimistic)
}

func TestAggregateMonthlyCalendarBoundary(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	monthly := aggregateMonthly(dailyOnes(start, 40))

	require.Len(t, monthly, 2)
	require.Equal(t, start, monthly[0].Date)
	require.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), monthly[1].Date)
	requireAmount(t, "31", monthly[0].Expected)
	requireAmount(t, "9", monthly[1].Expected)
	requireAmount(t, "40", monthly[1].CumulativeExpected)
}

func TestAggregateMonthlyYearRollover(t *testing.T) {
	start := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	monthly := aggregateMonthly(dailyOnes(start, 20))

	require.Len(t, monthly, 2)
	require.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), monthly[1].Date)
	requireAmount(t, "12", monthly[0].Expected)
	requireAmount(t, "8", monthly[1].Expected)
}

func TestAggregateEmptySeries(t *testing.T) {
	require.Empty(t, aggregateWeekly(nil))
	require.Empty(t, aggregateMonthly(nil))
}
