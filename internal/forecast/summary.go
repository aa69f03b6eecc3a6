package forecast

// summarize derives the headline metrics from the daily series. The
// 30/60/90-day windows are slices of the series, so a shorter horizon
// simply covers the whole series. An empty series yields zeros.
func summarize(daily []DataPoint) Summary {
	s := Summary{}
	for i, day := range daily {
		s.TotalExpected = s.TotalExpected.Add(day.Expected)
		if i < 30 {
			s.Next30Days = s.Next30Days.Add(day.Expected)
		}
		if i < 60 {
			s.Next60Days = s.Next60Days.Add(day.Expected)
		}
		if i < 90 {
			s.Next90Days = s.Next90Days.Add(day.Expected)
		}
		s.RiskAmount = s.RiskAmount.Add(day.Optimistic.Sub(day.Pessimistic))
		s.HighProbabilityAmount = s.HighProbabilityAmount.Add(day.Pessimistic)
	}
	return s
}
