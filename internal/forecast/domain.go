package forecast

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus enumerates invoice payment states.
type PaymentStatus string

const (
	StatusUnpaid    PaymentStatus = "unpaid"
	StatusPartial   PaymentStatus = "partial"
	StatusPaid      PaymentStatus = "paid"
	StatusOverdue   PaymentStatus = "overdue"
	StatusCancelled PaymentStatus = "cancelled"
)

// Invoice is the read-only snapshot the engine consumes for one run.
// The engine never mutates it.
type Invoice struct {
	Total         decimal.Decimal
	Status        PaymentStatus
	DueDate       time.Time
	PaymentDate   *time.Time
	PaymentAmount decimal.Decimal
}

// Remaining returns the unpaid balance of the invoice.
func (i Invoice) Remaining() decimal.Decimal {
	if i.PaymentAmount.IsPositive() {
		return i.Total.Sub(i.PaymentAmount)
	}
	return i.Total
}

// DataPoint carries the three scenario amounts for one day, week, or month,
// together with their running totals.
type DataPoint struct {
	Date                  time.Time       `json:"date"`
	Expected              decimal.Decimal `json:"expected"`
	Optimistic            decimal.Decimal `json:"optimistic"`
	Pessimistic           decimal.Decimal `json:"pessimistic"`
	CumulativeExpected    decimal.Decimal `json:"cumulativeExpected"`
	CumulativeOptimistic  decimal.Decimal `json:"cumulativeOptimistic"`
	CumulativePessimistic decimal.Decimal `json:"cumulativePessimistic"`
}

// Summary holds the headline metrics derived from the daily series.
type Summary struct {
	TotalExpected         decimal.Decimal `json:"totalExpected"`
	Next30Days            decimal.Decimal `json:"next30Days"`
	Next60Days            decimal.Decimal `json:"next60Days"`
	Next90Days            decimal.Decimal `json:"next90Days"`
	RiskAmount            decimal.Decimal `json:"riskAmount"`
	HighProbabilityAmount decimal.Decimal `json:"highProbabilityAmount"`
}

// Prediction is the forecast result. The caller owns it once returned.
type Prediction struct {
	Daily   []DataPoint `json:"dailyData"`
	Weekly  []DataPoint `json:"weeklyData"`
	Monthly []DataPoint `json:"monthlyData"`
	Summary Summary     `json:"summary"`
}
