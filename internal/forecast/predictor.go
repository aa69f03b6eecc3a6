package forecast

import "time"

const (
	partialSettleDelayDays = 7
	overdueSettleDelayDays = 14
)

// PredictPaymentDate estimates the calendar day an invoice's remaining
// balance lands. The result is a point estimate; uncertainty is carried
// by the probability weights, not by the date.
func PredictPaymentDate(inv Invoice, today time.Time) time.Time {
	switch inv.Status {
	case StatusPaid:
		if inv.PaymentDate != nil && !inv.PaymentDate.IsZero() {
			return *inv.PaymentDate
		}
		return today
	case StatusPartial:
		return inv.DueDate.AddDate(0, 0, partialSettleDelayDays)
	case StatusUnpaid:
		return inv.DueDate
	case StatusOverdue:
		// Overdue balances are modeled as resolving two weeks out,
		// regardless of how overdue they already are.
		return today.AddDate(0, 0, overdueSettleDelayDays)
	default:
		return inv.DueDate
	}
}
