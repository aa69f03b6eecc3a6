package forecast

// Probability is the scenario likelihood triple computed per invoice.
// For every bucket pessimistic <= expected <= optimistic holds by
// construction.
type Probability struct {
	Expected    float64
	Optimistic  float64
	Pessimistic float64
}

// PaymentProbability maps a payment status and overdue duration to the
// three scenario likelihoods. daysOverdue is negative when the invoice is
// not yet due. Unrecognized statuses fall back to a neutral row instead
// of failing.
func PaymentProbability(status PaymentStatus, daysOverdue int) Probability {
	switch status {
	case StatusPaid:
		return Probability{Expected: 1, Optimistic: 1, Pessimistic: 1}
	case StatusPartial:
		return Probability{Expected: 0.8, Optimistic: 0.95, Pessimistic: 0.6}
	case StatusUnpaid:
		switch {
		case daysOverdue < 0:
			return Probability{Expected: 0.9, Optimistic: 0.98, Pessimistic: 0.7}
		case daysOverdue <= 7:
			return Probability{Expected: 0.8, Optimistic: 0.9, Pessimistic: 0.6}
		case daysOverdue <= 30:
			return Probability{Expected: 0.6, Optimistic: 0.8, Pessimistic: 0.4}
		default:
			return Probability{Expected: 0.4, Optimistic: 0.6, Pessimistic: 0.2}
		}
	case StatusOverdue:
		switch {
		case daysOverdue <= 15:
			return Probability{Expected: 0.7, Optimistic: 0.85, Pessimistic: 0.5}
		case daysOverdue <= 30:
			return Probability{Expected: 0.5, Optimistic: 0.7, Pessimistic: 0.3}
		case daysOverdue <= 60:
			return Probability{Expected: 0.3, Optimistic: 0.5, Pessimistic: 0.1}
		default:
			return Probability{Expected: 0.2, Optimistic: 0.4, Pessimistic: 0.05}
		}
	case StatusCancelled:
		return Probability{Expected: 0, Optimistic: 0.1, Pessimistic: 0}
	default:
		return Probability{Expected: 0.5, Optimistic: 0.7, Pessimistic: 0.3}
	}
}
