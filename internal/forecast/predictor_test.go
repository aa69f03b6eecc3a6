package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPredictPaymentDate(t *testing.T) {
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	paidAt := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		inv  Invoice
		want time.Time
	}{
		{"paid uses payment date", Invoice{Status: StatusPaid, DueDate: due, PaymentDate: &paidAt}, paidAt},
		{"paid without payment date falls back to today", Invoice{Status: StatusPaid, DueDate: due}, today},
		{"partial settles a week after due", Invoice{Status: StatusPartial, DueDate: due}, due.AddDate(0, 0, 7)},
		{"unpaid lands on due date", Invoice{Status: StatusUnpaid, DueDate: due}, due},
		{"overdue resolves two weeks out", Invoice{Status: StatusOverdue, DueDate: due.AddDate(0, 0, -60)}, today.AddDate(0, 0, 14)},
		{"cancelled keeps due date", Invoice{Status: StatusCancelled, DueDate: due}, due},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, PredictPaymentDate(tc.inv, today))
		})
	}
}

func TestInvoiceRemaining(t *testing.T) {
	inv := Invoice{Total: decimal.NewFromInt(500)}
	require.True(t, inv.Remaining().Equal(decimal.NewFromInt(500)))

	inv.PaymentAmount = decimal.NewFromInt(200)
	require.True(t, inv.Remaining().Equal(decimal.NewFromInt(300)))
}
