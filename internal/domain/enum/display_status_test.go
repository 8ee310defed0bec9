package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDisplayStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  SaleStatus
		payment PaymentStatus
		want    DisplayStatus
	}{
		{"pending pending", SaleStatusPending, PaymentStatusPending, DisplayStatusPending},
		{"pending paid", SaleStatusPending, PaymentStatusPaid, DisplayStatusPending},
		{"pending refunded", SaleStatusPending, PaymentStatusRefunded, DisplayStatusRefunded},
		{"completed pending", SaleStatusCompleted, PaymentStatusPending, DisplayStatusPending},
		{"completed paid", SaleStatusCompleted, PaymentStatusPaid, DisplayStatusCompleted},
		{"completed refunded", SaleStatusCompleted, PaymentStatusRefunded, DisplayStatusRefunded},
		{"cancelled pending", SaleStatusCancelled, PaymentStatusPending, DisplayStatusCancelled},
		{"cancelled paid", SaleStatusCancelled, PaymentStatusPaid, DisplayStatusCancelled},
		// Cancellation takes precedence over a refund
		{"cancelled refunded", SaleStatusCancelled, PaymentStatusRefunded, DisplayStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDisplayStatus(tt.status, tt.payment))
		})
	}
}

func TestPaymentMethodIsValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodDigital} {
		assert.True(t, m.IsValid(), m.String())
	}
	assert.False(t, PaymentMethod("cheque").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}
