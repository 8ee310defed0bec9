package enum

// DisplayStatus is the user-facing status of a sale. It is derived from the
// fulfilment and payment statuses on every read and never persisted.
type DisplayStatus string

const (
	DisplayStatusCompleted DisplayStatus = "completed"
	DisplayStatusPending   DisplayStatus = "pending"
	DisplayStatusCancelled DisplayStatus = "cancelled"
	DisplayStatusRefunded  DisplayStatus = "refunded"
)

func (d DisplayStatus) String() string {
	return string(d)
}

// ResolveDisplayStatus maps a (status, payment status) pair to the single
// status shown to users. Precedence: a cancelled sale always displays as
// cancelled, even when the payment was refunded.
func ResolveDisplayStatus(status SaleStatus, payment PaymentStatus) DisplayStatus {
	switch {
	case status == SaleStatusCancelled:
		return DisplayStatusCancelled
	case payment == PaymentStatusRefunded:
		return DisplayStatusRefunded
	case status == SaleStatusCompleted && payment == PaymentStatusPaid:
		return DisplayStatusCompleted
	default:
		return DisplayStatusPending
	}
}
