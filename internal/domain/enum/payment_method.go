package enum

// PaymentMethod represents how a sale was paid for
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodDigital  PaymentMethod = "digital"
)

// IsValid reports whether the value is one of the supported methods
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodDigital:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}
