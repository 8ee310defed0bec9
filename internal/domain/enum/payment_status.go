package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus represents the settlement status of a sale
type PaymentStatus int

const (
	PaymentStatusPending  PaymentStatus = 0
	PaymentStatusPaid     PaymentStatus = 1
	PaymentStatusRefunded PaymentStatus = 2
)

func (p PaymentStatus) String() string {
	switch p {
	case PaymentStatusPaid:
		return "paid"
	case PaymentStatusRefunded:
		return "refunded"
	default:
		return "pending"
	}
}

// IsValid reports whether the value is one of the known statuses
func (p PaymentStatus) IsValid() bool {
	return p >= PaymentStatusPending && p <= PaymentStatusRefunded
}

func (p PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = PaymentStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*p = PaymentStatusPending
	case "paid":
		*p = PaymentStatusPaid
	case "refunded":
		*p = PaymentStatusRefunded
	}
	return nil
}

func (p PaymentStatus) Value() (driver.Value, error) {
	return int64(p), nil
}

func (p *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*p = PaymentStatus(v)
	case int:
		*p = PaymentStatus(v)
	}
	return nil
}
