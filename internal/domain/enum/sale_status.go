package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleStatus represents the fulfilment status of a sale
type SaleStatus int

const (
	SaleStatusPending   SaleStatus = 0
	SaleStatusCompleted SaleStatus = 1
	SaleStatusCancelled SaleStatus = 2
)

func (s SaleStatus) String() string {
	switch s {
	case SaleStatusCompleted:
		return "completed"
	case SaleStatusCancelled:
		return "cancelled"
	default:
		return "pending"
	}
}

// IsValid reports whether the value is one of the known statuses
func (s SaleStatus) IsValid() bool {
	return s >= SaleStatusPending && s <= SaleStatusCancelled
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = SaleStatusPending
	case "completed":
		*s = SaleStatusCompleted
	case "cancelled":
		*s = SaleStatusCancelled
	}
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	}
	return nil
}
