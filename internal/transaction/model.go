package transaction

import (
	"errors"
	"time"
)

var (
	ErrMissingFields = errors.New("missing fields")
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD or RFC 3339")
)

// Transaction is a recorded payment.
type Transaction struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Mobile    string    `json:"mobile"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	Paybill   string    `json:"paybill"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTransaction is the input for Service.Create. Date is kept as the raw
// client string until validation.
type NewTransaction struct {
	Type    string  `json:"type"`
	Mobile  string  `json:"mobile"`
	Amount  float64 `json:"amount"`
	Date    string  `json:"date"`
	Paybill string  `json:"paybill"`
}

// ParseDate accepts a calendar date or a full RFC 3339 timestamp and returns
// it in UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}
