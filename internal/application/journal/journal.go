// Package journal keeps an append-only record of payment events for
// audit and reconciliation. It is telemetry only: download
// authorization is always re-derived from the gateway, never read back
// from here.
package journal

import "time"

type Entry struct {
	ID        string
	Kind      string
	OrderID   string
	PaymentID string
	Amount    int64
	Email     string
	Detail    string
	CreatedAt time.Time
}

type Repository interface {
	Save(Entry) error
	FindByPaymentID(string) ([]Entry, error)
}
