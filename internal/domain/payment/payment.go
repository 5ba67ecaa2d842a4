package payment

// Status is the gateway's view of a payment. The gateway owns the
// lifecycle; we only ever read it.
type Status string

const (
	StatusCreated    Status = "created"
	StatusAuthorized Status = "authorized"
	StatusCaptured   Status = "captured"
	StatusFailed     Status = "failed"
	StatusRefunded   Status = "refunded"
)

// Payment is a gateway payment record as fetched, never stored. The
// source of truth stays with the gateway and is re-fetched on every
// download attempt.
type Payment struct {
	ID     string
	Amount int64
	Status Status
	Email  string
}

// Captured reports whether money has actually been received.
func (p *Payment) Captured() bool {
	return p.Status == StatusCaptured
}
