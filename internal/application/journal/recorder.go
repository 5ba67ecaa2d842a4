package journal

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bloomwithanjli/checkout/internal/domain/event"
)

// Recorder subscribes to the event bus and turns payment events into
// journal entries.
type Recorder struct {
	Repo Repository
}

func (r *Recorder) Handle(evt event.Event) error {
	entry := Entry{
		ID:        uuid.NewString(),
		Kind:      string(evt.Type),
		CreatedAt: time.Now().UTC(),
	}

	switch payload := evt.Payload.(type) {
	case event.PaymentVerifiedPayload:
		entry.OrderID = payload.OrderID
		entry.PaymentID = payload.PaymentID
		entry.Email = payload.Email

	case event.PaymentCapturedPayload:
		entry.PaymentID = payload.PaymentID
		entry.Amount = payload.Amount
		entry.Email = payload.Email

	case event.PaymentFailedPayload:
		entry.PaymentID = payload.PaymentID
		entry.Detail = payload.Reason

	default:
		return errors.New("journal: unrecognized event payload")
	}

	return r.Repo.Save(entry)
}
