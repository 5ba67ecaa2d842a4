package webhook

import (
	"encoding/json"
	"errors"

	"github.com/bloomwithanjli/checkout/internal/domain/event"
	"github.com/bloomwithanjli/checkout/internal/domain/signature"
	"github.com/bloomwithanjli/checkout/internal/infra/logging"
	"github.com/bloomwithanjli/checkout/internal/infra/metrics"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrMalformedBody    = errors.New("malformed webhook body")
)

// Envelope mirrors the gateway's webhook payload shape. Only the
// payment entity fields we use are mapped.
type Envelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID               string `json:"id"`
				Amount           int64  `json:"amount"`
				Status           string `json:"status"`
				Email            string `json:"email"`
				ErrorDescription string `json:"error_description"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type EventPublisher interface {
	Publish(event.Event) error
}

type Service struct {
	Secret   string
	EventBus EventPublisher
	Logger   logging.Logger
	Metrics  *metrics.Counters
}

// Process authenticates a webhook delivery against the raw body and
// dispatches the events we care about. Unrecognized events are accepted
// and ignored so the gateway does not retry them forever.
func (s *Service) Process(body []byte, sig string) error {
	if !signature.VerifyWebhook(body, s.Secret, sig) {
		s.Logger.Error("webhook signature rejected", nil)
		return ErrInvalidSignature
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ErrMalformedBody
	}

	s.Metrics.IncWebhooksReceived()

	entity := env.Payload.Payment.Entity

	switch env.Event {
	case "payment.captured":
		s.Logger.Info("payment captured", map[string]any{
			"payment_id": entity.ID,
			"amount":     entity.Amount,
		})
		s.publish(event.Event{
			Type: event.PaymentCaptured,
			Payload: event.PaymentCapturedPayload{
				PaymentID: entity.ID,
				Amount:    entity.Amount,
				Email:     entity.Email,
			},
		})

	case "payment.failed":
		s.Logger.Info("payment failed", map[string]any{
			"payment_id": entity.ID,
			"reason":     entity.ErrorDescription,
		})
		s.publish(event.Event{
			Type: event.PaymentFailed,
			Payload: event.PaymentFailedPayload{
				PaymentID: entity.ID,
				Reason:    entity.ErrorDescription,
			},
		})

	default:
		s.Logger.Info("unhandled webhook event", map[string]any{
			"event": env.Event,
		})
	}

	return nil
}

func (s *Service) publish(evt event.Event) {
	if s.EventBus == nil {
		return
	}
	if err := s.EventBus.Publish(evt); err != nil {
		s.Logger.Error("publishing webhook event failed", map[string]any{
			"type":  string(evt.Type),
			"error": err.Error(),
		})
	}
}
