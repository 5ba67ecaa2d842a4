// Package verification implements the post-payment callback check: a
// local HMAC signature gate, then best-effort telemetry and delivery.
// The signature match authorizes the caller to proceed; the download
// gate independently re-checks payment status, so nothing here has to
// be trusted later.
package verification

import (
	"context"
	"errors"

	"github.com/bloomwithanjli/checkout/internal/domain/event"
	"github.com/bloomwithanjli/checkout/internal/domain/payment"
	"github.com/bloomwithanjli/checkout/internal/domain/signature"
	"github.com/bloomwithanjli/checkout/internal/infra/logging"
	"github.com/bloomwithanjli/checkout/internal/infra/metrics"
)

var (
	ErrMissingFields     = errors.New("missing payment details")
	ErrSignatureMismatch = errors.New("payment verification failed")
)

type PaymentFetcher interface {
	FetchPayment(ctx context.Context, id string) (*payment.Payment, error)
}

type Mailer interface {
	SendGuide(to, paymentID string) error
}

type EventPublisher interface {
	Publish(event.Event) error
}

type Service struct {
	KeySecret string
	Gateway   PaymentFetcher
	// Mailer may be nil when SMTP is not configured; the email step is
	// skipped entirely in that case.
	Mailer   Mailer
	EventBus EventPublisher
	Logger   logging.Logger
	Metrics  *metrics.Counters

	// DownloadPath is the URL prefix the payment id is appended to.
	DownloadPath string
}

type Result struct {
	PaymentID   string
	DownloadURL string
}

// Verify runs the verification state machine. The signature check is
// the single gate: computed locally, side-effect free, safe to retry.
// Everything after a match is best effort and cannot change the
// outcome.
func (s *Service) Verify(ctx context.Context, orderID, paymentID, sig, email string) (*Result, error) {
	if orderID == "" || paymentID == "" || sig == "" {
		return nil, ErrMissingFields
	}

	if !signature.VerifyPayment(orderID, paymentID, s.KeySecret, sig) {
		s.Metrics.IncSignaturesRejected()
		s.Logger.Error("signature verification failed", map[string]any{
			"order_id":   orderID,
			"payment_id": paymentID,
		})
		return nil, ErrSignatureMismatch
	}

	// Telemetry only. The authoritative status check happens at
	// download time, so a transient fetch failure here is a warning,
	// not an error.
	if p, err := s.Gateway.FetchPayment(ctx, paymentID); err != nil {
		s.Logger.Warn("payment fetch failed after signature match", map[string]any{
			"payment_id": paymentID,
			"error":      err.Error(),
		})
	} else {
		s.Logger.Info("payment verified", map[string]any{
			"payment_id": p.ID,
			"amount":     p.Amount,
			"status":     string(p.Status),
		})
	}

	if s.EventBus != nil {
		evt := event.Event{
			Type: event.PaymentVerified,
			Payload: event.PaymentVerifiedPayload{
				OrderID:   orderID,
				PaymentID: paymentID,
				Email:     email,
			},
		}
		if err := s.EventBus.Publish(evt); err != nil {
			s.Logger.Error("publishing verified event failed", map[string]any{
				"payment_id": paymentID,
				"error":      err.Error(),
			})
		}
	}

	if email != "" && s.Mailer != nil {
		if err := s.Mailer.SendGuide(email, paymentID); err != nil {
			s.Metrics.IncEmailsFailed()
			s.Logger.Error("guide email failed", map[string]any{
				"payment_id": paymentID,
				"error":      err.Error(),
			})
		} else {
			s.Metrics.IncEmailsSent()
			s.Logger.Info("guide email sent", map[string]any{
				"payment_id": paymentID,
			})
		}
	}

	s.Metrics.IncPaymentsVerified()

	return &Result{
		PaymentID:   paymentID,
		DownloadURL: s.DownloadPath + paymentID,
	}, nil
}
