package download

import (
	"context"
	"errors"
	"os"

	"github.com/bloomwithanjli/checkout/internal/domain/payment"
	"github.com/bloomwithanjli/checkout/internal/infra/logging"
	"github.com/bloomwithanjli/checkout/internal/infra/metrics"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPaymentNotCaptured = errors.New("payment not completed")
	ErrGuideUnavailable   = errors.New("guide not available")
)

type PaymentFetcher interface {
	FetchPayment(ctx context.Context, id string) (*payment.Payment, error)
}

// Service is the download gate. Authorization is re-derived from the
// gateway's current view of the payment on every single request, so a
// stale or forged client-side reference buys nothing.
type Service struct {
	Gateway   PaymentFetcher
	GuidePath string
	Filename  string
	Logger    logging.Logger
	Metrics   *metrics.Counters
}

// Authorize re-checks the payment and returns the path of the file to
// stream. Only a currently-captured payment unlocks it.
func (s *Service) Authorize(ctx context.Context, paymentID string) (string, error) {
	p, err := s.Gateway.FetchPayment(ctx, paymentID)
	if err != nil {
		s.Metrics.IncDownloadsDenied()
		s.Logger.Warn("payment lookup failed", map[string]any{
			"payment_id": paymentID,
			"error":      err.Error(),
		})
		return "", ErrPaymentNotFound
	}

	if !p.Captured() {
		s.Metrics.IncDownloadsDenied()
		s.Logger.Info("download denied", map[string]any{
			"payment_id": paymentID,
			"status":     string(p.Status),
		})
		return "", ErrPaymentNotCaptured
	}

	if _, err := os.Stat(s.GuidePath); err != nil {
		// Configuration error, not an authorization failure. The log
		// line is the distinguishing record.
		s.Logger.Error("guide file missing", map[string]any{
			"path":  s.GuidePath,
			"error": err.Error(),
		})
		return "", ErrGuideUnavailable
	}

	s.Metrics.IncDownloadsServed()
	s.Logger.Info("download authorized", map[string]any{
		"payment_id": paymentID,
	})

	return s.GuidePath, nil
}
