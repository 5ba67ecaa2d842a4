package checkout

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/bloomwithanjli/checkout/internal/domain/order"
	"github.com/bloomwithanjli/checkout/internal/infra/logging"
	"github.com/bloomwithanjli/checkout/internal/infra/metrics"
)

var (
	ErrInvalidAmount = errors.New("amount must be a positive integer in minor units")
	ErrInvalidEmail  = errors.New("invalid email format")

	// ErrOrderCreation is the only gateway failure the client sees; the
	// underlying cause goes to the logs.
	ErrOrderCreation = errors.New("failed to create order")
)

// One "@", at least one "." in the domain part. Deliberately loose;
// the gateway re-validates on its side.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type OrderCreator interface {
	CreateOrder(ctx context.Context, req order.Request) (*order.Order, error)
}

// Service is the order issuer: it validates a purchase request and asks
// the gateway for an order. No local state is mutated.
type Service struct {
	Gateway  OrderCreator
	Currency string
	Product  string
	Logger   logging.Logger
	Metrics  *metrics.Counters
}

func (s *Service) CreateOrder(ctx context.Context, amount int64, email string) (*order.Order, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	now := time.Now()

	req := order.Request{
		Amount:   amount,
		Currency: s.Currency,
		// Unique per call in practice, traceable always. Strict global
		// uniqueness is not required for correctness.
		Receipt: fmt.Sprintf("guide_%d", now.UnixMilli()),
		Notes: map[string]string{
			"product":        s.Product,
			"customer_email": email,
			"purchase_date":  now.UTC().Format(time.RFC3339),
		},
	}

	ord, err := s.Gateway.CreateOrder(ctx, req)
	if err != nil {
		s.Metrics.IncOrdersFailed()
		s.Logger.Error("order creation failed", map[string]any{
			"receipt": req.Receipt,
			"amount":  amount,
			"error":   err.Error(),
		})
		return nil, ErrOrderCreation
	}

	s.Metrics.IncOrdersCreated()
	s.Logger.Info("order created", map[string]any{
		"order_id": ord.ID,
		"amount":   ord.Amount,
		"currency": ord.Currency,
		"receipt":  ord.Receipt,
	})

	return ord, nil
}
