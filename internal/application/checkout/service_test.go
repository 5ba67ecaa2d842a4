package checkout_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bloomwithanjli/checkout/internal/application/checkout"
	"github.com/bloomwithanjli/checkout/internal/domain/order"
	"github.com/bloomwithanjli/checkout/internal/infra/metrics"
)

type fakeGateway struct {
	calls     int
	lastReq   order.Request
	createFn  func(order.Request) (*order.Order, error)
}

func (f *fakeGateway) CreateOrder(_ context.Context, req order.Request) (*order.Order, error) {
	f.calls++
	f.lastReq = req

	if f.createFn != nil {
		return f.createFn(req)
	}

	return &order.Order{
		ID:       "order_abc123",
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
	}, nil
}

type noopLogger struct{}

func (n *noopLogger) Info(string, map[string]any)  {}
func (n *noopLogger) Warn(string, map[string]any)  {}
func (n *noopLogger) Error(string, map[string]any) {}

func newService(gw *fakeGateway) (*checkout.Service, *metrics.Counters) {
	counters := &metrics.Counters{}
	return &checkout.Service{
		Gateway:  gw,
		Currency: "INR",
		Product:  "The Ultimate Bridal Makeup Guide",
		Logger:   &noopLogger{},
		Metrics:  counters,
	}, counters
}

func TestCreateOrder_ValidInputIssuesExactlyOneGatewayCall(t *testing.T) {
	gw := &fakeGateway{}
	svc, counters := newService(gw)

	ord, err := svc.CreateOrder(context.Background(), 49900, "a@b.com")
	require.NoError(t, err)

	require.Equal(t, 1, gw.calls)
	require.Equal(t, int64(49900), ord.Amount)
	require.Equal(t, "INR", ord.Currency)
	require.True(t, strings.HasPrefix(ord.Receipt, "guide_"))
	require.Equal(t, uint64(1), counters.OrdersCreated)

	require.Equal(t, "a@b.com", gw.lastReq.Notes["customer_email"])
	require.Equal(t, "The Ultimate Bridal Makeup Guide", gw.lastReq.Notes["product"])
}

func TestCreateOrder_InvalidInputNeverReachesGateway(t *testing.T) {
	cases := []struct {
		name    string
		amount  int64
		email   string
		wantErr error
	}{
		{"zero amount", 0, "a@b.com", checkout.ErrInvalidAmount},
		{"negative amount", -100, "a@b.com", checkout.ErrInvalidAmount},
		{"missing email", 49900, "", checkout.ErrInvalidEmail},
		{"no at sign", 49900, "ab.com", checkout.ErrInvalidEmail},
		{"no dot in domain", 49900, "a@bcom", checkout.ErrInvalidEmail},
		{"whitespace in local part", 49900, "a b@c.com", checkout.ErrInvalidEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeGateway{}
			svc, _ := newService(gw)

			_, err := svc.CreateOrder(context.Background(), tc.amount, tc.email)
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, 0, gw.calls)
		})
	}
}

func TestCreateOrder_GatewayFailureIsGeneric(t *testing.T) {
	gw := &fakeGateway{
		createFn: func(order.Request) (*order.Order, error) {
			return nil, errors.New("gateway: create order: Authentication failed (401 Unauthorized)")
		},
	}
	svc, counters := newService(gw)

	_, err := svc.CreateOrder(context.Background(), 49900, "a@b.com")
	require.ErrorIs(t, err, checkout.ErrOrderCreation)

	// The raw gateway message never rides along on the returned error.
	require.NotContains(t, err.Error(), "Authentication")
	require.Equal(t, uint64(1), counters.OrdersFailed)
}
