package verification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bloomwithanjli/checkout/internal/application/verification"
	"github.com/bloomwithanjli/checkout/internal/domain/event"
	"github.com/bloomwithanjli/checkout/internal/domain/payment"
	"github.com/bloomwithanjli/checkout/internal/domain/signature"
	"github.com/bloomwithanjli/checkout/internal/infra/metrics"
	"github.com/bloomwithanjli/checkout/internal/infrastructure/eventbus"
)

const secret = "test-key-secret"

type fakeFetcher struct {
	calls   int
	fetchFn func(string) (*payment.Payment, error)
}

func (f *fakeFetcher) FetchPayment(_ context.Context, id string) (*payment.Payment, error) {
	f.calls++
	if f.fetchFn != nil {
		return f.fetchFn(id)
	}
	return &payment.Payment{ID: id, Amount: 49900, Status: payment.StatusCaptured}, nil
}

type fakeMailer struct {
	sent   []string
	sendFn func(to, paymentID string) error
}

func (f *fakeMailer) SendGuide(to, paymentID string) error {
	f.sent = append(f.sent, to)
	if f.sendFn != nil {
		return f.sendFn(to, paymentID)
	}
	return nil
}

type noopLogger struct{}

func (n *noopLogger) Info(string, map[string]any)  {}
func (n *noopLogger) Warn(string, map[string]any)  {}
func (n *noopLogger) Error(string, map[string]any) {}

func newService(gw *fakeFetcher, mailer verification.Mailer, bus verification.EventPublisher) (*verification.Service, *metrics.Counters) {
	counters := &metrics.Counters{}
	return &verification.Service{
		KeySecret:    secret,
		Gateway:      gw,
		Mailer:       mailer,
		EventBus:     bus,
		Logger:       &noopLogger{},
		Metrics:      counters,
		DownloadPath: "/api/download-guide/",
	}, counters
}

func TestVerify_ValidSignatureSucceeds(t *testing.T) {
	gw := &fakeFetcher{}
	svc, counters := newService(gw, nil, nil)

	sig := signature.Payment("order_1", "pay_1", secret)

	res, err := svc.Verify(context.Background(), "order_1", "pay_1", sig, "")
	require.NoError(t, err)
	require.Equal(t, "pay_1", res.PaymentID)
	require.Equal(t, "/api/download-guide/pay_1", res.DownloadURL)
	require.Equal(t, 1, gw.calls)
	require.Equal(t, uint64(1), counters.PaymentsVerified)
}

func TestVerify_WrongSecretIsTerminal(t *testing.T) {
	gw := &fakeFetcher{}
	mailer := &fakeMailer{}
	svc, counters := newService(gw, mailer, nil)

	sig := signature.Payment("order_1", "pay_1", "some-other-secret")

	_, err := svc.Verify(context.Background(), "order_1", "pay_1", sig, "a@b.com")
	require.ErrorIs(t, err, verification.ErrSignatureMismatch)

	// Terminal: no gateway call, no email, nothing else happens.
	require.Equal(t, 0, gw.calls)
	require.Empty(t, mailer.sent)
	require.Equal(t, uint64(1), counters.SignaturesRejected)
	require.Equal(t, uint64(0), counters.PaymentsVerified)
}

func TestVerify_MissingFieldsNeverReachSignatureCheck(t *testing.T) {
	gw := &fakeFetcher{}
	svc, _ := newService(gw, nil, nil)

	for _, args := range [][3]string{
		{"", "pay_1", "sig"},
		{"order_1", "", "sig"},
		{"order_1", "pay_1", ""},
	} {
		_, err := svc.Verify(context.Background(), args[0], args[1], args[2], "")
		require.ErrorIs(t, err, verification.ErrMissingFields)
	}
	require.Equal(t, 0, gw.calls)
}

func TestVerify_FetchFailureIsDegradedNotFatal(t *testing.T) {
	gw := &fakeFetcher{
		fetchFn: func(string) (*payment.Payment, error) {
			return nil, errors.New("gateway timeout")
		},
	}
	svc, counters := newService(gw, nil, nil)

	sig := signature.Payment("order_1", "pay_1", secret)

	res, err := svc.Verify(context.Background(), "order_1", "pay_1", sig, "")
	require.NoError(t, err)
	require.Equal(t, "pay_1", res.PaymentID)
	require.Equal(t, uint64(1), counters.PaymentsVerified)
}

func TestVerify_EmailFailureIsSwallowed(t *testing.T) {
	mailer := &fakeMailer{
		sendFn: func(string, string) error { return errors.New("smtp down") },
	}
	svc, counters := newService(&fakeFetcher{}, mailer, nil)

	sig := signature.Payment("order_1", "pay_1", secret)

	res, err := svc.Verify(context.Background(), "order_1", "pay_1", sig, "a@b.com")
	require.NoError(t, err)
	require.Equal(t, "pay_1", res.PaymentID)
	require.Len(t, mailer.sent, 1)
	require.Equal(t, uint64(1), counters.EmailsFailed)
	require.Equal(t, uint64(0), counters.EmailsSent)
}

func TestVerify_EmailSentWhenSupplied(t *testing.T) {
	mailer := &fakeMailer{}
	svc, counters := newService(&fakeFetcher{}, mailer, nil)

	sig := signature.Payment("order_1", "pay_1", secret)

	_, err := svc.Verify(context.Background(), "order_1", "pay_1", sig, "buyer@example.com")
	require.NoError(t, err)
	require.Equal(t, []string{"buyer@example.com"}, mailer.sent)
	require.Equal(t, uint64(1), counters.EmailsSent)
}

func TestVerify_NoEmailNoMailerCall(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _ := newService(&fakeFetcher{}, mailer, nil)

	sig := signature.Payment("order_1", "pay_1", secret)

	_, err := svc.Verify(context.Background(), "order_1", "pay_1", sig, "")
	require.NoError(t, err)
	require.Empty(t, mailer.sent)
}

func TestVerify_IsIdempotent(t *testing.T) {
	svc, counters := newService(&fakeFetcher{}, nil, nil)

	sig := signature.Payment("order_1", "pay_1", secret)

	for i := 0; i < 2; i++ {
		res, err := svc.Verify(context.Background(), "order_1", "pay_1", sig, "")
		require.NoError(t, err)
		require.Equal(t, "pay_1", res.PaymentID)
	}
	require.Equal(t, uint64(2), counters.PaymentsVerified)
}

func TestVerify_PublishesVerifiedEvent(t *testing.T) {
	bus := eventbus.NewInMemoryBus()

	var got []event.Event
	bus.Subscribe(event.PaymentVerified, func(evt event.Event) error {
		got = append(got, evt)
		return nil
	})

	svc, _ := newService(&fakeFetcher{}, nil, bus)

	sig := signature.Payment("order_1", "pay_1", secret)

	_, err := svc.Verify(context.Background(), "order_1", "pay_1", sig, "a@b.com")
	require.NoError(t, err)

	require.Len(t, got, 1)
	payload, ok := got[0].Payload.(event.PaymentVerifiedPayload)
	require.True(t, ok)
	require.Equal(t, "order_1", payload.OrderID)
	require.Equal(t, "pay_1", payload.PaymentID)
	require.Equal(t, "a@b.com", payload.Email)
}

func TestVerify_SubscriberFailureDoesNotFailVerification(t *testing.T) {
	bus := eventbus.NewInMemoryBus()
	bus.Subscribe(event.PaymentVerified, func(event.Event) error {
		return errors.New("journal unavailable")
	})

	svc, _ := newService(&fakeFetcher{}, nil, bus)

	sig := signature.Payment("order_1", "pay_1", secret)

	res, err := svc.Verify(context.Background(), "order_1", "pay_1", sig, "")
	require.NoError(t, err)
	require.Equal(t, "pay_1", res.PaymentID)
}
