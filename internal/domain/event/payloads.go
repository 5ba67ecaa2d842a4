package event

// PaymentVerifiedPayload is published when a checkout callback passes
// the signature check.
type PaymentVerifiedPayload struct {
	OrderID   string
	PaymentID string
	Email     string
}

// PaymentCapturedPayload is published from the webhook when the gateway
// reports money received.
type PaymentCapturedPayload struct {
	PaymentID string
	Amount    int64
	Email     string
}

// PaymentFailedPayload is published from the webhook when a payment
// attempt fails on the gateway side.
type PaymentFailedPayload struct {
	PaymentID string
	Reason    string
}
