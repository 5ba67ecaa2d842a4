// Package signature implements the HMAC contracts shared with the
// payment gateway. The payment signature covers the exact string
// "<order_id>|<payment_id>" and the webhook signature covers the raw
// request body; both are hex-encoded HMAC-SHA256 digests.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Payment computes the expected checkout-callback signature for an
// order/payment pair. The concatenation order is part of the gateway
// contract and must not change.
func Payment(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPayment checks a supplied signature against the expected one in
// constant time.
func VerifyPayment(orderID, paymentID, secret, provided string) bool {
	expected := Payment(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(provided))
}

// Webhook computes the expected signature over a raw webhook body.
func Webhook(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhook checks the x-razorpay-signature header value against
// the digest of the raw body in constant time.
func VerifyWebhook(body []byte, secret, provided string) bool {
	expected := Webhook(body, secret)
	return hmac.Equal([]byte(expected), []byte(provided))
}
