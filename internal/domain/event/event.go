package event

type Type string

const (
	PaymentVerified Type = "VERIFIED"
	PaymentCaptured Type = "CAPTURED"
	PaymentFailed   Type = "FAILED"
)

type Event struct {
	Type    Type
	Payload any
}
