package order

// Request is what we send to the gateway when asking for a new order.
// Amount is in minor currency units (paise for INR).
type Request struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// Order is the gateway-issued order, reduced to the fields the client
// is allowed to see. Gateway-internal fields never leave this type.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}
