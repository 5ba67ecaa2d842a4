// Package gateway holds the Razorpay API client. Orders are created
// through POST /v1/orders and payments re-fetched through
// GET /v1/payments/:id using basic auth with the key id/secret pair.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bloomwithanjli/checkout/internal/domain/order"
	"github.com/bloomwithanjli/checkout/internal/domain/payment"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

const defaultTimeout = 15 * time.Second

type Client struct {
	http *resty.Client
}

type Option func(*Client)

// WithBaseURL points the client at a different API host. Used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(url)
	}
}

func NewClient(keyID, keySecret string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(defaultBaseURL).
			SetBasicAuth(keyID, keySecret).
			SetTimeout(defaultTimeout).
			SetHeader("Content-Type", "application/json"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type orderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type paymentResponse struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
	Email  string `json:"email"`
}

type apiError struct {
	Err struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *Client) CreateOrder(ctx context.Context, req order.Request) (*order.Order, error) {
	body := orderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	}

	var out orderResponse
	var apiErr apiError

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("gateway: create order: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("gateway: create order: %s (%s)", apiErr.Err.Description, res.Status())
	}

	return &order.Order{
		ID:       out.ID,
		Amount:   out.Amount,
		Currency: out.Currency,
		Receipt:  out.Receipt,
	}, nil
}

func (c *Client) FetchPayment(ctx context.Context, id string) (*payment.Payment, error) {
	var out paymentResponse
	var apiErr apiError

	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiErr).
		SetPathParam("id", id).
		Get("/payments/{id}")
	if err != nil {
		return nil, fmt.Errorf("gateway: fetch payment %s: %w", id, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("gateway: fetch payment %s: %s (%s)", id, apiErr.Err.Description, res.Status())
	}

	return &payment.Payment{
		ID:     out.ID,
		Amount: out.Amount,
		Status: payment.Status(out.Status),
		Email:  out.Email,
	}, nil
}
