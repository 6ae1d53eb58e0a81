package sdk

import (
	"context"
	"net/http"
	"time"
)

// PaymentIntent is the payment-processor handshake returned by the
// backend; the client secret is consumed by the processor's own SDK.
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

// RecordPaymentInput stores a completed payment.
type RecordPaymentInput struct {
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	TransactionID string  `json:"transactionId"`
	Type          string  `json:"type"` // "subscription" or "boost"
	IssueID       string  `json:"issueId,omitempty"`
}

// CreatePaymentIntent starts the payment-processor handshake for a price.
func (c *Client) CreatePaymentIntent(ctx context.Context, price float64) (*PaymentIntent, error) {
	if price <= 0 {
		return nil, &ValidationError{Field: "price", Message: "price must be positive"}
	}
	body := map[string]float64{"price": price}
	var intent PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/create-payment-intent", nil, body, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// RecordPayment writes the payment record after the processor confirms.
func (c *Client) RecordPayment(ctx context.Context, input RecordPaymentInput) error {
	payment := Payment{
		Email:         input.Email,
		Name:          input.Name,
		Price:         input.Price,
		TransactionID: input.TransactionID,
		Date:          time.Now().UTC(),
		Type:          input.Type,
		IssueID:       input.IssueID,
		Status:        "success",
	}
	return c.do(ctx, http.MethodPost, "/payments", nil, payment, nil)
}

// ListPayments returns all recorded payments (admin only).
func (c *Client) ListPayments(ctx context.Context) ([]Payment, error) {
	var payments []Payment
	if err := c.do(ctx, http.MethodGet, "/payments", nil, nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
