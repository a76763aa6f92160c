package payment

import "context"

// PaymentProvider creates hosted payment links the dashboard shares with
// customers to collect the remaining amount of an invoice.
type PaymentProvider interface {
	CreatePaymentLink(ctx context.Context, request *PaymentLinkRequest) (*PaymentLinkResponse, error)
	ValidateWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error)
}

type PaymentLinkRequest struct {
	Amount        float64           `json:"amount"` // major currency units
	Currency      string            `json:"currency"`
	Description   string            `json:"description"`
	Reference     string            `json:"reference"` // invoice number
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	CustomerEmail string            `json:"customer_email"`
	CallbackURL   string            `json:"callback_url"`
	Notes         map[string]string `json:"notes"`
}

type PaymentLinkResponse struct {
	LinkID    string  `json:"link_id"`
	URL       string  `json:"url"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	CreatedAt int64   `json:"created_at"`
}

type WebhookEvent struct {
	EventID   string                 `json:"event_id"`
	EventType string                 `json:"event_type"`
	Reference string                 `json:"reference"`
	Data      map[string]interface{} `json:"data"`
	CreatedAt int64                  `json:"created_at"`
}
