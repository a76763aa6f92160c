package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/razorpay/razorpay-go"
)

type RazorpayProvider struct {
	client        *razorpay.Client
	webhookSecret string
}

func NewRazorpayProvider(keyID, keySecret, webhookSecret string) *RazorpayProvider {
	return &RazorpayProvider{
		client:        razorpay.NewClient(keyID, keySecret),
		webhookSecret: webhookSecret,
	}
}

func (r *RazorpayProvider) CreatePaymentLink(ctx context.Context, request *PaymentLinkRequest) (*PaymentLinkResponse, error) {
	data := map[string]interface{}{
		"amount":          int(request.Amount * 100), // paise
		"currency":        request.Currency,
		"description":     request.Description,
		"reference_id":    request.Reference,
		"callback_url":    request.CallbackURL,
		"callback_method": "get",
		"customer": map[string]interface{}{
			"name":    request.CustomerName,
			"contact": request.CustomerPhone,
			"email":   request.CustomerEmail,
		},
		"notes": request.Notes,
	}

	link, err := r.client.PaymentLink.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}

	return &PaymentLinkResponse{
		LinkID:    link["id"].(string),
		URL:       link["short_url"].(string),
		Status:    link["status"].(string),
		Amount:    request.Amount,
		Currency:  request.Currency,
		CreatedAt: time.Now().Unix(),
	}, nil
}

func (r *RazorpayProvider) ValidateWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error) {
	expected := r.generateSignature(string(payload))
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return nil, fmt.Errorf("invalid webhook signature")
	}

	var event map[string]interface{}
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal webhook payload: %w", err)
	}

	webhookEvent := &WebhookEvent{
		EventType: stringField(event, "event"),
		Data:      event,
		CreatedAt: time.Now().Unix(),
	}
	if payload, ok := event["payload"].(map[string]interface{}); ok {
		if link, ok := payload["payment_link"].(map[string]interface{}); ok {
			if entity, ok := link["entity"].(map[string]interface{}); ok {
				webhookEvent.EventID = stringField(entity, "id")
				webhookEvent.Reference = stringField(entity, "reference_id")
			}
		}
	}
	return webhookEvent, nil
}

func (r *RazorpayProvider) generateSignature(payload string) string {
	h := hmac.New(sha256.New, []byte(r.webhookSecret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
