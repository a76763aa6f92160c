package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoid   InvoiceStatus = "void"
)

type Invoice struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	InvoiceNumber   string              `json:"invoice_number" bson:"invoice_number"`
	BookingID       primitive.ObjectID  `json:"booking_id" bson:"booking_id" validate:"required"`
	CustomerID      primitive.ObjectID  `json:"customer_id" bson:"customer_id"`
	CreatedBy       CreatorRole         `json:"created_by" bson:"created_by"`
	VendorID        *primitive.ObjectID `json:"vendor_id,omitempty" bson:"vendor_id,omitempty"`
	Status          InvoiceStatus       `json:"status" bson:"status" default:"draft"`
	EstimatedAmount float64             `json:"estimated_amount" bson:"estimated_amount"`
	TaxAmount       float64             `json:"tax_amount" bson:"tax_amount"`
	DiscountAmount  float64             `json:"discount_amount" bson:"discount_amount"`
	AdvanceAmount   float64             `json:"advance_amount" bson:"advance_amount"`
	FinalAmount     float64             `json:"final_amount" bson:"final_amount"`
	RemainingAmount float64             `json:"remaining_amount" bson:"remaining_amount"`
	Currency        string              `json:"currency" bson:"currency" default:"INR"`
	PaymentLinkID   string              `json:"payment_link_id" bson:"payment_link_id"`
	PaymentLinkURL  string              `json:"payment_link_url" bson:"payment_link_url"`
	PaidAt          *time.Time          `json:"paid_at" bson:"paid_at"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" bson:"updated_at"`
}
