package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "active"
	VendorStatusInactive VendorStatus = "inactive"
	VendorStatusBlocked  VendorStatus = "blocked"
)

type Vendor struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CompanyName   string             `json:"company_name" bson:"company_name" validate:"required"`
	ContactPerson string             `json:"contact_person" bson:"contact_person"`
	Phone         string             `json:"phone" bson:"phone" validate:"required"`
	Email         string             `json:"email" bson:"email"`
	Address       string             `json:"address" bson:"address"`
	GSTNumber     string             `json:"gst_number" bson:"gst_number"`
	Status        VendorStatus       `json:"status" bson:"status" default:"active"`
	StatusReason  string             `json:"status_reason" bson:"status_reason"`
	WalletBalance float64            `json:"wallet_balance" bson:"wallet_balance" default:"0"`
	TotalBookings int64              `json:"total_bookings" bson:"total_bookings" default:"0"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}
