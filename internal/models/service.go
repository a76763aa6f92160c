package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceTax holds the GST percentages applied to bookings of this service.
type ServiceTax struct {
	GST       float64 `json:"gst" bson:"gst"`
	VendorGST float64 `json:"vendor_gst" bson:"vendor_gst"`
}

// Service is one bookable trip type ("One way", "Round trip", "Airport Pickup",
// "Hourly Packages", ...).
type Service struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name" validate:"required"`
	Tax              ServiceTax         `json:"tax" bson:"tax"`
	IsActive         bool               `json:"is_active" bson:"is_active" default:"true"`
	MinKM            float64            `json:"min_km" bson:"min_km"`
	DriverCommission float64            `json:"driver_commission" bson:"driver_commission"`
	VendorCommission float64            `json:"vendor_commission" bson:"vendor_commission"`
	Include          []string           `json:"include" bson:"include"`
	Exclude          []string           `json:"exclude" bson:"exclude"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}
