package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleStatus string

const (
	VehicleStatusActive      VehicleStatus = "active"
	VehicleStatusInactive    VehicleStatus = "inactive"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

type Vehicle struct {
	ID                 primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name               string              `json:"name" bson:"name" validate:"required"` // display name, e.g. "Sedan", "Innova"
	Model              string              `json:"model" bson:"model"`
	RegistrationNumber string              `json:"registration_number" bson:"registration_number"`
	Capacity           int                 `json:"capacity" bson:"capacity"`
	VendorID           *primitive.ObjectID `json:"vendor_id" bson:"vendor_id"`
	DriverID           *primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	CreatedBy          CreatorRole         `json:"created_by" bson:"created_by"`
	Status             VehicleStatus       `json:"status" bson:"status" default:"active"`
	Photos             []string            `json:"photos" bson:"photos"`
	InsuranceExpiry    time.Time           `json:"insurance_expiry" bson:"insurance_expiry"`
	InsuranceDocument  string              `json:"insurance_document" bson:"insurance_document"`
	CreatedAt          time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at" bson:"updated_at"`
}
