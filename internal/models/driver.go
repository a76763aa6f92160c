package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverStatus string

const (
	DriverStatusActive    DriverStatus = "active"
	DriverStatusInactive  DriverStatus = "inactive"
	DriverStatusSuspended DriverStatus = "suspended"
)

type Driver struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name            string              `json:"name" bson:"name" validate:"required"`
	Phone           string              `json:"phone" bson:"phone" validate:"required"`
	Email           string              `json:"email" bson:"email"`
	LicenseNumber   string              `json:"license_number" bson:"license_number"`
	LicenseExpiry   time.Time           `json:"license_expiry" bson:"license_expiry"`
	LicenseDocument string              `json:"license_document" bson:"license_document"`
	ProfilePicture  string              `json:"profile_picture" bson:"profile_picture"`
	VendorID        *primitive.ObjectID `json:"vendor_id" bson:"vendor_id"`
	CreatedBy       CreatorRole         `json:"created_by" bson:"created_by"`
	Status          DriverStatus        `json:"status" bson:"status" default:"active"`
	DeviceToken     string              `json:"device_token" bson:"device_token"`
	DevicePlatform  string              `json:"device_platform" bson:"device_platform"` // android, ios
	WalletBalance   float64             `json:"wallet_balance" bson:"wallet_balance" default:"0"`
	TotalTrips      int64               `json:"total_trips" bson:"total_trips" default:"0"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" bson:"updated_at"`
}
