package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PackageType string

const (
	PackageTypeDay    PackageType = "day"
	PackageTypeHourly PackageType = "hourly"
)

// Tariff is the per-km price for one (service, vehicle, creator) combination.
// At most one effective row per combination is expected; lookups fall back
// from Vendor to Admin when the vendor-specific row is absent.
type Tariff struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ServiceID  primitive.ObjectID `json:"service_id" bson:"service_id" validate:"required"`
	VehicleID  primitive.ObjectID `json:"vehicle_id" bson:"vehicle_id" validate:"required"`
	CreatedBy  CreatorRole        `json:"created_by" bson:"created_by" validate:"required"`
	Price      float64            `json:"price" bson:"price"`
	ExtraPrice float64            `json:"extra_price" bson:"extra_price"`
	Status     bool               `json:"status" bson:"status" default:"true"`
	Version    int64              `json:"version" bson:"version"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// PackageTariff is one rung of a day/hourly price ladder, e.g.
// "4 Hours - 40 Km - 2000". All rungs for a (service, vehicle, creator)
// combination share one extra price and one driver beta.
type PackageTariff struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ServiceID     primitive.ObjectID `json:"service_id" bson:"service_id" validate:"required"`
	VehicleID     primitive.ObjectID `json:"vehicle_id" bson:"vehicle_id" validate:"required"`
	CreatedBy     CreatorRole        `json:"created_by" bson:"created_by" validate:"required"`
	Type          PackageType        `json:"type" bson:"type" validate:"required"`
	DayOrHour     float64            `json:"day_or_hour" bson:"day_or_hour"`
	DistanceLimit float64            `json:"distance_limit" bson:"distance_limit"`
	Price         float64            `json:"price" bson:"price"`
	ExtraPrice    float64            `json:"extra_price" bson:"extra_price"`
	DriverBeta    float64            `json:"driver_beta" bson:"driver_beta"`
	Status        bool               `json:"status" bson:"status" default:"true"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// ResolvedTariff is what the resolver hands back to the booking pipeline. It
// is not persisted as-is; CreatedBy reflects the role the row will be written
// under, which may differ from the row it was read from.
type ResolvedTariff struct {
	Price      float64     `json:"price"`
	ExtraPrice float64     `json:"extra_price"`
	Status     bool        `json:"status"`
	CreatedBy  CreatorRole `json:"created_by"`
}
