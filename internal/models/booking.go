package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/fare"
)

type BookingStatus string

const (
	BookingStatusCreated   BookingStatus = "Created"
	BookingStatusStarted   BookingStatus = "Started"
	BookingStatusCompleted BookingStatus = "Completed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// ModifiedFare is the single source of truth for the permit/toll/hill
// surcharges shown in the fare popup. Top-level copies of these fields do not
// exist on the booking record.
type ModifiedFare struct {
	ExtraPermitCharge float64 `json:"extra_permit_charge" bson:"extra_permit_charge"`
	ExtraToll         float64 `json:"extra_toll" bson:"extra_toll"`
	ExtraHill         float64 `json:"extra_hill" bson:"extra_hill"`
}

// Sum is the surcharge total fed into the fare calculator.
func (m ModifiedFare) Sum() float64 {
	return m.ExtraPermitCharge + m.ExtraToll + m.ExtraHill
}

type FareBreakdown struct {
	ModifiedFare ModifiedFare `json:"modified_fare" bson:"modified_fare"`
}

// TripCompletion is the parallel field set captured after the trip ends.
// The amounts are derived, never edited directly.
type TripCompletion struct {
	Distance        float64 `json:"distance" bson:"distance"`
	Duration        float64 `json:"duration" bson:"duration"`
	EstimatedAmount float64 `json:"estimated_amount" bson:"estimated_amount"`
	TaxAmount       float64 `json:"tax_amount" bson:"tax_amount"`
	FinalAmount     float64 `json:"final_amount" bson:"final_amount"`
}

type Booking struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	BookingNumber  string              `json:"booking_number" bson:"booking_number"`
	CustomerID     primitive.ObjectID  `json:"customer_id" bson:"customer_id" validate:"required"`
	DriverID       *primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	VehicleID      *primitive.ObjectID `json:"vehicle_id" bson:"vehicle_id"`
	VendorID       *primitive.ObjectID `json:"vendor_id" bson:"vendor_id"`
	ServiceID      primitive.ObjectID  `json:"service_id" bson:"service_id" validate:"required"`
	CreatedBy      CreatorRole         `json:"created_by" bson:"created_by"`
	Status         BookingStatus       `json:"status" bson:"status" default:"Created"`
	PickupAddress  string              `json:"pickup_address" bson:"pickup_address" validate:"required"`
	DropAddress    string              `json:"drop_address" bson:"drop_address"`
	PickupDateTime time.Time           `json:"pickup_datetime" bson:"pickup_datetime"`

	Distance        float64      `json:"distance" bson:"distance"`
	PricePerKM      float64      `json:"price_per_km" bson:"price_per_km"`
	DriverBeta      float64      `json:"driver_beta" bson:"driver_beta"`
	TaxPercentage   float64      `json:"tax_percentage" bson:"tax_percentage"`
	EstimatedAmount float64      `json:"estimated_amount" bson:"estimated_amount"`
	TaxAmount       float64      `json:"tax_amount" bson:"tax_amount"`
	DiscountAmount  float64      `json:"discount_amount" bson:"discount_amount"`
	AdvanceAmount   float64      `json:"advance_amount" bson:"advance_amount"`
	FinalAmount     float64      `json:"final_amount" bson:"final_amount"`
	RemainingAmount float64      `json:"remaining_amount" bson:"remaining_amount"`
	DriverCharges   fare.Charges `json:"driver_charges" bson:"driver_charges"`
	ExtraCharges    fare.Charges `json:"extra_charges" bson:"extra_charges"`

	FareBreakdown FareBreakdown `json:"fare_breakdown" bson:"fare_breakdown"`

	StartOdometerValue float64        `json:"start_odometer_value" bson:"start_odometer_value"`
	EndOdometerValue   float64        `json:"end_odometer_value" bson:"end_odometer_value"`
	TripCompleted      TripCompletion `json:"trip_completed" bson:"trip_completed"`

	DriverDeductionAmount float64 `json:"driver_deduction_amount" bson:"driver_deduction_amount"`
	AdminCommission       float64 `json:"admin_commission" bson:"admin_commission"`

	Version   int64      `json:"version" bson:"version"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
	StartedAt *time.Time `json:"started_at" bson:"started_at"`
	EndedAt   *time.Time `json:"ended_at" bson:"ended_at"`
}

// CanTransition reports whether the lifecycle move is allowed.
// Created -> Started -> Completed, with cancellation possible before start.
func (b *Booking) CanTransition(next BookingStatus) bool {
	switch b.Status {
	case BookingStatusCreated:
		return next == BookingStatusStarted || next == BookingStatusCancelled
	case BookingStatusStarted:
		return next == BookingStatusCompleted
	default:
		return false
	}
}
