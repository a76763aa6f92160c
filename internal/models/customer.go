package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Customer struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name" validate:"required"`
	Phone         string             `json:"phone" bson:"phone" validate:"required"`
	Email         string             `json:"email" bson:"email"`
	Address       string             `json:"address" bson:"address"`
	CreatedBy     CreatorRole        `json:"created_by" bson:"created_by"`
	TotalBookings int64              `json:"total_bookings" bson:"total_bookings" default:"0"`
	TotalAmount   float64            `json:"total_amount" bson:"total_amount" default:"0"`
	IsActive      bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}
