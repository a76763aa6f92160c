package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EnquiryStatus string

const (
	EnquiryStatusOpen      EnquiryStatus = "open"
	EnquiryStatusContacted EnquiryStatus = "contacted"
	EnquiryStatusConverted EnquiryStatus = "converted"
	EnquiryStatusClosed    EnquiryStatus = "closed"
)

type Enquiry struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	Phone     string             `json:"phone" bson:"phone" validate:"required"`
	Email     string             `json:"email" bson:"email"`
	Message   string             `json:"message" bson:"message"`
	Source    string             `json:"source" bson:"source"` // website, phone, walk-in
	Status    EnquiryStatus      `json:"status" bson:"status" default:"open"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
