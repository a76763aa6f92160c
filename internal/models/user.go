package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is a dashboard login. Vendor users are scoped to their vendor record;
// admin users see everything.
type User struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name" validate:"required"`
	Email       string              `json:"email" bson:"email" validate:"required,email"`
	Password    string              `json:"-" bson:"password"`
	Role        CreatorRole         `json:"role" bson:"role" validate:"required"`
	VendorID    *primitive.ObjectID `json:"vendor_id" bson:"vendor_id"`
	Status      UserStatus          `json:"status" bson:"status" default:"active"`
	LastLoginAt *time.Time          `json:"last_login_at" bson:"last_login_at"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`
}
