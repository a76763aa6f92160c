package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationChannel string

const (
	NotificationChannelSMS   NotificationChannel = "sms"
	NotificationChannelPush  NotificationChannel = "push"
	NotificationChannelInApp NotificationChannel = "in_app"
)

type Notification struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Title       string              `json:"title" bson:"title"`
	Body        string              `json:"body" bson:"body"`
	Channel     NotificationChannel `json:"channel" bson:"channel"`
	RecipientID *primitive.ObjectID `json:"recipient_id" bson:"recipient_id"`
	BookingID   *primitive.ObjectID `json:"booking_id" bson:"booking_id"`
	Delivered   bool                `json:"delivered" bson:"delivered"`
	Read        bool                `json:"read" bson:"read"`
	Error       string              `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
}
