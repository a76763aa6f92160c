package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IPTrace is one recorded dashboard request, used by the analytics screens.
type IPTrace struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	IP        string              `json:"ip" bson:"ip"`
	UserAgent string              `json:"user_agent" bson:"user_agent"`
	Method    string              `json:"method" bson:"method"`
	Path      string              `json:"path" bson:"path"`
	UserID    *primitive.ObjectID `json:"user_id" bson:"user_id"`
	SessionID string              `json:"session_id" bson:"session_id"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
}
