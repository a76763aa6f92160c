package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/models"
	"taxidesk/internal/utils"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	MarkDelivered(ctx context.Context, id primitive.ObjectID, deliveryErr string) error
	MarkRead(ctx context.Context, id primitive.ObjectID) error
	ListByRecipient(ctx context.Context, recipientID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Notification, int64, error)
	CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error)
}
