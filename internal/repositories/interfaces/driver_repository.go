package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/models"
	"taxidesk/internal/utils"
)

type DriverRepository interface {
	Create(ctx context.Context, driver *models.Driver) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	List(ctx context.Context, params *utils.PaginationParams, vendorID *primitive.ObjectID) ([]*models.Driver, int64, error)

	UpdateDeviceToken(ctx context.Context, id primitive.ObjectID, token, platform string) error
	IncrementTrips(ctx context.Context, id primitive.ObjectID) error
	AdjustWallet(ctx context.Context, id primitive.ObjectID, delta float64) error
}
