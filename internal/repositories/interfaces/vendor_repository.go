package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/models"
	"taxidesk/internal/utils"
)

type VendorRepository interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vendor, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.VendorStatus, reason string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vendor, int64, error)

	IncrementBookings(ctx context.Context, id primitive.ObjectID) error
	AdjustWallet(ctx context.Context, id primitive.ObjectID, delta float64) error
}
