package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/models"
	"taxidesk/internal/utils"
)

type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *models.Enquiry) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Enquiry, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	List(ctx context.Context, params *utils.PaginationParams, status models.EnquiryStatus) ([]*models.Enquiry, int64, error)
}
