package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/models"
	"taxidesk/internal/utils"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*models.Customer, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Customer, int64, error)

	// IncrementBookingStats bumps the counters shown on the customer card.
	IncrementBookingStats(ctx context.Context, id primitive.ObjectID, amount float64) error
}
