package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/models"
	"taxidesk/internal/utils"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error)
	GetByBookingID(ctx context.Context, bookingID primitive.ObjectID) (*models.Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	MarkPaid(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams, status models.InvoiceStatus, vendorID *primitive.ObjectID) ([]*models.Invoice, int64, error)
}
