package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/models"
	"taxidesk/internal/utils"
)

// BookingListFilter narrows the booking list view. Zero values mean "no
// constraint"; VendorID scopes vendor logins to their own rows.
type BookingListFilter struct {
	Status     models.BookingStatus
	CustomerID *primitive.ObjectID
	DriverID   *primitive.ObjectID
	VendorID   *primitive.ObjectID
	From       *time.Time
	To         *time.Time
}

// RevenueSummary feeds the dashboard tiles.
type RevenueSummary struct {
	TotalBookings   int64   `json:"total_bookings" bson:"total_bookings"`
	TotalRevenue    float64 `json:"total_revenue" bson:"total_revenue"`
	TotalCommission float64 `json:"total_commission" bson:"total_commission"`
	TotalTax        float64 `json:"total_tax" bson:"total_tax"`
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetByNumber(ctx context.Context, bookingNumber string) (*models.Booking, error)

	// UpdateWithVersion applies updates only when the stored version matches,
	// bumping the version in the same write. Returns ErrVersionConflict when
	// the booking moved on.
	UpdateWithVersion(ctx context.Context, id primitive.ObjectID, version int64, updates map[string]interface{}) error

	Delete(ctx context.Context, id primitive.ObjectID) error
	BulkDelete(ctx context.Context, ids []primitive.ObjectID, vendorID *primitive.ObjectID) (int64, error)
	List(ctx context.Context, params *utils.PaginationParams, filter *BookingListFilter) ([]*models.Booking, int64, error)

	CountByStatus(ctx context.Context, vendorID *primitive.ObjectID) (map[models.BookingStatus]int64, error)
	RevenueBetween(ctx context.Context, from, to time.Time, vendorID *primitive.ObjectID) (*RevenueSummary, error)
}
