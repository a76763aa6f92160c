package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
	"taxidesk/pkg/cache"
)

type bookingRepository struct {
	collection *mongo.Collection
	cache      cache.Service
}

func NewBookingRepository(db *mongo.Database, cache cache.Service) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("bookings"),
		cache:      cache,
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	booking.Version = 0

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	key := utils.CacheBookingPrefix + id.Hex()
	var cached models.Booking
	if err := r.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	// Active trips get hit on every dashboard refresh.
	if booking.Status == models.BookingStatusCreated || booking.Status == models.BookingStatusStarted {
		r.cache.Set(ctx, key, &booking, 5*time.Minute)
	}
	return &booking, nil
}

func (r *bookingRepository) GetByNumber(ctx context.Context, bookingNumber string) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"booking_number": bookingNumber}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking by number: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateWithVersion(ctx context.Context, id primitive.ObjectID, version int64, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "version": version},
		bson.M{"$set": updates, "$inc": bson.M{"version": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if countErr == nil && count == 0 {
			return interfaces.ErrNotFound
		}
		return interfaces.ErrVersionConflict
	}

	r.cache.Delete(ctx, utils.CacheBookingPrefix+id.Hex())
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}
	r.cache.Delete(ctx, utils.CacheBookingPrefix+id.Hex())
	return nil
}

func (r *bookingRepository) BulkDelete(ctx context.Context, ids []primitive.ObjectID, vendorID *primitive.ObjectID) (int64, error) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, utils.CacheBookingPrefix+id.Hex())
	}
	r.cache.Delete(ctx, keys...)

	filter := bson.M{"_id": bson.M{"$in": ids}}
	if vendorID != nil {
		filter["vendor_id"] = *vendorID
	}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete bookings: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *bookingRepository) List(ctx context.Context, params *utils.PaginationParams, filter *interfaces.BookingListFilter) ([]*models.Booking, int64, error) {
	query := params.GetSearchFilter([]string{"booking_number", "pickup_address", "drop_address"})
	if filter != nil {
		if filter.Status != "" {
			query["status"] = filter.Status
		}
		if filter.CustomerID != nil {
			query["customer_id"] = *filter.CustomerID
		}
		if filter.DriverID != nil {
			query["driver_id"] = *filter.DriverID
		}
		if filter.VendorID != nil {
			query["vendor_id"] = *filter.VendorID
		}
		if filter.From != nil || filter.To != nil {
			dateRange := bson.M{}
			if filter.From != nil {
				dateRange["$gte"] = *filter.From
			}
			if filter.To != nil {
				dateRange["$lte"] = *filter.To
			}
			query["pickup_datetime"] = dateRange
		}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context, vendorID *primitive.ObjectID) (map[models.BookingStatus]int64, error) {
	match := bson.M{}
	if vendorID != nil {
		match["vendor_id"] = *vendorID
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status models.BookingStatus `bson:"_id"`
		Count  int64                `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode status counts: %w", err)
	}

	counts := make(map[models.BookingStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *bookingRepository) RevenueBetween(ctx context.Context, from, to time.Time, vendorID *primitive.ObjectID) (*interfaces.RevenueSummary, error) {
	match := bson.M{
		"status":     models.BookingStatusCompleted,
		"created_at": bson.M{"$gte": from, "$lte": to},
	}
	if vendorID != nil {
		match["vendor_id"] = *vendorID
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":              nil,
			"total_bookings":   bson.M{"$sum": 1},
			"total_revenue":    bson.M{"$sum": "$trip_completed.final_amount"},
			"total_commission": bson.M{"$sum": "$admin_commission"},
			"total_tax":        bson.M{"$sum": "$trip_completed.tax_amount"},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []*interfaces.RevenueSummary
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode revenue summary: %w", err)
	}
	if len(rows) == 0 {
		return &interfaces.RevenueSummary{}, nil
	}
	return rows[0], nil
}
