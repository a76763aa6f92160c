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
)

type vendorRepository struct {
	collection *mongo.Collection
}

func NewVendorRepository(db *mongo.Database) interfaces.VendorRepository {
	return &vendorRepository{collection: db.Collection("vendors")}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	vendor.ID = primitive.NewObjectID()
	now := time.Now()
	vendor.CreatedAt = now
	vendor.UpdatedAt = now
	if vendor.Status == "" {
		vendor.Status = models.VendorStatusActive
	}

	_, err := r.collection.InsertOne(ctx, vendor)
	if err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

func (r *vendorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vendor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}
	return &vendor, nil
}

func (r *vendorRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update vendor: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *vendorRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.VendorStatus, reason string) error {
	return r.Update(ctx, id, map[string]interface{}{
		"status":        status,
		"status_reason": reason,
	})
}

func (r *vendorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *vendorRepository) BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete vendors: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *vendorRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vendor, int64, error) {
	filter := params.GetSearchFilter([]string{"company_name", "contact_person", "phone"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count vendors: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer cursor.Close(ctx)

	var vendors []*models.Vendor
	if err := cursor.All(ctx, &vendors); err != nil {
		return nil, 0, fmt.Errorf("failed to decode vendors: %w", err)
	}
	return vendors, total, nil
}

func (r *vendorRepository) IncrementBookings(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"total_bookings": 1},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to increment vendor bookings: %w", err)
	}
	return nil
}

func (r *vendorRepository) AdjustWallet(ctx context.Context, id primitive.ObjectID, delta float64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"wallet_balance": delta},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to adjust vendor wallet: %w", err)
	}
	return nil
}
