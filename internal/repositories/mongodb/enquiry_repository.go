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

type enquiryRepository struct {
	collection *mongo.Collection
}

func NewEnquiryRepository(db *mongo.Database) interfaces.EnquiryRepository {
	return &enquiryRepository{collection: db.Collection("enquiries")}
}

func (r *enquiryRepository) Create(ctx context.Context, enquiry *models.Enquiry) error {
	enquiry.ID = primitive.NewObjectID()
	now := time.Now()
	enquiry.CreatedAt = now
	enquiry.UpdatedAt = now
	if enquiry.Status == "" {
		enquiry.Status = models.EnquiryStatusOpen
	}

	_, err := r.collection.InsertOne(ctx, enquiry)
	if err != nil {
		return fmt.Errorf("failed to create enquiry: %w", err)
	}
	return nil
}

func (r *enquiryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&enquiry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get enquiry: %w", err)
	}
	return &enquiry, nil
}

func (r *enquiryRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update enquiry: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *enquiryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete enquiry: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *enquiryRepository) BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete enquiries: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *enquiryRepository) List(ctx context.Context, params *utils.PaginationParams, status models.EnquiryStatus) ([]*models.Enquiry, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "phone", "email"})
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count enquiries: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list enquiries: %w", err)
	}
	defer cursor.Close(ctx)

	var enquiries []*models.Enquiry
	if err := cursor.All(ctx, &enquiries); err != nil {
		return nil, 0, fmt.Errorf("failed to decode enquiries: %w", err)
	}
	return enquiries, total, nil
}
