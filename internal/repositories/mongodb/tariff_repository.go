package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
	"taxidesk/pkg/cache"
)

type tariffRepository struct {
	collection *mongo.Collection
	packages   *mongo.Collection
	cache      cache.Service
}

func NewTariffRepository(db *mongo.Database, cache cache.Service) interfaces.TariffRepository {
	return &tariffRepository{
		collection: db.Collection("tariffs"),
		packages:   db.Collection("package_tariffs"),
		cache:      cache,
	}
}

func tariffCacheKey(serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole) string {
	return fmt.Sprintf("%s%s:%s:%s", utils.CacheTariffPrefix, serviceID.Hex(), vehicleID.Hex(), createdBy)
}

func (r *tariffRepository) GetByCombination(ctx context.Context, serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole) (*models.Tariff, error) {
	key := tariffCacheKey(serviceID, vehicleID, createdBy)
	var cached models.Tariff
	if err := r.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	var tariff models.Tariff
	err := r.collection.FindOne(ctx, bson.M{
		"service_id": serviceID,
		"vehicle_id": vehicleID,
		"created_by": createdBy,
	}).Decode(&tariff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tariff: %w", err)
	}

	r.cache.Set(ctx, key, &tariff, utils.TariffCacheTTL)
	return &tariff, nil
}

func (r *tariffRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tariff, error) {
	var tariff models.Tariff
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tariff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tariff: %w", err)
	}
	return &tariff, nil
}

// Upsert writes the row for the tariff's (service, vehicle, creator)
// combination. The unique compound index makes concurrent upserts converge on
// a single row.
func (r *tariffRepository) Upsert(ctx context.Context, tariff *models.Tariff) error {
	now := time.Now()
	filter := bson.M{
		"service_id": tariff.ServiceID,
		"vehicle_id": tariff.VehicleID,
		"created_by": tariff.CreatedBy,
	}
	update := bson.M{
		"$set": bson.M{
			"price":       tariff.Price,
			"extra_price": tariff.ExtraPrice,
			"status":      tariff.Status,
			"updated_at":  now,
		},
		"$setOnInsert": bson.M{
			"service_id": tariff.ServiceID,
			"vehicle_id": tariff.VehicleID,
			"created_by": tariff.CreatedBy,
			"version":    int64(0),
			"created_at": now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert tariff: %w", err)
	}

	r.cache.Delete(ctx, tariffCacheKey(tariff.ServiceID, tariff.VehicleID, tariff.CreatedBy))
	return nil
}

func (r *tariffRepository) UpdateWithVersion(ctx context.Context, id primitive.ObjectID, version int64, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "version": version},
		bson.M{"$set": updates, "$inc": bson.M{"version": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to update tariff: %w", err)
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing row from a stale version.
		count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if countErr == nil && count == 0 {
			return interfaces.ErrNotFound
		}
		return interfaces.ErrVersionConflict
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *tariffRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.invalidate(ctx, id)
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete tariff: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *tariffRepository) BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	for _, id := range ids {
		r.invalidate(ctx, id)
	}
	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete tariffs: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *tariffRepository) List(ctx context.Context, params *utils.PaginationParams, createdBy *models.CreatorRole) ([]*models.Tariff, int64, error) {
	filter := bson.M{}
	if createdBy != nil {
		filter["created_by"] = *createdBy
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tariffs: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tariffs: %w", err)
	}
	defer cursor.Close(ctx)

	var tariffs []*models.Tariff
	if err := cursor.All(ctx, &tariffs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode tariffs: %w", err)
	}
	return tariffs, total, nil
}

func (r *tariffRepository) ListPackages(ctx context.Context, serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole) ([]*models.PackageTariff, error) {
	cursor, err := r.packages.Find(ctx, bson.M{
		"service_id": serviceID,
		"vehicle_id": vehicleID,
		"created_by": createdBy,
	}, options.Find().SetSort(bson.D{{Key: "day_or_hour", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list package tariffs: %w", err)
	}
	defer cursor.Close(ctx)

	var rungs []*models.PackageTariff
	if err := cursor.All(ctx, &rungs); err != nil {
		return nil, fmt.Errorf("failed to decode package tariffs: %w", err)
	}
	return rungs, nil
}

// ReplacePackages swaps the whole ladder for a combination in one shot so a
// partial edit never leaves a mixed ladder behind.
func (r *tariffRepository) ReplacePackages(ctx context.Context, serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole, rungs []*models.PackageTariff) error {
	filter := bson.M{
		"service_id": serviceID,
		"vehicle_id": vehicleID,
		"created_by": createdBy,
	}
	if _, err := r.packages.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to clear package tariffs: %w", err)
	}

	if len(rungs) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(rungs))
	for _, rung := range rungs {
		rung.ID = primitive.NewObjectID()
		rung.ServiceID = serviceID
		rung.VehicleID = vehicleID
		rung.CreatedBy = createdBy
		rung.CreatedAt = now
		rung.UpdatedAt = now
		docs = append(docs, rung)
	}

	if _, err := r.packages.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert package tariffs: %w", err)
	}
	return nil
}

func (r *tariffRepository) DeletePackages(ctx context.Context, serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole) (int64, error) {
	result, err := r.packages.DeleteMany(ctx, bson.M{
		"service_id": serviceID,
		"vehicle_id": vehicleID,
		"created_by": createdBy,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete package tariffs: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *tariffRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	tariff, err := r.GetByID(ctx, id)
	if err != nil {
		return
	}
	r.cache.Delete(ctx, tariffCacheKey(tariff.ServiceID, tariff.VehicleID, tariff.CreatedBy))
}
