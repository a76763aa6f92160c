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

type ipTraceRepository struct {
	collection *mongo.Collection
}

func NewIPTraceRepository(db *mongo.Database) interfaces.IPTraceRepository {
	return &ipTraceRepository{collection: db.Collection("ip_traces")}
}

func (r *ipTraceRepository) Insert(ctx context.Context, trace *models.IPTrace) error {
	trace.ID = primitive.NewObjectID()
	trace.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, trace)
	if err != nil {
		return fmt.Errorf("failed to insert ip trace: %w", err)
	}
	return nil
}

func (r *ipTraceRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.IPTrace, int64, error) {
	filter := params.GetSearchFilter([]string{"ip", "path"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count ip traces: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ip traces: %w", err)
	}
	defer cursor.Close(ctx)

	var traces []*models.IPTrace
	if err := cursor.All(ctx, &traces); err != nil {
		return nil, 0, fmt.Errorf("failed to decode ip traces: %w", err)
	}
	return traces, total, nil
}

func (r *ipTraceRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": since}})
	if err != nil {
		return 0, fmt.Errorf("failed to count ip traces: %w", err)
	}
	return count, nil
}

func (r *ipTraceRepository) UniqueVisitorsSince(ctx context.Context, since time.Time) (int64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"created_at": bson.M{"$gte": since}}},
		{"$group": bson.M{"_id": "$ip"}},
		{"$count": "count"},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to count unique visitors: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode visitor count: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Count, nil
}

func (r *ipTraceRepository) TopPaths(ctx context.Context, since time.Time, limit int) ([]*interfaces.PathHit, error) {
	if limit <= 0 {
		limit = 10
	}
	pipeline := []bson.M{
		{"$match": bson.M{"created_at": bson.M{"$gte": since}}},
		{"$group": bson.M{"_id": "$path", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": limit},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top paths: %w", err)
	}
	defer cursor.Close(ctx)

	var hits []*interfaces.PathHit
	if err := cursor.All(ctx, &hits); err != nil {
		return nil, fmt.Errorf("failed to decode top paths: %w", err)
	}
	return hits, nil
}
