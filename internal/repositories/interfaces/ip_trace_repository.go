package interfaces

import (
	"context"
	"time"

	"taxidesk/internal/models"
	"taxidesk/internal/utils"
)

// PathHit is one row of the "most visited screens" analytics table.
type PathHit struct {
	Path  string `json:"path" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

type IPTraceRepository interface {
	Insert(ctx context.Context, trace *models.IPTrace) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.IPTrace, int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	UniqueVisitorsSince(ctx context.Context, since time.Time) (int64, error)
	TopPaths(ctx context.Context, since time.Time, limit int) ([]*PathHit, error)
}
