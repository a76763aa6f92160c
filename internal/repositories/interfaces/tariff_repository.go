package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/models"
	"taxidesk/internal/utils"
)

type TariffRepository interface {
	// GetByCombination fetches the row for one (service, vehicle, creator)
	// triple. Returns ErrNotFound when no row exists; the resolver uses that
	// to fall back from the vendor row to the admin row.
	GetByCombination(ctx context.Context, serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole) (*models.Tariff, error)

	// Upsert writes the tariff for its combination, inserting when absent.
	Upsert(ctx context.Context, tariff *models.Tariff) error

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tariff, error)

	// UpdateWithVersion applies updates only when the stored version matches.
	// Returns ErrVersionConflict when it does not.
	UpdateWithVersion(ctx context.Context, id primitive.ObjectID, version int64, updates map[string]interface{}) error

	Delete(ctx context.Context, id primitive.ObjectID) error
	BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	List(ctx context.Context, params *utils.PaginationParams, createdBy *models.CreatorRole) ([]*models.Tariff, int64, error)

	// Package tariff ladders. Rungs for a combination are replaced wholesale,
	// never patched rung by rung.
	ListPackages(ctx context.Context, serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole) ([]*models.PackageTariff, error)
	ReplacePackages(ctx context.Context, serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole, rungs []*models.PackageTariff) error
	DeletePackages(ctx context.Context, serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole) (int64, error)
}
