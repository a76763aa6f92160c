package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
	"taxidesk/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: "error", Format: "text"})
	require.NoError(t, err)
	return log
}

// stubTariffRepo lets each test wire only the calls it expects.
type stubTariffRepo struct {
	getByCombination func(ctx context.Context, serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole) (*models.Tariff, error)
	upsert           func(ctx context.Context, tariff *models.Tariff) error
	update           func(ctx context.Context, id primitive.ObjectID, version int64, updates map[string]interface{}) error
	replacePackages  func(ctx context.Context, serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole, rungs []*models.PackageTariff) error
	listPackages     func(ctx context.Context, serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole) ([]*models.PackageTariff, error)
}

func (s *stubTariffRepo) GetByCombination(ctx context.Context, serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole) (*models.Tariff, error) {
	return s.getByCombination(ctx, serviceID, vehicleID, createdBy)
}

func (s *stubTariffRepo) Upsert(ctx context.Context, tariff *models.Tariff) error {
	if s.upsert == nil {
		return nil
	}
	return s.upsert(ctx, tariff)
}

func (s *stubTariffRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tariff, error) {
	return nil, interfaces.ErrNotFound
}

func (s *stubTariffRepo) UpdateWithVersion(ctx context.Context, id primitive.ObjectID, version int64, updates map[string]interface{}) error {
	return s.update(ctx, id, version, updates)
}

func (s *stubTariffRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func (s *stubTariffRepo) BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (s *stubTariffRepo) List(ctx context.Context, params *utils.PaginationParams, createdBy *models.CreatorRole) ([]*models.Tariff, int64, error) {
	return nil, 0, nil
}

func (s *stubTariffRepo) ListPackages(ctx context.Context, serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole) ([]*models.PackageTariff, error) {
	if s.listPackages == nil {
		return nil, nil
	}
	return s.listPackages(ctx, serviceID, vehicleID, createdBy)
}

func (s *stubTariffRepo) ReplacePackages(ctx context.Context, serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole, rungs []*models.PackageTariff) error {
	return s.replacePackages(ctx, serviceID, vehicleID, createdBy, rungs)
}

func (s *stubTariffRepo) DeletePackages(ctx context.Context, serviceID, vehicleID primitive.ObjectID, createdBy models.CreatorRole) (int64, error) {
	return 0, nil
}

func TestResolveDirectHit(t *testing.T) {
	serviceID := primitive.NewObjectID()
	vehicleID := primitive.NewObjectID()
	repo := &stubTariffRepo{
		getByCombination: func(ctx context.Context, sID, vID primitive.ObjectID, createdBy models.CreatorRole) (*models.Tariff, error) {
			assert.Equal(t, models.RoleVendor, createdBy)
			return &models.Tariff{Price: 14, ExtraPrice: 16, Status: true}, nil
		},
		upsert: func(ctx context.Context, tariff *models.Tariff) error {
			t.Fatal("direct hit must not materialize a row")
			return nil
		},
	}

	svc := NewTariffService(repo, testLogger(t))
	resolved, err := svc.Resolve(context.Background(), serviceID, vehicleID, models.RoleVendor)
	require.NoError(t, err)
	assert.Equal(t, 14.0, resolved.Price)
	assert.Equal(t, 16.0, resolved.ExtraPrice)
	assert.Equal(t, models.RoleVendor, resolved.CreatedBy)
}

func TestResolveVendorFallsBackToAdmin(t *testing.T) {
	serviceID := primitive.NewObjectID()
	vehicleID := primitive.NewObjectID()

	var materialized *models.Tariff
	repo := &stubTariffRepo{
		getByCombination: func(ctx context.Context, sID, vID primitive.ObjectID, createdBy models.CreatorRole) (*models.Tariff, error) {
			if createdBy == models.RoleVendor {
				return nil, interfaces.ErrNotFound
			}
			return &models.Tariff{Price: 15, ExtraPrice: 18, Status: true, CreatedBy: models.RoleAdmin}, nil
		},
		upsert: func(ctx context.Context, tariff *models.Tariff) error {
			materialized = tariff
			return nil
		},
	}

	svc := NewTariffService(repo, testLogger(t))
	resolved, err := svc.Resolve(context.Background(), serviceID, vehicleID, models.RoleVendor)
	require.NoError(t, err)

	assert.Equal(t, 15.0, resolved.Price)
	assert.Equal(t, models.RoleVendor, resolved.CreatedBy, "fallback row is retagged to the requesting role")

	require.NotNil(t, materialized, "fallback must be written under the vendor role")
	assert.Equal(t, models.RoleVendor, materialized.CreatedBy)
	assert.Equal(t, 15.0, materialized.Price)
}

func TestResolveDefaultsWhenNothingExists(t *testing.T) {
	var materialized *models.Tariff
	repo := &stubTariffRepo{
		getByCombination: func(ctx context.Context, sID, vID primitive.ObjectID, createdBy models.CreatorRole) (*models.Tariff, error) {
			return nil, interfaces.ErrNotFound
		},
		upsert: func(ctx context.Context, tariff *models.Tariff) error {
			materialized = tariff
			return nil
		},
	}

	svc := NewTariffService(repo, testLogger(t))
	resolved, err := svc.Resolve(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), models.RoleVendor)
	require.NoError(t, err)

	assert.Equal(t, 0.0, resolved.Price)
	assert.Equal(t, 0.0, resolved.ExtraPrice)
	assert.True(t, resolved.Status)
	require.NotNil(t, materialized)
	assert.Equal(t, 0.0, materialized.Price)
}

func TestResolveSurvivesUpsertFailure(t *testing.T) {
	repo := &stubTariffRepo{
		getByCombination: func(ctx context.Context, sID, vID primitive.ObjectID, createdBy models.CreatorRole) (*models.Tariff, error) {
			return nil, interfaces.ErrNotFound
		},
		upsert: func(ctx context.Context, tariff *models.Tariff) error {
			return assert.AnError
		},
	}

	svc := NewTariffService(repo, testLogger(t))
	resolved, err := svc.Resolve(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), models.RoleAdmin)
	require.NoError(t, err, "a failed materialization must not fail resolution")
	assert.True(t, resolved.Status)
}

func TestUpdatePropagatesVersionConflict(t *testing.T) {
	repo := &stubTariffRepo{
		update: func(ctx context.Context, id primitive.ObjectID, version int64, updates map[string]interface{}) error {
			assert.Equal(t, int64(3), version)
			return interfaces.ErrVersionConflict
		},
	}

	svc := NewTariffService(repo, testLogger(t))
	err := svc.Update(context.Background(), primitive.NewObjectID(), 3, 20, 24, true)
	assert.ErrorIs(t, err, interfaces.ErrVersionConflict)
}

func TestSavePackageLadderRejectsMismatchedArrays(t *testing.T) {
	repo := &stubTariffRepo{
		replacePackages: func(ctx context.Context, sID, vID primitive.ObjectID, createdBy models.CreatorRole, rungs []*models.PackageTariff) error {
			t.Fatal("mismatched ladder must be rejected before any write")
			return nil
		},
	}

	svc := NewTariffService(repo, testLogger(t))
	_, err := svc.SavePackageLadder(context.Background(), &SavePackageLadderRequest{
		ServiceID:      primitive.NewObjectID(),
		VehicleID:      primitive.NewObjectID(),
		Type:           models.PackageTypeHourly,
		DaysOrHours:    []float64{4, 8},
		DistanceLimits: []float64{40},
		Prices:         []float64{2000, 3500},
	}, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrPackageLadderMismatch)
}

func TestSavePackageLadderBuildsRungs(t *testing.T) {
	var written []*models.PackageTariff
	repo := &stubTariffRepo{
		replacePackages: func(ctx context.Context, sID, vID primitive.ObjectID, createdBy models.CreatorRole, rungs []*models.PackageTariff) error {
			written = rungs
			return nil
		},
		listPackages: func(ctx context.Context, sID, vID primitive.ObjectID, createdBy models.CreatorRole) ([]*models.PackageTariff, error) {
			return written, nil
		},
	}

	svc := NewTariffService(repo, testLogger(t))
	rungs, err := svc.SavePackageLadder(context.Background(), &SavePackageLadderRequest{
		ServiceID:      primitive.NewObjectID(),
		VehicleID:      primitive.NewObjectID(),
		Type:           models.PackageTypeHourly,
		DaysOrHours:    []float64{4, 8},
		DistanceLimits: []float64{40, 80},
		Prices:         []float64{2000, 3500},
		ExtraPrice:     18,
		DriverBeta:     300,
	}, models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, rungs, 2)

	assert.Equal(t, 4.0, rungs[0].DayOrHour)
	assert.Equal(t, 40.0, rungs[0].DistanceLimit)
	assert.Equal(t, 2000.0, rungs[0].Price)
	assert.Equal(t, 18.0, rungs[0].ExtraPrice, "extra price is shared across rungs")
	assert.Equal(t, 300.0, rungs[1].DriverBeta)
	assert.True(t, rungs[1].Status)
}
