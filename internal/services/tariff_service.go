package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
	"taxidesk/pkg/logger"
)

var ErrPackageLadderMismatch = errors.New("package ladder arrays must have equal lengths")

// SaveTariffRequest is the km-tariff form body. The combination identifies the
// row; price fields overwrite whatever is stored for it.
type SaveTariffRequest struct {
	ServiceID  primitive.ObjectID `json:"service_id" binding:"required"`
	VehicleID  primitive.ObjectID `json:"vehicle_id" binding:"required"`
	Price      float64            `json:"price"`
	ExtraPrice float64            `json:"extra_price"`
	Status     bool               `json:"status"`
}

// SavePackageLadderRequest replaces the whole day/hourly ladder for a
// combination. The three slices are parallel: index i describes one rung.
type SavePackageLadderRequest struct {
	ServiceID      primitive.ObjectID `json:"service_id" binding:"required"`
	VehicleID      primitive.ObjectID `json:"vehicle_id" binding:"required"`
	Type           models.PackageType `json:"type" binding:"required"`
	DaysOrHours    []float64          `json:"days_or_hours"`
	DistanceLimits []float64          `json:"distance_limits"`
	Prices         []float64          `json:"prices"`
	ExtraPrice     float64            `json:"extra_price"`
	DriverBeta     float64            `json:"driver_beta"`
}

type TariffService struct {
	repo   interfaces.TariffRepository
	logger *logger.Logger
}

func NewTariffService(repo interfaces.TariffRepository, log *logger.Logger) *TariffService {
	return &TariffService{
		repo:   repo,
		logger: log.WithField("service", "tariff"),
	}
}

// Resolve finds the effective tariff for a (service, vehicle) pair as seen by
// the given role. Vendors fall back to the admin tariff when they have none of
// their own; the admin row is then copied under the vendor role so the next
// lookup hits directly. When neither role has a row, a zeroed tariff is
// materialized so the booking screen always has something to edit.
func (s *TariffService) Resolve(ctx context.Context, serviceID, vehicleID primitive.ObjectID, role models.CreatorRole) (*models.ResolvedTariff, error) {
	tariff, err := s.repo.GetByCombination(ctx, serviceID, vehicleID, role)
	if err == nil {
		return &models.ResolvedTariff{
			Price:      tariff.Price,
			ExtraPrice: tariff.ExtraPrice,
			Status:     tariff.Status,
			CreatedBy:  role,
		}, nil
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve tariff: %w", err)
	}

	resolved := &models.ResolvedTariff{Status: true, CreatedBy: role}

	if role == models.RoleVendor {
		adminTariff, adminErr := s.repo.GetByCombination(ctx, serviceID, vehicleID, models.RoleAdmin)
		if adminErr == nil {
			resolved.Price = adminTariff.Price
			resolved.ExtraPrice = adminTariff.ExtraPrice
			resolved.Status = adminTariff.Status
		} else if !errors.Is(adminErr, interfaces.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve admin tariff: %w", adminErr)
		}
	}

	// Materialize the resolved row under the requesting role, retagged when
	// it came from the admin fallback.
	err = s.repo.Upsert(ctx, &models.Tariff{
		ServiceID:  serviceID,
		VehicleID:  vehicleID,
		CreatedBy:  role,
		Price:      resolved.Price,
		ExtraPrice: resolved.ExtraPrice,
		Status:     resolved.Status,
	})
	if err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"service_id": serviceID.Hex(),
			"vehicle_id": vehicleID.Hex(),
			"role":       role,
		}).Warn("failed to materialize resolved tariff")
	}

	return resolved, nil
}

// Save writes the tariff for the request's combination under the given role.
func (s *TariffService) Save(ctx context.Context, req *SaveTariffRequest, role models.CreatorRole) (*models.Tariff, error) {
	tariff := &models.Tariff{
		ServiceID:  req.ServiceID,
		VehicleID:  req.VehicleID,
		CreatedBy:  role,
		Price:      req.Price,
		ExtraPrice: req.ExtraPrice,
		Status:     req.Status,
	}
	if err := s.repo.Upsert(ctx, tariff); err != nil {
		return nil, err
	}
	return s.repo.GetByCombination(ctx, req.ServiceID, req.VehicleID, role)
}

// Update edits an existing tariff row under optimistic concurrency.
func (s *TariffService) Update(ctx context.Context, id primitive.ObjectID, version int64, price, extraPrice float64, status bool) error {
	return s.repo.UpdateWithVersion(ctx, id, version, map[string]interface{}{
		"price":       price,
		"extra_price": extraPrice,
		"status":      status,
	})
}

func (s *TariffService) Get(ctx context.Context, id primitive.ObjectID) (*models.Tariff, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TariffService) List(ctx context.Context, params *utils.PaginationParams, createdBy *models.CreatorRole) ([]*models.Tariff, int64, error) {
	return s.repo.List(ctx, params, createdBy)
}

func (s *TariffService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}

func (s *TariffService) BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return s.repo.BulkDelete(ctx, ids)
}

// SavePackageLadder validates the parallel rung arrays and swaps the stored
// ladder wholesale. A mismatched submission is rejected before anything is
// deleted.
func (s *TariffService) SavePackageLadder(ctx context.Context, req *SavePackageLadderRequest, role models.CreatorRole) ([]*models.PackageTariff, error) {
	n := len(req.DaysOrHours)
	if len(req.DistanceLimits) != n || len(req.Prices) != n {
		return nil, ErrPackageLadderMismatch
	}

	rungs := make([]*models.PackageTariff, 0, n)
	for i := 0; i < n; i++ {
		rungs = append(rungs, &models.PackageTariff{
			Type:          req.Type,
			DayOrHour:     req.DaysOrHours[i],
			DistanceLimit: req.DistanceLimits[i],
			Price:         req.Prices[i],
			ExtraPrice:    req.ExtraPrice,
			DriverBeta:    req.DriverBeta,
			Status:        true,
		})
	}

	if err := s.repo.ReplacePackages(ctx, req.ServiceID, req.VehicleID, role, rungs); err != nil {
		return nil, err
	}
	return s.repo.ListPackages(ctx, req.ServiceID, req.VehicleID, role)
}

func (s *TariffService) ListPackages(ctx context.Context, serviceID, vehicleID primitive.ObjectID, role models.CreatorRole) ([]*models.PackageTariff, error) {
	return s.repo.ListPackages(ctx, serviceID, vehicleID, role)
}

func (s *TariffService) DeletePackages(ctx context.Context, serviceID, vehicleID primitive.ObjectID, role models.CreatorRole) (int64, error) {
	return s.repo.DeletePackages(ctx, serviceID, vehicleID, role)
}
