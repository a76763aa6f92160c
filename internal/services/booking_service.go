package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/fare"
	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
	"taxidesk/pkg/logger"
	"taxidesk/pkg/maps"
)

var (
	ErrInvalidTransition = errors.New("booking status transition not allowed")
	ErrOdometerRequired  = errors.New("end odometer reading is required")
)

// CreateBookingRequest is the new-booking form body. Distance may be left
// zero when both addresses are given; the route estimator fills it in.
type CreateBookingRequest struct {
	CustomerID     primitive.ObjectID  `json:"customer_id" binding:"required"`
	ServiceID      primitive.ObjectID  `json:"service_id" binding:"required"`
	VehicleID      *primitive.ObjectID `json:"vehicle_id"`
	DriverID       *primitive.ObjectID `json:"driver_id"`
	PickupAddress  string              `json:"pickup_address" binding:"required"`
	DropAddress    string              `json:"drop_address"`
	PickupDateTime time.Time           `json:"pickup_datetime"`
	Distance       float64             `json:"distance"`
	DriverBeta     float64             `json:"driver_beta"`
	DiscountAmount float64             `json:"discount_amount"`
	AdvanceAmount  float64             `json:"advance_amount"`
	DriverCharges  fare.Charges        `json:"driver_charges"`
	ExtraCharges   fare.Charges        `json:"extra_charges"`
	ModifiedFare   models.ModifiedFare `json:"modified_fare"`
}

// UpdateBookingRequest carries only the fields the operator touched. Version
// is the copy the form was loaded from; a stale version is rejected with a
// conflict. Fields locked by the current edit phase are ignored, not errors,
// so a form that still posts them cannot corrupt derived values.
type UpdateBookingRequest struct {
	Version int64 `json:"version"`

	Distance       *float64             `json:"distance"`
	PickupAddress  *string              `json:"pickup_address"`
	DropAddress    *string              `json:"drop_address"`
	PickupDateTime *time.Time           `json:"pickup_datetime"`
	DriverID       *primitive.ObjectID  `json:"driver_id"`
	VehicleID      *primitive.ObjectID  `json:"vehicle_id"`
	DriverBeta     *float64             `json:"driver_beta"`
	DiscountAmount *float64             `json:"discount_amount"`
	AdvanceAmount  *float64             `json:"advance_amount"`
	DriverCharges  *fare.Charges        `json:"driver_charges"`
	ExtraCharges   *fare.Charges        `json:"extra_charges"`
	ModifiedFare   *models.ModifiedFare `json:"modified_fare"`

	EndOdometerValue      *float64 `json:"end_odometer_value"`
	DriverDeductionAmount *float64 `json:"driver_deduction_amount"`
	AdminCommission       *float64 `json:"admin_commission"`
}

type BookingService struct {
	repo         interfaces.BookingRepository
	customerRepo interfaces.CustomerRepository
	driverRepo   interfaces.DriverRepository
	vendorRepo   interfaces.VendorRepository
	serviceRepo  interfaces.ServiceRepository
	tariffs      *TariffService
	estimator    maps.DistanceEstimator
	notifier     *NotificationService
	logger       *logger.Logger
}

func NewBookingService(
	repo interfaces.BookingRepository,
	customerRepo interfaces.CustomerRepository,
	driverRepo interfaces.DriverRepository,
	vendorRepo interfaces.VendorRepository,
	serviceRepo interfaces.ServiceRepository,
	tariffs *TariffService,
	estimator maps.DistanceEstimator,
	notifier *NotificationService,
	log *logger.Logger,
) *BookingService {
	return &BookingService{
		repo:         repo,
		customerRepo: customerRepo,
		driverRepo:   driverRepo,
		vendorRepo:   vendorRepo,
		serviceRepo:  serviceRepo,
		tariffs:      tariffs,
		estimator:    estimator,
		notifier:     notifier,
		logger:       log.WithField("service", "booking"),
	}
}

// Create builds a booking from the form, resolving the tariff for the chosen
// service and vehicle and deriving every amount before the first write.
func (s *BookingService) Create(ctx context.Context, req *CreateBookingRequest, role models.CreatorRole, vendorID *primitive.ObjectID) (*models.Booking, error) {
	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("customer lookup: %w", err)
	}
	svc, err := s.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("service lookup: %w", err)
	}

	taxPercentage := svc.Tax.GST
	if role == models.RoleVendor {
		taxPercentage = svc.Tax.VendorGST
	}

	distance := req.Distance
	if distance == 0 && req.DropAddress != "" && s.estimator != nil {
		if route, estErr := s.estimator.EstimateRoute(ctx, req.PickupAddress, req.DropAddress); estErr == nil {
			distance = route.DistanceKM
		} else {
			s.logger.WithError(estErr).Warn("route estimate failed, distance left for manual entry")
		}
	}
	// Short hops are billed at the service's minimum distance.
	if distance > 0 && distance < svc.MinKM {
		distance = svc.MinKM
	}

	var pricePerKM float64
	if req.VehicleID != nil {
		resolved, resolveErr := s.tariffs.Resolve(ctx, req.ServiceID, *req.VehicleID, role)
		if resolveErr != nil {
			return nil, resolveErr
		}
		pricePerKM = resolved.Price
	}

	booking := &models.Booking{
		BookingNumber:  utils.GenerateReference(utils.BookingNumberPrefix),
		CustomerID:     req.CustomerID,
		DriverID:       req.DriverID,
		VehicleID:      req.VehicleID,
		VendorID:       vendorID,
		ServiceID:      req.ServiceID,
		CreatedBy:      role,
		Status:         models.BookingStatusCreated,
		PickupAddress:  req.PickupAddress,
		DropAddress:    req.DropAddress,
		PickupDateTime: req.PickupDateTime,
		Distance:       distance,
		PricePerKM:     pricePerKM,
		DriverBeta:     req.DriverBeta,
		TaxPercentage:  taxPercentage,
		DiscountAmount: req.DiscountAmount,
		AdvanceAmount:  req.AdvanceAmount,
		DriverCharges:  req.DriverCharges,
		ExtraCharges:   req.ExtraCharges,
		FareBreakdown:  models.FareBreakdown{ModifiedFare: req.ModifiedFare},
	}
	applyAmounts(booking, fare.Recalculate(bookingSnapshot(booking, distance)))

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.customerRepo.IncrementBookingStats(ctx, booking.CustomerID, booking.FinalAmount); err != nil {
		s.logger.WithError(err).Warn("failed to bump customer stats")
	}
	if vendorID != nil {
		if err := s.vendorRepo.IncrementBookings(ctx, *vendorID); err != nil {
			s.logger.WithError(err).Warn("failed to bump vendor stats")
		}
	}

	s.notifier.NotifyBookingEvent(ctx, utils.EventBookingCreated, booking)
	s.logger.WithField("booking", booking.BookingNumber).Info("booking created")
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BookingService) GetByNumber(ctx context.Context, number string) (*models.Booking, error) {
	return s.repo.GetByNumber(ctx, number)
}

func (s *BookingService) List(ctx context.Context, params *utils.PaginationParams, filter *interfaces.BookingListFilter) ([]*models.Booking, int64, error) {
	return s.repo.List(ctx, params, filter)
}

// Update applies an operator edit under the phase gating rules and recomputes
// every derived amount from the surviving inputs.
func (s *BookingService) Update(ctx context.Context, id primitive.ObjectID, req *UpdateBookingRequest) (*models.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	status := string(booking.Status)
	endOdo := booking.EndOdometerValue

	accept := func(field string, mode fare.EditMode, apply func()) {
		if fare.FieldEditable(field, mode, status, endOdo) {
			apply()
		}
	}

	// Trip planning fields, frozen once the trip starts.
	accept("distance", fare.EditModeBefore, func() {
		if req.Distance != nil {
			booking.Distance = *req.Distance
			updates["distance"] = booking.Distance
		}
	})
	accept("pickupAddress", fare.EditModeBefore, func() {
		if req.PickupAddress != nil {
			booking.PickupAddress = *req.PickupAddress
			updates["pickup_address"] = booking.PickupAddress
		}
	})
	accept("dropAddress", fare.EditModeBefore, func() {
		if req.DropAddress != nil {
			booking.DropAddress = *req.DropAddress
			updates["drop_address"] = booking.DropAddress
		}
	})
	accept("pickupDateTime", fare.EditModeBefore, func() {
		if req.PickupDateTime != nil {
			booking.PickupDateTime = *req.PickupDateTime
			updates["pickup_datetime"] = booking.PickupDateTime
		}
	})
	accept("driverId", fare.EditModeBefore, func() {
		if req.DriverID != nil {
			booking.DriverID = req.DriverID
			updates["driver_id"] = booking.DriverID
		}
	})
	accept("vehicleId", fare.EditModeBefore, func() {
		if req.VehicleID != nil {
			booking.VehicleID = req.VehicleID
			updates["vehicle_id"] = booking.VehicleID
		}
	})
	accept("driverBeta", fare.EditModeBefore, func() {
		if req.DriverBeta != nil {
			booking.DriverBeta = *req.DriverBeta
			updates["driver_beta"] = booking.DriverBeta
		}
	})

	// The end odometer is captured first so the same request can carry the
	// reading and the reconciliation charges together.
	if booking.Status == models.BookingStatusStarted && req.EndOdometerValue != nil {
		booking.EndOdometerValue = *req.EndOdometerValue
		updates["end_odometer_value"] = booking.EndOdometerValue
		endOdo = booking.EndOdometerValue
	}

	// Money fields stay editable through after-trip reconciliation.
	if fieldEditableEitherPhase(status, endOdo) {
		if req.DiscountAmount != nil {
			booking.DiscountAmount = *req.DiscountAmount
			updates["discount_amount"] = booking.DiscountAmount
		}
		if req.AdvanceAmount != nil {
			booking.AdvanceAmount = *req.AdvanceAmount
			updates["advance_amount"] = booking.AdvanceAmount
		}
		if req.DriverCharges != nil {
			booking.DriverCharges = *req.DriverCharges
			updates["driver_charges"] = booking.DriverCharges
		}
		if req.ExtraCharges != nil {
			booking.ExtraCharges = *req.ExtraCharges
			updates["extra_charges"] = booking.ExtraCharges
		}
		if req.ModifiedFare != nil {
			booking.FareBreakdown.ModifiedFare = *req.ModifiedFare
			updates["fare_breakdown.modified_fare"] = booking.FareBreakdown.ModifiedFare
		}
	}

	// After-trip operational fields.
	accept("driverDeductionAmount", fare.EditModeAfter, func() {
		if req.DriverDeductionAmount != nil {
			booking.DriverDeductionAmount = *req.DriverDeductionAmount
			updates["driver_deduction_amount"] = booking.DriverDeductionAmount
		}
	})
	accept("adminCommission", fare.EditModeAfter, func() {
		if req.AdminCommission != nil {
			booking.AdminCommission = *req.AdminCommission
			updates["admin_commission"] = booking.AdminCommission
		}
	})

	if len(updates) == 0 {
		return booking, nil
	}

	// Derived amounts always follow the surviving inputs.
	amounts := fare.Recalculate(bookingSnapshot(booking, booking.Distance))
	applyAmounts(booking, amounts)
	updates["estimated_amount"] = booking.EstimatedAmount
	updates["tax_amount"] = booking.TaxAmount
	updates["final_amount"] = booking.FinalAmount
	updates["remaining_amount"] = booking.RemainingAmount

	if booking.EndOdometerValue > 0 {
		tripDistance := booking.EndOdometerValue - booking.StartOdometerValue
		if tripDistance < 0 {
			tripDistance = 0
		}
		tripAmounts := fare.Recalculate(bookingSnapshot(booking, tripDistance))
		booking.TripCompleted.Distance = tripDistance
		booking.TripCompleted.EstimatedAmount = tripAmounts.EstimatedAmount
		booking.TripCompleted.TaxAmount = tripAmounts.TaxAmount
		booking.TripCompleted.FinalAmount = tripAmounts.FinalAmount
		updates["trip_completed"] = booking.TripCompleted
	}

	if err := s.repo.UpdateWithVersion(ctx, id, req.Version, updates); err != nil {
		return nil, err
	}
	booking.Version = req.Version + 1

	s.notifier.NotifyBookingEvent(ctx, utils.EventBookingUpdated, booking)
	return booking, nil
}

// StartTrip moves a booking to Started and records the opening odometer.
func (s *BookingService) StartTrip(ctx context.Context, id primitive.ObjectID, version int64, startOdometer float64) (*models.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.CanTransition(models.BookingStatusStarted) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	err = s.repo.UpdateWithVersion(ctx, id, version, map[string]interface{}{
		"status":               models.BookingStatusStarted,
		"started_at":           now,
		"start_odometer_value": startOdometer,
	})
	if err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusStarted
	booking.StartedAt = &now
	booking.StartOdometerValue = startOdometer
	booking.Version = version + 1

	s.notifier.NotifyBookingEvent(ctx, utils.EventBookingStarted, booking)
	return booking, nil
}

// CompleteTrip closes a started booking: the trip distance comes from the
// odometer pair and the completed amounts are derived from it with the fare
// inputs frozen at completion time.
func (s *BookingService) CompleteTrip(ctx context.Context, id primitive.ObjectID, version int64, endOdometer float64) (*models.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.CanTransition(models.BookingStatusCompleted) {
		return nil, ErrInvalidTransition
	}
	if endOdometer <= 0 || endOdometer < booking.StartOdometerValue {
		return nil, ErrOdometerRequired
	}

	now := time.Now()
	tripDistance := endOdometer - booking.StartOdometerValue
	var duration float64
	if booking.StartedAt != nil {
		duration = now.Sub(*booking.StartedAt).Minutes()
	}

	booking.EndOdometerValue = endOdometer
	amounts := fare.Recalculate(bookingSnapshot(booking, tripDistance))
	booking.TripCompleted = models.TripCompletion{
		Distance:        tripDistance,
		Duration:        duration,
		EstimatedAmount: amounts.EstimatedAmount,
		TaxAmount:       amounts.TaxAmount,
		FinalAmount:     amounts.FinalAmount,
	}

	err = s.repo.UpdateWithVersion(ctx, id, version, map[string]interface{}{
		"status":             models.BookingStatusCompleted,
		"ended_at":           now,
		"end_odometer_value": endOdometer,
		"trip_completed":     booking.TripCompleted,
	})
	if err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusCompleted
	booking.EndedAt = &now
	booking.Version = version + 1

	if booking.DriverID != nil {
		if err := s.driverRepo.IncrementTrips(ctx, *booking.DriverID); err != nil {
			s.logger.WithError(err).Warn("failed to bump driver trip count")
		}
	}

	s.notifier.NotifyBookingEvent(ctx, utils.EventBookingCompleted, booking)
	s.logger.WithFields(map[string]interface{}{
		"booking":  booking.BookingNumber,
		"distance": tripDistance,
		"final":    booking.TripCompleted.FinalAmount,
	}).Info("trip completed")
	return booking, nil
}

// Cancel aborts a booking that has not started.
func (s *BookingService) Cancel(ctx context.Context, id primitive.ObjectID, version int64) (*models.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.CanTransition(models.BookingStatusCancelled) {
		return nil, ErrInvalidTransition
	}

	err = s.repo.UpdateWithVersion(ctx, id, version, map[string]interface{}{
		"status": models.BookingStatusCancelled,
	})
	if err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusCancelled
	booking.Version = version + 1

	s.notifier.NotifyBookingEvent(ctx, utils.EventBookingCancelled, booking)
	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}

// BulkDelete removes the selected bookings. A vendor scope restricts the
// delete to that vendor's own rows; ids outside the scope are left untouched
// and simply not counted.
func (s *BookingService) BulkDelete(ctx context.Context, ids []primitive.ObjectID, vendorID *primitive.ObjectID) (int64, error) {
	return s.repo.BulkDelete(ctx, ids, vendorID)
}

// Commission builds the payout tooltip for a booking's detail screen.
func (s *BookingService) Commission(ctx context.Context, id primitive.ObjectID) (*fare.CommissionReport, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	report := fare.Commission(fare.CommissionInput{
		DriverDeductionAmount:    booking.DriverDeductionAmount,
		TripCompletedTaxAmount:   booking.TripCompleted.TaxAmount,
		TripCompletedFinalAmount: booking.TripCompleted.FinalAmount,
		AdminCommission:          booking.AdminCommission,
		CreatedBy:                string(booking.CreatedBy),
	})
	return &report, nil
}

func bookingSnapshot(b *models.Booking, distance float64) fare.Snapshot {
	return fare.Snapshot{
		Distance:       distance,
		PricePerKM:     b.PricePerKM,
		TaxPercentage:  b.TaxPercentage,
		DriverBeta:     b.DriverBeta,
		DiscountAmount: b.DiscountAmount,
		AdvanceAmount:  b.AdvanceAmount,
		Surcharge:      b.FareBreakdown.ModifiedFare.Sum(),
		DriverCharges:  b.DriverCharges,
		ExtraCharges:   b.ExtraCharges,
	}
}

func applyAmounts(b *models.Booking, a fare.Amounts) {
	b.EstimatedAmount = a.EstimatedAmount
	b.TaxAmount = a.TaxAmount
	b.FinalAmount = a.FinalAmount
	b.RemainingAmount = a.RemainingAmount
}

// fieldEditableEitherPhase covers the money fields the operator can touch both
// before the trip and during after-trip reconciliation. They only freeze when
// the booking is completed.
func fieldEditableEitherPhase(status string, endOdometerValue float64) bool {
	return fare.FieldEditable("discountAmount", fare.EditModeBefore, status, endOdometerValue) ||
		fare.FieldEditable("discountAmount", fare.EditModeAfter, status, endOdometerValue)
}
