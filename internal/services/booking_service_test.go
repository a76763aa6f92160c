package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/fare"
	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
)

type stubBookingRepo struct {
	stored            *models.Booking
	created           *models.Booking
	updates           map[string]interface{}
	updateVersion     int64
	updateWithVersion func(ctx context.Context, id primitive.ObjectID, version int64, updates map[string]interface{}) error
}

func (s *stubBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	s.created = booking
	return nil
}

func (s *stubBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	if s.stored == nil {
		return nil, interfaces.ErrNotFound
	}
	return s.stored, nil
}

func (s *stubBookingRepo) GetByNumber(ctx context.Context, bookingNumber string) (*models.Booking, error) {
	return nil, interfaces.ErrNotFound
}

func (s *stubBookingRepo) UpdateWithVersion(ctx context.Context, id primitive.ObjectID, version int64, updates map[string]interface{}) error {
	if s.updateWithVersion != nil {
		return s.updateWithVersion(ctx, id, version, updates)
	}
	s.updates = updates
	s.updateVersion = version
	return nil
}

func (s *stubBookingRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func (s *stubBookingRepo) BulkDelete(ctx context.Context, ids []primitive.ObjectID, vendorID *primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (s *stubBookingRepo) List(ctx context.Context, params *utils.PaginationParams, filter *interfaces.BookingListFilter) ([]*models.Booking, int64, error) {
	return nil, 0, nil
}

func (s *stubBookingRepo) CountByStatus(ctx context.Context, vendorID *primitive.ObjectID) (map[models.BookingStatus]int64, error) {
	return nil, nil
}

func (s *stubBookingRepo) RevenueBetween(ctx context.Context, from, to time.Time, vendorID *primitive.ObjectID) (*interfaces.RevenueSummary, error) {
	return &interfaces.RevenueSummary{}, nil
}

type stubCustomerRepo struct {
	statsBumped float64
}

func (s *stubCustomerRepo) Create(ctx context.Context, customer *models.Customer) error { return nil }

func (s *stubCustomerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	return &models.Customer{ID: id}, nil
}

func (s *stubCustomerRepo) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return nil, interfaces.ErrNotFound
}

func (s *stubCustomerRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (s *stubCustomerRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func (s *stubCustomerRepo) BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (s *stubCustomerRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Customer, int64, error) {
	return nil, 0, nil
}

func (s *stubCustomerRepo) IncrementBookingStats(ctx context.Context, id primitive.ObjectID, amount float64) error {
	s.statsBumped += amount
	return nil
}

type stubServiceRepo struct {
	service *models.Service
}

func (s *stubServiceRepo) Create(ctx context.Context, service *models.Service) error { return nil }

func (s *stubServiceRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Service, error) {
	if s.service == nil {
		return nil, interfaces.ErrNotFound
	}
	return s.service, nil
}

func (s *stubServiceRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (s *stubServiceRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func (s *stubServiceRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Service, int64, error) {
	return nil, 0, nil
}

func (s *stubServiceRepo) ListActive(ctx context.Context) ([]*models.Service, error) { return nil, nil }

type stubDriverRepo struct {
	tripsBumped int
}

func (s *stubDriverRepo) Create(ctx context.Context, driver *models.Driver) error { return nil }

func (s *stubDriverRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	return nil, interfaces.ErrNotFound
}

func (s *stubDriverRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (s *stubDriverRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func (s *stubDriverRepo) BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (s *stubDriverRepo) List(ctx context.Context, params *utils.PaginationParams, vendorID *primitive.ObjectID) ([]*models.Driver, int64, error) {
	return nil, 0, nil
}

func (s *stubDriverRepo) UpdateDeviceToken(ctx context.Context, id primitive.ObjectID, token, platform string) error {
	return nil
}

func (s *stubDriverRepo) IncrementTrips(ctx context.Context, id primitive.ObjectID) error {
	s.tripsBumped++
	return nil
}

func (s *stubDriverRepo) AdjustWallet(ctx context.Context, id primitive.ObjectID, delta float64) error {
	return nil
}

type stubVendorRepo struct {
	bookingsBumped int
}

func (s *stubVendorRepo) Create(ctx context.Context, vendor *models.Vendor) error { return nil }

func (s *stubVendorRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vendor, error) {
	return nil, interfaces.ErrNotFound
}

func (s *stubVendorRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (s *stubVendorRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.VendorStatus, reason string) error {
	return nil
}

func (s *stubVendorRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func (s *stubVendorRepo) BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (s *stubVendorRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vendor, int64, error) {
	return nil, 0, nil
}

func (s *stubVendorRepo) IncrementBookings(ctx context.Context, id primitive.ObjectID) error {
	s.bookingsBumped++
	return nil
}

func (s *stubVendorRepo) AdjustWallet(ctx context.Context, id primitive.ObjectID, delta float64) error {
	return nil
}

type bookingFixture struct {
	svc          *BookingService
	bookingRepo  *stubBookingRepo
	customerRepo *stubCustomerRepo
	driverRepo   *stubDriverRepo
	vendorRepo   *stubVendorRepo
}

func newBookingFixture(t *testing.T, tariffPrice float64) *bookingFixture {
	t.Helper()
	log := testLogger(t)

	bookingRepo := &stubBookingRepo{}
	customerRepo := &stubCustomerRepo{}
	driverRepo := &stubDriverRepo{}
	vendorRepo := &stubVendorRepo{}
	serviceRepo := &stubServiceRepo{service: &models.Service{
		Tax:   models.ServiceTax{GST: 5, VendorGST: 10},
		MinKM: 3,
	}}
	tariffRepo := &stubTariffRepo{
		getByCombination: func(ctx context.Context, sID, vID primitive.ObjectID, createdBy models.CreatorRole) (*models.Tariff, error) {
			return &models.Tariff{Price: tariffPrice, Status: true}, nil
		},
	}
	notifier := NewNotificationService(nil, nil, nil, nil, nil, nil, log)

	return &bookingFixture{
		svc: NewBookingService(
			bookingRepo, customerRepo, driverRepo, vendorRepo, serviceRepo,
			NewTariffService(tariffRepo, log), nil, notifier, log),
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		driverRepo:   driverRepo,
		vendorRepo:   vendorRepo,
	}
}

func TestCreateBookingDerivesAmounts(t *testing.T) {
	f := newBookingFixture(t, 12)
	vehicleID := primitive.NewObjectID()

	booking, err := f.svc.Create(context.Background(), &CreateBookingRequest{
		CustomerID:    primitive.NewObjectID(),
		ServiceID:     primitive.NewObjectID(),
		VehicleID:     &vehicleID,
		PickupAddress: "12 MG Road",
		Distance:      100,
		DriverBeta:    50,
		ExtraCharges:  map[string]string{"waiting": "20"},
	}, models.RoleAdmin, nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(booking.BookingNumber, utils.BookingNumberPrefix))
	assert.Equal(t, models.BookingStatusCreated, booking.Status)
	assert.Equal(t, 12.0, booking.PricePerKM)
	assert.Equal(t, 5.0, booking.TaxPercentage)
	assert.Equal(t, 1200.0, booking.EstimatedAmount)
	assert.Equal(t, 60.0, booking.TaxAmount)
	assert.Equal(t, 1330.0, booking.FinalAmount)
	assert.Equal(t, 1330.0, f.customerRepo.statsBumped)
	require.NotNil(t, f.bookingRepo.created)
}

func TestCreateBookingVendorUsesVendorTax(t *testing.T) {
	f := newBookingFixture(t, 10)
	vendorID := primitive.NewObjectID()

	booking, err := f.svc.Create(context.Background(), &CreateBookingRequest{
		CustomerID:    primitive.NewObjectID(),
		ServiceID:     primitive.NewObjectID(),
		PickupAddress: "12 MG Road",
		Distance:      50,
	}, models.RoleVendor, &vendorID)
	require.NoError(t, err)

	assert.Equal(t, 10.0, booking.TaxPercentage)
	assert.Equal(t, 1, f.vendorRepo.bookingsBumped)
}

func TestCreateBookingFloorsShortHops(t *testing.T) {
	f := newBookingFixture(t, 10)

	booking, err := f.svc.Create(context.Background(), &CreateBookingRequest{
		CustomerID:    primitive.NewObjectID(),
		ServiceID:     primitive.NewObjectID(),
		PickupAddress: "12 MG Road",
		Distance:      1.5,
	}, models.RoleAdmin, nil)
	require.NoError(t, err)

	assert.Equal(t, 3.0, booking.Distance, "short hops bill at the service minimum")
}

func TestUpdateRecalculatesOnDistanceChange(t *testing.T) {
	f := newBookingFixture(t, 10)
	f.bookingRepo.stored = &models.Booking{
		ID:            primitive.NewObjectID(),
		Status:        models.BookingStatusCreated,
		Distance:      100,
		PricePerKM:    10,
		TaxPercentage: 5,
		Version:       2,
	}

	distance := 150.0
	booking, err := f.svc.Update(context.Background(), f.bookingRepo.stored.ID, &UpdateBookingRequest{
		Version:  2,
		Distance: &distance,
	})
	require.NoError(t, err)

	assert.Equal(t, 1500.0, booking.EstimatedAmount)
	assert.Equal(t, 75.0, booking.TaxAmount)
	assert.Equal(t, int64(3), booking.Version)
	assert.Equal(t, int64(2), f.bookingRepo.updateVersion)
	assert.Equal(t, 150.0, f.bookingRepo.updates["distance"])
	assert.Equal(t, 1575.0, f.bookingRepo.updates["final_amount"])
}

func TestUpdateIgnoresLockedFieldsAfterStart(t *testing.T) {
	f := newBookingFixture(t, 10)
	f.bookingRepo.stored = &models.Booking{
		ID:            primitive.NewObjectID(),
		Status:        models.BookingStatusStarted,
		Distance:      100,
		PricePerKM:    10,
		TaxPercentage: 5,
		Version:       1,
	}

	distance := 999.0
	booking, err := f.svc.Update(context.Background(), f.bookingRepo.stored.ID, &UpdateBookingRequest{
		Version:  1,
		Distance: &distance,
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, booking.Distance, "planning fields freeze once the trip starts")
	assert.Nil(t, f.bookingRepo.updates, "a fully ignored edit writes nothing")
}

func TestUpdateAcceptsOdometerWithReconciliationCharges(t *testing.T) {
	f := newBookingFixture(t, 10)
	f.bookingRepo.stored = &models.Booking{
		ID:                 primitive.NewObjectID(),
		Status:             models.BookingStatusStarted,
		Distance:           100,
		PricePerKM:         10,
		TaxPercentage:      5,
		StartOdometerValue: 1000,
		Version:            4,
	}

	endOdo := 1120.0
	extra := fare.Charges{"night halt": "300"}

	booking, err := f.svc.Update(context.Background(), f.bookingRepo.stored.ID, &UpdateBookingRequest{
		Version:          4,
		EndOdometerValue: &endOdo,
		ExtraCharges:     &extra,
	})
	require.NoError(t, err)

	assert.Equal(t, 1120.0, booking.EndOdometerValue)
	assert.Equal(t, 120.0, booking.TripCompleted.Distance)
	// 120 km * 10 = 1200, tax 60, plus the night halt charge
	assert.Equal(t, 1200.0, booking.TripCompleted.EstimatedAmount)
	assert.Equal(t, 1560.0, booking.TripCompleted.FinalAmount)
}

func TestCompleteTripValidatesOdometer(t *testing.T) {
	f := newBookingFixture(t, 10)
	now := time.Now()
	f.bookingRepo.stored = &models.Booking{
		ID:                 primitive.NewObjectID(),
		Status:             models.BookingStatusStarted,
		PricePerKM:         10,
		TaxPercentage:      5,
		StartOdometerValue: 1000,
		StartedAt:          &now,
	}

	_, err := f.svc.CompleteTrip(context.Background(), f.bookingRepo.stored.ID, 0, 900)
	assert.ErrorIs(t, err, ErrOdometerRequired)

	_, err = f.svc.CompleteTrip(context.Background(), f.bookingRepo.stored.ID, 0, 0)
	assert.ErrorIs(t, err, ErrOdometerRequired)
}

func TestCompleteTripDerivesTripAmounts(t *testing.T) {
	f := newBookingFixture(t, 10)
	driverID := primitive.NewObjectID()
	started := time.Now().Add(-90 * time.Minute)
	f.bookingRepo.stored = &models.Booking{
		ID:                 primitive.NewObjectID(),
		DriverID:           &driverID,
		Status:             models.BookingStatusStarted,
		PricePerKM:         10,
		TaxPercentage:      5,
		StartOdometerValue: 1000,
		StartedAt:          &started,
		Version:            1,
	}

	booking, err := f.svc.CompleteTrip(context.Background(), f.bookingRepo.stored.ID, 1, 1150)
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusCompleted, booking.Status)
	assert.Equal(t, 150.0, booking.TripCompleted.Distance)
	assert.Equal(t, 1500.0, booking.TripCompleted.EstimatedAmount)
	assert.Equal(t, 75.0, booking.TripCompleted.TaxAmount)
	assert.InDelta(t, 90, booking.TripCompleted.Duration, 1)
	assert.Equal(t, int64(2), booking.Version)
	assert.Equal(t, 1, f.driverRepo.tripsBumped)
}

func TestLifecycleTransitionsEnforced(t *testing.T) {
	f := newBookingFixture(t, 10)
	f.bookingRepo.stored = &models.Booking{
		ID:     primitive.NewObjectID(),
		Status: models.BookingStatusCreated,
	}

	_, err := f.svc.CompleteTrip(context.Background(), f.bookingRepo.stored.ID, 0, 1100)
	assert.ErrorIs(t, err, ErrInvalidTransition, "created bookings cannot jump straight to completed")

	f.bookingRepo.stored.Status = models.BookingStatusStarted
	_, err = f.svc.Cancel(context.Background(), f.bookingRepo.stored.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidTransition, "started trips cannot be cancelled")
}

func TestUpdatePropagatesBookingVersionConflict(t *testing.T) {
	f := newBookingFixture(t, 10)
	f.bookingRepo.stored = &models.Booking{
		ID:            primitive.NewObjectID(),
		Status:        models.BookingStatusCreated,
		PricePerKM:    10,
		TaxPercentage: 5,
		Version:       5,
	}
	f.bookingRepo.updateWithVersion = func(ctx context.Context, id primitive.ObjectID, version int64, updates map[string]interface{}) error {
		return interfaces.ErrVersionConflict
	}

	distance := 120.0
	_, err := f.svc.Update(context.Background(), f.bookingRepo.stored.ID, &UpdateBookingRequest{
		Version:  4,
		Distance: &distance,
	})
	assert.ErrorIs(t, err, interfaces.ErrVersionConflict)
}
