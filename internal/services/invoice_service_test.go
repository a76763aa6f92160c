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
)

// stubInvoiceRepo holds at most one invoice and records updates.
type stubInvoiceRepo struct {
	stored  *models.Invoice
	created *models.Invoice
	updates map[string]interface{}
}

func (s *stubInvoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	invoice.ID = primitive.NewObjectID()
	s.created = invoice
	return nil
}

func (s *stubInvoiceRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	if s.stored == nil || s.stored.ID != id {
		return nil, interfaces.ErrNotFound
	}
	return s.stored, nil
}

func (s *stubInvoiceRepo) GetByBookingID(ctx context.Context, bookingID primitive.ObjectID) (*models.Invoice, error) {
	if s.stored == nil || s.stored.BookingID != bookingID {
		return nil, interfaces.ErrNotFound
	}
	return s.stored, nil
}

func (s *stubInvoiceRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	if s.stored == nil || s.stored.InvoiceNumber != invoiceNumber {
		return nil, interfaces.ErrNotFound
	}
	return s.stored, nil
}

func (s *stubInvoiceRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	s.updates = updates
	return nil
}

func (s *stubInvoiceRepo) MarkPaid(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (s *stubInvoiceRepo) List(ctx context.Context, params *utils.PaginationParams, status models.InvoiceStatus, vendorID *primitive.ObjectID) ([]*models.Invoice, int64, error) {
	return nil, 0, nil
}

func newInvoiceFixture(t *testing.T, repo *stubInvoiceRepo, bookingRepo *stubBookingRepo) *InvoiceService {
	t.Helper()
	return NewInvoiceService(
		repo, bookingRepo, &stubCustomerRepo{}, nil,
		CompanyProfile{Name: "TaxiDesk"}, "https://example.test/callback", testLogger(t),
	)
}

func TestCreateFromBookingCopiesVendor(t *testing.T) {
	owner := primitive.NewObjectID()
	bookingRepo := &stubBookingRepo{stored: &models.Booking{
		ID:         primitive.NewObjectID(),
		VendorID:   &owner,
		CustomerID: primitive.NewObjectID(),
		CreatedBy:  models.RoleVendor,
		Status:     models.BookingStatusCompleted,
	}}
	repo := &stubInvoiceRepo{}
	svc := newInvoiceFixture(t, repo, bookingRepo)

	invoice, err := svc.CreateFromBooking(context.Background(), bookingRepo.stored.ID, &owner)
	require.NoError(t, err)
	require.NotNil(t, invoice.VendorID)
	assert.Equal(t, owner, *invoice.VendorID)
}

func TestCreateFromBookingHidesOtherVendorsBooking(t *testing.T) {
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	bookingRepo := &stubBookingRepo{stored: &models.Booking{
		ID:       primitive.NewObjectID(),
		VendorID: &owner,
		Status:   models.BookingStatusCompleted,
	}}
	repo := &stubInvoiceRepo{}
	svc := newInvoiceFixture(t, repo, bookingRepo)

	_, err := svc.CreateFromBooking(context.Background(), bookingRepo.stored.ID, &intruder)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	assert.Nil(t, repo.created)
}

func TestInvoiceGetHidesOtherVendorsInvoice(t *testing.T) {
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	repo := &stubInvoiceRepo{stored: &models.Invoice{
		ID:       primitive.NewObjectID(),
		VendorID: &owner,
		Status:   models.InvoiceStatusIssued,
	}}
	svc := newInvoiceFixture(t, repo, &stubBookingRepo{})

	_, err := svc.Get(context.Background(), repo.stored.ID, &intruder)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	invoice, err := svc.Get(context.Background(), repo.stored.ID, &owner)
	require.NoError(t, err)
	assert.Equal(t, repo.stored.ID, invoice.ID)

	// Admin logins carry no scope and see everything.
	_, err = svc.Get(context.Background(), repo.stored.ID, nil)
	assert.NoError(t, err)
}

func TestVoidRespectsVendorScope(t *testing.T) {
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	repo := &stubInvoiceRepo{stored: &models.Invoice{
		ID:       primitive.NewObjectID(),
		VendorID: &owner,
		Status:   models.InvoiceStatusIssued,
	}}
	svc := newInvoiceFixture(t, repo, &stubBookingRepo{})

	err := svc.Void(context.Background(), repo.stored.ID, &intruder)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
	assert.Nil(t, repo.updates)

	require.NoError(t, svc.Void(context.Background(), repo.stored.ID, &owner))
	assert.Equal(t, models.InvoiceStatusVoid, repo.updates["status"])
}
