package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
	"taxidesk/pkg/logger"
	"taxidesk/pkg/payment"
	"taxidesk/pkg/pdf"
)

var (
	ErrBookingNotCompleted = errors.New("invoice requires a completed booking")
	ErrInvoiceAlreadyPaid  = errors.New("invoice is already paid")
)

// CompanyProfile is the letterhead printed on every invoice.
type CompanyProfile struct {
	Name  string
	Lines []string
}

type InvoiceService struct {
	repo            interfaces.InvoiceRepository
	bookingRepo     interfaces.BookingRepository
	customerRepo    interfaces.CustomerRepository
	paymentProvider payment.PaymentProvider
	company         CompanyProfile
	callbackURL     string
	logger          *logger.Logger
}

func NewInvoiceService(
	repo interfaces.InvoiceRepository,
	bookingRepo interfaces.BookingRepository,
	customerRepo interfaces.CustomerRepository,
	paymentProvider payment.PaymentProvider,
	company CompanyProfile,
	callbackURL string,
	log *logger.Logger,
) *InvoiceService {
	return &InvoiceService{
		repo:            repo,
		bookingRepo:     bookingRepo,
		customerRepo:    customerRepo,
		paymentProvider: paymentProvider,
		company:         company,
		callbackURL:     callbackURL,
		logger:          log.WithField("service", "invoice"),
	}
}

// CreateFromBooking issues the invoice for a completed trip. Amounts come from
// the trip-completed figures; a booking can have at most one invoice, so a
// second call returns the existing one. A vendor scope limits the call to that
// vendor's own bookings.
func (s *InvoiceService) CreateFromBooking(ctx context.Context, bookingID primitive.ObjectID, scope *primitive.ObjectID) (*models.Invoice, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !vendorInScope(booking.VendorID, scope) {
		return nil, interfaces.ErrNotFound
	}

	if existing, err := s.repo.GetByBookingID(ctx, bookingID); err == nil {
		return existing, nil
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, err
	}

	if booking.Status != models.BookingStatusCompleted {
		return nil, ErrBookingNotCompleted
	}

	final := booking.TripCompleted.FinalAmount
	invoice := &models.Invoice{
		InvoiceNumber:   utils.GenerateReference(utils.InvoiceNumberPrefix),
		BookingID:       booking.ID,
		CustomerID:      booking.CustomerID,
		CreatedBy:       booking.CreatedBy,
		VendorID:        booking.VendorID,
		Status:          models.InvoiceStatusIssued,
		EstimatedAmount: booking.TripCompleted.EstimatedAmount,
		TaxAmount:       booking.TripCompleted.TaxAmount,
		DiscountAmount:  booking.DiscountAmount,
		AdvanceAmount:   booking.AdvanceAmount,
		FinalAmount:     final,
		RemainingAmount: final - booking.AdvanceAmount,
	}
	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"invoice": invoice.InvoiceNumber,
		"booking": booking.BookingNumber,
	}).Info("invoice issued")
	return invoice, nil
}

func (s *InvoiceService) Get(ctx context.Context, id primitive.ObjectID, scope *primitive.ObjectID) (*models.Invoice, error) {
	return s.getScoped(ctx, id, scope)
}

func (s *InvoiceService) List(ctx context.Context, params *utils.PaginationParams, status models.InvoiceStatus, scope *primitive.ObjectID) ([]*models.Invoice, int64, error) {
	return s.repo.List(ctx, params, status, scope)
}

// RenderPDF streams the printable invoice.
func (s *InvoiceService) RenderPDF(ctx context.Context, id primitive.ObjectID, scope *primitive.ObjectID, w io.Writer) error {
	invoice, err := s.getScoped(ctx, id, scope)
	if err != nil {
		return err
	}
	booking, err := s.bookingRepo.GetByID(ctx, invoice.BookingID)
	if err != nil {
		return err
	}
	customer, err := s.customerRepo.GetByID(ctx, invoice.CustomerID)
	if err != nil {
		return err
	}

	lines := []pdf.InvoiceLine{
		{Label: fmt.Sprintf("Trip fare (%.1f km)", booking.TripCompleted.Distance), Amount: utils.FormatINR(invoice.EstimatedAmount)},
		{Label: "Driver beta", Amount: utils.FormatINR(booking.DriverBeta)},
		{Label: fmt.Sprintf("Tax (%.1f%%)", booking.TaxPercentage), Amount: utils.FormatINR(invoice.TaxAmount)},
	}
	for name, value := range booking.DriverCharges {
		lines = append(lines, pdf.InvoiceLine{Label: "Driver charge: " + name, Amount: value})
	}
	for name, value := range booking.ExtraCharges {
		lines = append(lines, pdf.InvoiceLine{Label: "Extra charge: " + name, Amount: value})
	}
	if surcharge := booking.FareBreakdown.ModifiedFare.Sum(); surcharge > 0 {
		lines = append(lines, pdf.InvoiceLine{Label: "Permit / toll / hill charges", Amount: utils.FormatINR(surcharge)})
	}
	if invoice.DiscountAmount > 0 {
		lines = append(lines, pdf.InvoiceLine{Label: "Discount", Amount: "-" + utils.FormatINR(invoice.DiscountAmount)})
	}
	if invoice.AdvanceAmount > 0 {
		lines = append(lines, pdf.InvoiceLine{Label: "Advance paid", Amount: "-" + utils.FormatINR(invoice.AdvanceAmount)})
	}

	notes := ""
	if invoice.RemainingAmount < 0 {
		notes = fmt.Sprintf("Refund due to customer: %s", utils.FormatINR(-invoice.RemainingAmount))
	}

	return pdf.Render(w, &pdf.InvoiceData{
		InvoiceNumber: invoice.InvoiceNumber,
		IssuedOn:      invoice.CreatedAt,
		CompanyName:   s.company.Name,
		CompanyLines:  s.company.Lines,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		BookingNumber: booking.BookingNumber,
		PickupAddress: booking.PickupAddress,
		DropAddress:   booking.DropAddress,
		Lines:         lines,
		TotalLabel:    "Amount payable",
		TotalAmount:   utils.FormatINR(invoice.RemainingAmount),
		Notes:         notes,
	})
}

// CreatePaymentLink asks the gateway for a hosted link covering the remaining
// amount and stores it on the invoice for the share button.
func (s *InvoiceService) CreatePaymentLink(ctx context.Context, id primitive.ObjectID, scope *primitive.ObjectID) (*models.Invoice, error) {
	invoice, err := s.getScoped(ctx, id, scope)
	if err != nil {
		return nil, err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return nil, ErrInvoiceAlreadyPaid
	}
	if invoice.PaymentLinkURL != "" {
		return invoice, nil
	}

	customer, err := s.customerRepo.GetByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, err
	}

	link, err := s.paymentProvider.CreatePaymentLink(ctx, &payment.PaymentLinkRequest{
		Amount:        invoice.RemainingAmount,
		Currency:      invoice.Currency,
		Description:   "Taxi booking " + invoice.InvoiceNumber,
		Reference:     invoice.InvoiceNumber,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		CustomerEmail: customer.Email,
		CallbackURL:   s.callbackURL,
		Notes:         map[string]string{"invoice_id": invoice.ID.Hex()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}

	err = s.repo.Update(ctx, invoice.ID, map[string]interface{}{
		"payment_link_id":  link.LinkID,
		"payment_link_url": link.URL,
	})
	if err != nil {
		return nil, err
	}
	invoice.PaymentLinkID = link.LinkID
	invoice.PaymentLinkURL = link.URL
	return invoice, nil
}

// HandleWebhook processes a gateway callback. Only payment-completed events
// change state; everything else is acknowledged and dropped.
func (s *InvoiceService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.paymentProvider.ValidateWebhook(ctx, payload, signature)
	if err != nil {
		return err
	}

	switch event.EventType {
	case "payment_link.paid", "checkout.session.completed":
	default:
		return nil
	}

	invoice, err := s.repo.GetByNumber(ctx, event.Reference)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			s.logger.WithField("reference", event.Reference).Warn("webhook for unknown invoice")
			return nil
		}
		return err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return nil
	}

	if err := s.repo.MarkPaid(ctx, invoice.ID); err != nil {
		return err
	}
	s.logger.WithField("invoice", invoice.InvoiceNumber).Info("invoice paid via payment link")
	return nil
}

// Void cancels an unpaid invoice.
func (s *InvoiceService) Void(ctx context.Context, id primitive.ObjectID, scope *primitive.ObjectID) error {
	invoice, err := s.getScoped(ctx, id, scope)
	if err != nil {
		return err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return ErrInvoiceAlreadyPaid
	}
	return s.repo.Update(ctx, id, map[string]interface{}{"status": models.InvoiceStatusVoid})
}

// getScoped loads an invoice and treats another vendor's invoice as absent.
func (s *InvoiceService) getScoped(ctx context.Context, id primitive.ObjectID, scope *primitive.ObjectID) (*models.Invoice, error) {
	invoice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !vendorInScope(invoice.VendorID, scope) {
		return nil, interfaces.ErrNotFound
	}
	return invoice, nil
}

func vendorInScope(owner, scope *primitive.ObjectID) bool {
	if scope == nil {
		return true
	}
	return owner != nil && *owner == *scope
}
