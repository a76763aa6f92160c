package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
	"taxidesk/pkg/logger"
	"taxidesk/pkg/push"
	"taxidesk/pkg/sms"
	"taxidesk/pkg/websocket"
)

// NotificationService fans booking lifecycle events out to the customer (SMS),
// the assigned driver (push) and every open dashboard session (websocket).
// Each attempt is persisted so the activity log can show delivery failures.
type NotificationService struct {
	repo         interfaces.NotificationRepository
	customerRepo interfaces.CustomerRepository
	driverRepo   interfaces.DriverRepository
	smsProvider  sms.SMSProvider
	pushProvider push.PushProvider
	hub          *websocket.Hub
	logger       *logger.Logger
}

func NewNotificationService(
	repo interfaces.NotificationRepository,
	customerRepo interfaces.CustomerRepository,
	driverRepo interfaces.DriverRepository,
	smsProvider sms.SMSProvider,
	pushProvider push.PushProvider,
	hub *websocket.Hub,
	log *logger.Logger,
) *NotificationService {
	return &NotificationService{
		repo:         repo,
		customerRepo: customerRepo,
		driverRepo:   driverRepo,
		smsProvider:  smsProvider,
		pushProvider: pushProvider,
		hub:          hub,
		logger:       log.WithField("service", "notification"),
	}
}

// NotifyBookingEvent handles one lifecycle transition. Delivery failures are
// logged and recorded, never propagated; a dead SMS gateway must not fail a
// booking write.
func (s *NotificationService) NotifyBookingEvent(ctx context.Context, event string, booking *models.Booking) {
	if s.hub != nil {
		s.hub.Broadcast(event, booking)
	}

	title, body := bookingEventText(event, booking)

	if s.smsProvider != nil {
		s.notifyCustomerSMS(ctx, booking, body)
	}
	if s.pushProvider != nil && booking.DriverID != nil {
		s.notifyDriverPush(ctx, booking, title, body)
	}
}

func (s *NotificationService) notifyCustomerSMS(ctx context.Context, booking *models.Booking, body string) {
	customer, err := s.customerRepo.GetByID(ctx, booking.CustomerID)
	if err != nil || customer.Phone == "" {
		return
	}

	record := &models.Notification{
		Title:       "Booking " + booking.BookingNumber,
		Body:        body,
		Channel:     models.NotificationChannelSMS,
		RecipientID: &booking.CustomerID,
		BookingID:   &booking.ID,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.WithError(err).Warn("failed to persist sms notification")
		return
	}

	resp, err := s.smsProvider.SendSMS(ctx, &sms.SMSRequest{
		To:      customer.Phone,
		Message: body,
		Type:    "transactional",
	})
	deliveryErr := ""
	if err != nil {
		deliveryErr = err.Error()
	} else if resp.Error != "" {
		deliveryErr = resp.Error
	}
	if deliveryErr != "" {
		s.logger.WithField("booking", booking.BookingNumber).Warnf("sms delivery failed: %s", deliveryErr)
	}
	s.repo.MarkDelivered(ctx, record.ID, deliveryErr)
}

func (s *NotificationService) notifyDriverPush(ctx context.Context, booking *models.Booking, title, body string) {
	driver, err := s.driverRepo.GetByID(ctx, *booking.DriverID)
	if err != nil || driver.DeviceToken == "" {
		return
	}

	record := &models.Notification{
		Title:       title,
		Body:        body,
		Channel:     models.NotificationChannelPush,
		RecipientID: booking.DriverID,
		BookingID:   &booking.ID,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.WithError(err).Warn("failed to persist push notification")
		return
	}

	resp, err := s.pushProvider.SendNotification(ctx, &push.NotificationRequest{
		Token:    driver.DeviceToken,
		Title:    title,
		Body:     body,
		Priority: "high",
		Data: map[string]string{
			"booking_id":     booking.ID.Hex(),
			"booking_number": booking.BookingNumber,
			"event":          title,
		},
	})
	deliveryErr := ""
	if err != nil {
		deliveryErr = err.Error()
	} else if resp.Error != "" {
		deliveryErr = resp.Error
	}
	if deliveryErr != "" {
		s.logger.WithField("booking", booking.BookingNumber).Warnf("push delivery failed: %s", deliveryErr)
	}
	s.repo.MarkDelivered(ctx, record.ID, deliveryErr)
}

func (s *NotificationService) ListForRecipient(ctx context.Context, recipientID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Notification, int64, error) {
	return s.repo.ListByRecipient(ctx, recipientID, params)
}

func (s *NotificationService) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *NotificationService) CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

func bookingEventText(event string, booking *models.Booking) (title, body string) {
	switch event {
	case utils.EventBookingCreated:
		return "New booking", fmt.Sprintf("Booking %s confirmed for %s. Pickup: %s",
			booking.BookingNumber, booking.PickupDateTime.Format("02 Jan 03:04 PM"), booking.PickupAddress)
	case utils.EventBookingStarted:
		return "Trip started", fmt.Sprintf("Your trip %s has started.", booking.BookingNumber)
	case utils.EventBookingCompleted:
		return "Trip completed", fmt.Sprintf("Trip %s completed. Amount payable: %s",
			booking.BookingNumber, utils.FormatINR(booking.TripCompleted.FinalAmount))
	case utils.EventBookingCancelled:
		return "Booking cancelled", fmt.Sprintf("Booking %s has been cancelled.", booking.BookingNumber)
	default:
		return "Booking update", fmt.Sprintf("Booking %s was updated.", booking.BookingNumber)
	}
}
