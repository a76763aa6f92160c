package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/middleware"
	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/services"
	"taxidesk/internal/utils"
	"taxidesk/internal/validators"
	"taxidesk/pkg/logger"
)

type BookingHandler struct {
	bookings *services.BookingService
	logger   *logger.Logger
}

func NewBookingHandler(bookings *services.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		logger:   log.WithField("handler", "booking"),
	}
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if fieldErrors := validators.ValidateCreateBooking(&req); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	role := middleware.GetUserRole(c)
	vendorID := middleware.GetVendorScope(c)

	booking, err := h.bookings.Create(c.Request.Context(), &req, role, vendorID)
	if err != nil {
		h.logger.WithError(err).Error("booking create failed")
		respondRepoError(c, err, "booking")
		return
	}
	utils.CreatedResponse(c, "Booking created successfully", booking)
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, ok := h.loadScoped(c, id)
	if !ok {
		return
	}
	utils.SuccessResponse(c, "", booking)
}

func (h *BookingHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := &interfaces.BookingListFilter{
		Status:   models.BookingStatus(c.Query("status")),
		VendorID: middleware.GetVendorScope(c),
	}
	if raw := c.Query("customer_id"); raw != "" {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			filter.CustomerID = &id
		}
	}
	if raw := c.Query("driver_id"); raw != "" {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			filter.DriverID = &id
		}
	}
	if raw := c.Query("from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.From = &t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.To = &t
		}
	}

	bookings, total, err := h.bookings.List(c.Request.Context(), params, filter)
	if err != nil {
		h.logger.WithError(err).Error("booking list failed")
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponseWithMeta(c, "", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if fieldErrors := validators.ValidateUpdateBooking(&req); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}
	if _, ok := h.loadScoped(c, id); !ok {
		return
	}

	booking, err := h.bookings.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondRepoError(c, err, "booking")
		return
	}
	utils.SuccessResponse(c, "Booking updated successfully", booking)
}

type tripTransitionRequest struct {
	Version  int64   `json:"version"`
	Odometer float64 `json:"odometer"`
}

func (h *BookingHandler) StartTrip(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req tripTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if _, ok := h.loadScoped(c, id); !ok {
		return
	}

	booking, err := h.bookings.StartTrip(c.Request.Context(), id, req.Version, req.Odometer)
	if err != nil {
		h.respondTransitionError(c, err)
		return
	}
	utils.SuccessResponse(c, "Trip started", booking)
}

func (h *BookingHandler) CompleteTrip(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req tripTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if _, ok := h.loadScoped(c, id); !ok {
		return
	}

	booking, err := h.bookings.CompleteTrip(c.Request.Context(), id, req.Version, req.Odometer)
	if err != nil {
		h.respondTransitionError(c, err)
		return
	}
	utils.SuccessResponse(c, "Trip completed", booking)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Version int64 `json:"version"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if _, ok := h.loadScoped(c, id); !ok {
		return
	}

	booking, err := h.bookings.Cancel(c.Request.Context(), id, req.Version)
	if err != nil {
		h.respondTransitionError(c, err)
		return
	}
	utils.SuccessResponse(c, "Booking cancelled", booking)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := h.loadScoped(c, id); !ok {
		return
	}
	if err := h.bookings.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err, "booking")
		return
	}
	utils.SuccessResponse(c, "Booking deleted successfully", nil)
}

func (h *BookingHandler) BulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	ids, err := req.objectIDs()
	if err != nil {
		utils.BadRequestResponse(c, "invalid id in selection")
		return
	}

	deleted, err := h.bookings.BulkDelete(c.Request.Context(), ids, middleware.GetVendorScope(c))
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponseWithMeta(c, "Bookings deleted successfully", nil, &utils.Meta{Total: deleted})
}

// Commission serves the payout tooltip on the booking detail screen.
func (h *BookingHandler) Commission(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, ok := h.loadScoped(c, id); !ok {
		return
	}

	report, err := h.bookings.Commission(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "booking")
		return
	}
	utils.SuccessResponse(c, "", report)
}

func (h *BookingHandler) respondTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTransition):
		utils.BadRequestResponse(c, "booking cannot change to that status")
	case errors.Is(err, services.ErrOdometerRequired):
		utils.BadRequestResponse(c, "valid end odometer reading is required")
	default:
		respondRepoError(c, err, "booking")
	}
}

// inScope hides other vendors' bookings from a vendor login.
func (h *BookingHandler) inScope(c *gin.Context, booking *models.Booking) bool {
	scope := middleware.GetVendorScope(c)
	if scope == nil {
		return true
	}
	return booking.VendorID != nil && *booking.VendorID == *scope
}

// loadScoped fetches the booking behind a per-id route and applies the vendor
// scope before any read or mutation goes through.
func (h *BookingHandler) loadScoped(c *gin.Context, id primitive.ObjectID) (*models.Booking, bool) {
	booking, err := h.bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "booking")
		return nil, false
	}
	if !h.inScope(c, booking) {
		utils.ForbiddenResponse(c)
		return nil, false
	}
	return booking, true
}
