package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"taxidesk/internal/middleware"
	"taxidesk/internal/models"
	"taxidesk/internal/services"
	"taxidesk/internal/utils"
	"taxidesk/pkg/logger"
)

type InvoiceHandler struct {
	invoices *services.InvoiceService
	logger   *logger.Logger
}

func NewInvoiceHandler(invoices *services.InvoiceService, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoices: invoices,
		logger:   log.WithField("handler", "invoice"),
	}
}

// CreateFromBooking issues (or returns) the invoice for a completed booking.
func (h *InvoiceHandler) CreateFromBooking(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "bookingId")
	if !ok {
		return
	}

	invoice, err := h.invoices.CreateFromBooking(c.Request.Context(), bookingID, middleware.GetVendorScope(c))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotCompleted) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		respondRepoError(c, err, "booking")
		return
	}
	utils.CreatedResponse(c, "Invoice issued successfully", invoice)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	invoice, err := h.invoices.Get(c.Request.Context(), id, middleware.GetVendorScope(c))
	if err != nil {
		respondRepoError(c, err, "invoice")
		return
	}
	utils.SuccessResponse(c, "", invoice)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := models.InvoiceStatus(c.Query("status"))

	invoices, total, err := h.invoices.List(c.Request.Context(), params, status, middleware.GetVendorScope(c))
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponseWithMeta(c, "", invoices, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// DownloadPDF streams the printable invoice.
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	scope := middleware.GetVendorScope(c)
	invoice, err := h.invoices.Get(c.Request.Context(), id, scope)
	if err != nil {
		respondRepoError(c, err, "invoice")
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, invoice.InvoiceNumber))
	if err := h.invoices.RenderPDF(c.Request.Context(), id, scope, c.Writer); err != nil {
		h.logger.WithError(err).Error("invoice pdf render failed")
	}
}

// CreatePaymentLink returns a hosted link for the remaining amount.
func (h *InvoiceHandler) CreatePaymentLink(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoices.CreatePaymentLink(c.Request.Context(), id, middleware.GetVendorScope(c))
	if err != nil {
		if errors.Is(err, services.ErrInvoiceAlreadyPaid) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		h.logger.WithError(err).Error("payment link create failed")
		respondRepoError(c, err, "invoice")
		return
	}
	utils.SuccessResponse(c, "Payment link ready", invoice)
}

func (h *InvoiceHandler) Void(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.invoices.Void(c.Request.Context(), id, middleware.GetVendorScope(c)); err != nil {
		if errors.Is(err, services.ErrInvoiceAlreadyPaid) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		respondRepoError(c, err, "invoice")
		return
	}
	utils.SuccessResponse(c, "Invoice voided", nil)
}

// PaymentWebhook is the unauthenticated gateway callback.
func (h *InvoiceHandler) PaymentWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		utils.BadRequestResponse(c, "unreadable payload")
		return
	}
	signature := c.GetHeader("X-Razorpay-Signature")
	if signature == "" {
		signature = c.GetHeader("Stripe-Signature")
	}

	if err := h.invoices.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		h.logger.WithError(err).Warn("payment webhook rejected")
		utils.BadRequestResponse(c, "webhook rejected")
		return
	}
	utils.SuccessResponse(c, "", nil)
}
