package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"taxidesk/internal/middleware"
	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
	"taxidesk/internal/validators"
	"taxidesk/pkg/logger"
)

type DriverHandler struct {
	repo   interfaces.DriverRepository
	logger *logger.Logger
}

func NewDriverHandler(repo interfaces.DriverRepository, log *logger.Logger) *DriverHandler {
	return &DriverHandler{
		repo:   repo,
		logger: log.WithField("handler", "driver"),
	}
}

type driverRequest struct {
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	LicenseNumber string    `json:"license_number"`
	LicenseExpiry time.Time `json:"license_expiry"`
}

func (h *DriverHandler) Create(c *gin.Context) {
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if fieldErrors := validators.ValidateContact(req.Name, req.Phone, req.Email); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	driver := &models.Driver{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
		LicenseExpiry: req.LicenseExpiry,
		VendorID:      middleware.GetVendorScope(c),
		CreatedBy:     middleware.GetUserRole(c),
	}
	if err := h.repo.Create(c.Request.Context(), driver); err != nil {
		h.logger.WithError(err).Error("driver create failed")
		respondRepoError(c, err, "driver")
		return
	}
	utils.CreatedResponse(c, "Driver created successfully", driver)
}

func (h *DriverHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	driver, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "driver")
		return
	}
	utils.SuccessResponse(c, "", driver)
}

func (h *DriverHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	drivers, total, err := h.repo.List(c.Request.Context(), params, middleware.GetVendorScope(c))
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponseWithMeta(c, "", drivers, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *DriverHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if fieldErrors := validators.ValidateContact(req.Name, req.Phone, req.Email); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	err := h.repo.Update(c.Request.Context(), id, map[string]interface{}{
		"name":           req.Name,
		"phone":          req.Phone,
		"email":          req.Email,
		"license_number": req.LicenseNumber,
		"license_expiry": req.LicenseExpiry,
	})
	if err != nil {
		respondRepoError(c, err, "driver")
		return
	}
	utils.SuccessResponse(c, "Driver updated successfully", nil)
}

type deviceTokenRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform" binding:"required,oneof=android ios"`
}

// UpdateDeviceToken registers the driver app's push token.
func (h *DriverHandler) UpdateDeviceToken(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req deviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.repo.UpdateDeviceToken(c.Request.Context(), id, req.Token, req.Platform); err != nil {
		respondRepoError(c, err, "driver")
		return
	}
	utils.SuccessResponse(c, "Device registered", nil)
}

func (h *DriverHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err, "driver")
		return
	}
	utils.SuccessResponse(c, "Driver deleted successfully", nil)
}

func (h *DriverHandler) BulkDelete(c *gin.Context) {
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

	deleted, err := h.repo.BulkDelete(c.Request.Context(), ids)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponseWithMeta(c, "Drivers deleted successfully", nil, &utils.Meta{Total: deleted})
}
