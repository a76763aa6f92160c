package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"taxidesk/internal/middleware"
	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
	"taxidesk/pkg/logger"
)

type VehicleHandler struct {
	repo   interfaces.VehicleRepository
	logger *logger.Logger
}

func NewVehicleHandler(repo interfaces.VehicleRepository, log *logger.Logger) *VehicleHandler {
	return &VehicleHandler{
		repo:   repo,
		logger: log.WithField("handler", "vehicle"),
	}
}

type vehicleRequest struct {
	Name               string    `json:"name" binding:"required"`
	Model              string    `json:"model"`
	RegistrationNumber string    `json:"registration_number"`
	Capacity           int       `json:"capacity"`
	InsuranceExpiry    time.Time `json:"insurance_expiry"`
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	vehicle := &models.Vehicle{
		Name:               req.Name,
		Model:              req.Model,
		RegistrationNumber: req.RegistrationNumber,
		Capacity:           req.Capacity,
		InsuranceExpiry:    req.InsuranceExpiry,
		VendorID:           middleware.GetVendorScope(c),
		CreatedBy:          middleware.GetUserRole(c),
	}
	if err := h.repo.Create(c.Request.Context(), vehicle); err != nil {
		h.logger.WithError(err).Error("vehicle create failed")
		respondRepoError(c, err, "vehicle")
		return
	}
	utils.CreatedResponse(c, "Vehicle created successfully", vehicle)
}

func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	vehicle, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "vehicle")
		return
	}
	utils.SuccessResponse(c, "", vehicle)
}

func (h *VehicleHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	vehicles, total, err := h.repo.List(c.Request.Context(), params, middleware.GetVendorScope(c))
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponseWithMeta(c, "", vehicles, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	err := h.repo.Update(c.Request.Context(), id, map[string]interface{}{
		"name":                req.Name,
		"model":               req.Model,
		"registration_number": req.RegistrationNumber,
		"capacity":            req.Capacity,
		"insurance_expiry":    req.InsuranceExpiry,
	})
	if err != nil {
		respondRepoError(c, err, "vehicle")
		return
	}
	utils.SuccessResponse(c, "Vehicle updated successfully", nil)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err, "vehicle")
		return
	}
	utils.SuccessResponse(c, "Vehicle deleted successfully", nil)
}

func (h *VehicleHandler) BulkDelete(c *gin.Context) {
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
	utils.SuccessResponseWithMeta(c, "Vehicles deleted successfully", nil, &utils.Meta{Total: deleted})
}
