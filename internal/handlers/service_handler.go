package handlers

import (
	"github.com/gin-gonic/gin"

	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
	"taxidesk/pkg/logger"
)

type ServiceHandler struct {
	repo   interfaces.ServiceRepository
	logger *logger.Logger
}

func NewServiceHandler(repo interfaces.ServiceRepository, log *logger.Logger) *ServiceHandler {
	return &ServiceHandler{
		repo:   repo,
		logger: log.WithField("handler", "service"),
	}
}

type serviceRequest struct {
	Name             string            `json:"name" binding:"required"`
	Tax              models.ServiceTax `json:"tax"`
	MinKM            float64           `json:"min_km"`
	DriverCommission float64           `json:"driver_commission"`
	VendorCommission float64           `json:"vendor_commission"`
	Include          []string          `json:"include"`
	Exclude          []string          `json:"exclude"`
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if req.Tax.GST < 0 || req.Tax.VendorGST < 0 {
		utils.ValidationErrorResponse(c, map[string]string{"tax": "tax percentages cannot be negative"})
		return
	}

	service := &models.Service{
		Name:             req.Name,
		Tax:              req.Tax,
		MinKM:            req.MinKM,
		DriverCommission: req.DriverCommission,
		VendorCommission: req.VendorCommission,
		Include:          req.Include,
		Exclude:          req.Exclude,
	}
	if err := h.repo.Create(c.Request.Context(), service); err != nil {
		h.logger.WithError(err).Error("service create failed")
		respondRepoError(c, err, "service")
		return
	}
	utils.CreatedResponse(c, "Service created successfully", service)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	service, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "service")
		return
	}
	utils.SuccessResponse(c, "", service)
}

func (h *ServiceHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	services, total, err := h.repo.List(c.Request.Context(), params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponseWithMeta(c, "", services, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// ListActive feeds the service dropdown on the booking form.
func (h *ServiceHandler) ListActive(c *gin.Context) {
	services, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, "", services)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	err := h.repo.Update(c.Request.Context(), id, map[string]interface{}{
		"name":              req.Name,
		"tax":               req.Tax,
		"min_km":            req.MinKM,
		"driver_commission": req.DriverCommission,
		"vendor_commission": req.VendorCommission,
		"include":           req.Include,
		"exclude":           req.Exclude,
	})
	if err != nil {
		respondRepoError(c, err, "service")
		return
	}
	utils.SuccessResponse(c, "Service updated successfully", nil)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err, "service")
		return
	}
	utils.SuccessResponse(c, "Service deleted successfully", nil)
}
