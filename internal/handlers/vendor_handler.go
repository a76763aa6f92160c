package handlers

import (
	"github.com/gin-gonic/gin"

	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
	"taxidesk/internal/validators"
	"taxidesk/pkg/logger"
)

type VendorHandler struct {
	repo   interfaces.VendorRepository
	logger *logger.Logger
}

func NewVendorHandler(repo interfaces.VendorRepository, log *logger.Logger) *VendorHandler {
	return &VendorHandler{
		repo:   repo,
		logger: log.WithField("handler", "vendor"),
	}
}

type vendorRequest struct {
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	GSTNumber     string `json:"gst_number"`
}

func (h *VendorHandler) Create(c *gin.Context) {
	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if fieldErrors := validators.ValidateContact(req.CompanyName, req.Phone, req.Email); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	vendor := &models.Vendor{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		GSTNumber:     req.GSTNumber,
	}
	if err := h.repo.Create(c.Request.Context(), vendor); err != nil {
		h.logger.WithError(err).Error("vendor create failed")
		respondRepoError(c, err, "vendor")
		return
	}
	utils.CreatedResponse(c, "Vendor created successfully", vendor)
}

func (h *VendorHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	vendor, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "vendor")
		return
	}
	utils.SuccessResponse(c, "", vendor)
}

func (h *VendorHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	vendors, total, err := h.repo.List(c.Request.Context(), params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponseWithMeta(c, "", vendors, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *VendorHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	err := h.repo.Update(c.Request.Context(), id, map[string]interface{}{
		"company_name":   req.CompanyName,
		"contact_person": req.ContactPerson,
		"phone":          req.Phone,
		"email":          req.Email,
		"address":        req.Address,
		"gst_number":     req.GSTNumber,
	})
	if err != nil {
		respondRepoError(c, err, "vendor")
		return
	}
	utils.SuccessResponse(c, "Vendor updated successfully", nil)
}

type vendorStatusRequest struct {
	Status models.VendorStatus `json:"status" binding:"required,oneof=active inactive blocked"`
	Reason string              `json:"reason"`
}

// UpdateStatus blocks or reinstates a vendor; the reason shows on their login
// screen.
func (h *VendorHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req vendorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.repo.UpdateStatus(c.Request.Context(), id, req.Status, req.Reason); err != nil {
		respondRepoError(c, err, "vendor")
		return
	}
	utils.SuccessResponse(c, "Vendor status updated", nil)
}

func (h *VendorHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err, "vendor")
		return
	}
	utils.SuccessResponse(c, "Vendor deleted successfully", nil)
}

func (h *VendorHandler) BulkDelete(c *gin.Context) {
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
	utils.SuccessResponseWithMeta(c, "Vendors deleted successfully", nil, &utils.Meta{Total: deleted})
}
