package handlers

import (
	"github.com/gin-gonic/gin"

	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
	"taxidesk/internal/validators"
	"taxidesk/pkg/logger"
)

type EnquiryHandler struct {
	repo   interfaces.EnquiryRepository
	logger *logger.Logger
}

func NewEnquiryHandler(repo interfaces.EnquiryRepository, log *logger.Logger) *EnquiryHandler {
	return &EnquiryHandler{
		repo:   repo,
		logger: log.WithField("handler", "enquiry"),
	}
}

type enquiryRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

// Create accepts website enquiry submissions; it is the one unauthenticated
// write endpoint.
func (h *EnquiryHandler) Create(c *gin.Context) {
	var req enquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if fieldErrors := validators.ValidateContact(req.Name, req.Phone, req.Email); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	enquiry := &models.Enquiry{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Message: req.Message,
		Source:  req.Source,
	}
	if err := h.repo.Create(c.Request.Context(), enquiry); err != nil {
		h.logger.WithError(err).Error("enquiry create failed")
		respondRepoError(c, err, "enquiry")
		return
	}
	utils.CreatedResponse(c, "Enquiry received", enquiry)
}

func (h *EnquiryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	enquiry, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "enquiry")
		return
	}
	utils.SuccessResponse(c, "", enquiry)
}

func (h *EnquiryHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := models.EnquiryStatus(c.Query("status"))

	enquiries, total, err := h.repo.List(c.Request.Context(), params, status)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponseWithMeta(c, "", enquiries, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

type enquiryStatusRequest struct {
	Status models.EnquiryStatus `json:"status" binding:"required,oneof=open contacted converted closed"`
}

func (h *EnquiryHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req enquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.repo.Update(c.Request.Context(), id, map[string]interface{}{"status": req.Status}); err != nil {
		respondRepoError(c, err, "enquiry")
		return
	}
	utils.SuccessResponse(c, "Enquiry updated successfully", nil)
}

func (h *EnquiryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err, "enquiry")
		return
	}
	utils.SuccessResponse(c, "Enquiry deleted successfully", nil)
}

func (h *EnquiryHandler) BulkDelete(c *gin.Context) {
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
	utils.SuccessResponseWithMeta(c, "Enquiries deleted successfully", nil, &utils.Meta{Total: deleted})
}
