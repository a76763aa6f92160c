package handlers

import (
	"github.com/gin-gonic/gin"

	"taxidesk/internal/middleware"
	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
	"taxidesk/internal/validators"
	"taxidesk/pkg/logger"
)

type CustomerHandler struct {
	repo   interfaces.CustomerRepository
	logger *logger.Logger
}

func NewCustomerHandler(repo interfaces.CustomerRepository, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		repo:   repo,
		logger: log.WithField("handler", "customer"),
	}
}

type customerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if fieldErrors := validators.ValidateContact(req.Name, req.Phone, req.Email); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	customer := &models.Customer{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		CreatedBy: middleware.GetUserRole(c),
	}
	if err := h.repo.Create(c.Request.Context(), customer); err != nil {
		h.logger.WithError(err).Error("customer create failed")
		respondRepoError(c, err, "customer")
		return
	}
	utils.CreatedResponse(c, "Customer created successfully", customer)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	customer, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "customer")
		return
	}
	utils.SuccessResponse(c, "", customer)
}

func (h *CustomerHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	customers, total, err := h.repo.List(c.Request.Context(), params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponseWithMeta(c, "", customers, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if fieldErrors := validators.ValidateContact(req.Name, req.Phone, req.Email); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	err := h.repo.Update(c.Request.Context(), id, map[string]interface{}{
		"name":    req.Name,
		"phone":   req.Phone,
		"email":   req.Email,
		"address": req.Address,
	})
	if err != nil {
		respondRepoError(c, err, "customer")
		return
	}
	utils.SuccessResponse(c, "Customer updated successfully", nil)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err, "customer")
		return
	}
	utils.SuccessResponse(c, "Customer deleted successfully", nil)
}

func (h *CustomerHandler) BulkDelete(c *gin.Context) {
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
	utils.SuccessResponseWithMeta(c, "Customers deleted successfully", nil, &utils.Meta{Total: deleted})
}
