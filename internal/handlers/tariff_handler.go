package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/middleware"
	"taxidesk/internal/models"
	"taxidesk/internal/services"
	"taxidesk/internal/utils"
	"taxidesk/internal/validators"
	"taxidesk/pkg/logger"
)

type TariffHandler struct {
	tariffs *services.TariffService
	logger  *logger.Logger
}

func NewTariffHandler(tariffs *services.TariffService, log *logger.Logger) *TariffHandler {
	return &TariffHandler{
		tariffs: tariffs,
		logger:  log.WithField("handler", "tariff"),
	}
}

// Resolve answers the booking form's "what does this combination cost" lookup,
// applying the vendor-to-admin fallback for vendor logins.
func (h *TariffHandler) Resolve(c *gin.Context) {
	serviceID, err := primitive.ObjectIDFromHex(c.Query("service_id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid service_id")
		return
	}
	vehicleID, err := primitive.ObjectIDFromHex(c.Query("vehicle_id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid vehicle_id")
		return
	}

	resolved, err := h.tariffs.Resolve(c.Request.Context(), serviceID, vehicleID, middleware.GetUserRole(c))
	if err != nil {
		h.logger.WithError(err).Error("tariff resolve failed")
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, "", resolved)
}

func (h *TariffHandler) Save(c *gin.Context) {
	var req services.SaveTariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if fieldErrors := validators.ValidateSaveTariff(&req); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	tariff, err := h.tariffs.Save(c.Request.Context(), &req, middleware.GetUserRole(c))
	if err != nil {
		respondRepoError(c, err, "tariff")
		return
	}
	utils.SuccessResponse(c, "Tariff saved successfully", tariff)
}

type updateTariffRequest struct {
	Version    int64   `json:"version"`
	Price      float64 `json:"price"`
	ExtraPrice float64 `json:"extra_price"`
	Status     bool    `json:"status"`
}

func (h *TariffHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateTariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if req.Price < 0 || req.ExtraPrice < 0 {
		utils.ValidationErrorResponse(c, map[string]string{"price": "price cannot be negative"})
		return
	}

	if err := h.tariffs.Update(c.Request.Context(), id, req.Version, req.Price, req.ExtraPrice, req.Status); err != nil {
		respondRepoError(c, err, "tariff")
		return
	}
	utils.SuccessResponse(c, "Tariff updated successfully", nil)
}

func (h *TariffHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tariff, err := h.tariffs.Get(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "tariff")
		return
	}
	utils.SuccessResponse(c, "", tariff)
}

func (h *TariffHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var createdBy *models.CreatorRole
	if middleware.GetUserRole(c) == models.RoleVendor {
		role := models.RoleVendor
		createdBy = &role
	} else if raw := c.Query("created_by"); raw != "" {
		role := models.CreatorRole(raw)
		if role.Valid() {
			createdBy = &role
		}
	}

	tariffs, total, err := h.tariffs.List(c.Request.Context(), params, createdBy)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponseWithMeta(c, "", tariffs, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *TariffHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.tariffs.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err, "tariff")
		return
	}
	utils.SuccessResponse(c, "Tariff deleted successfully", nil)
}

func (h *TariffHandler) BulkDelete(c *gin.Context) {
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

	deleted, err := h.tariffs.BulkDelete(c.Request.Context(), ids)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponseWithMeta(c, "Tariffs deleted successfully", nil, &utils.Meta{Total: deleted})
}

// SavePackages replaces the day/hourly ladder for a combination.
func (h *TariffHandler) SavePackages(c *gin.Context) {
	var req services.SavePackageLadderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if fieldErrors := validators.ValidateSavePackageLadder(&req); fieldErrors != nil {
		utils.ValidationErrorResponse(c, fieldErrors)
		return
	}

	rungs, err := h.tariffs.SavePackageLadder(c.Request.Context(), &req, middleware.GetUserRole(c))
	if err != nil {
		if errors.Is(err, services.ErrPackageLadderMismatch) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		respondRepoError(c, err, "package tariff")
		return
	}
	utils.SuccessResponse(c, "Package tariffs saved successfully", rungs)
}

func (h *TariffHandler) ListPackages(c *gin.Context) {
	serviceID, err := primitive.ObjectIDFromHex(c.Query("service_id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid service_id")
		return
	}
	vehicleID, err := primitive.ObjectIDFromHex(c.Query("vehicle_id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid vehicle_id")
		return
	}

	rungs, err := h.tariffs.ListPackages(c.Request.Context(), serviceID, vehicleID, middleware.GetUserRole(c))
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, "", rungs)
}
