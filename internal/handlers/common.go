package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
)

// parseIDParam reads an object id from the URL, replying 400 on garbage.
func parseIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}

// bulkDeleteRequest is the shared body of every "delete selected" button.
type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

func (r *bulkDeleteRequest) objectIDs() ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(r.IDs))
	for _, raw := range r.IDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// respondRepoError maps the repository sentinels onto the envelope statuses
// the dashboard understands: 404 for gone, 409 for a lost edit race.
func respondRepoError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, interfaces.ErrVersionConflict):
		utils.ConflictResponse(c, utils.ErrVersionConflict)
	case errors.Is(err, interfaces.ErrDuplicate):
		utils.BadRequestResponse(c, resource+" already exists")
	default:
		utils.InternalServerErrorResponse(c)
	}
}
