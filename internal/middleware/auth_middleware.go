package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/models"
	"taxidesk/internal/utils"
)

const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
	ContextVendorID = "vendor_id"
)

// AuthRequired validates the bearer token and loads the session identity into
// the request context.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.ErrorResponse(c, 401, "UNAUTHORIZED", utils.ErrInvalidToken)
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, models.CreatorRole(claims.Role))
		if claims.VendorID != "" {
			if vendorID, err := primitive.ObjectIDFromHex(claims.VendorID); err == nil {
				c.Set(ContextVendorID, vendorID)
			}
		}
		c.Next()
	}
}

// AdminRequired restricts a route group to admin logins. Must run after
// AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRole(c) != models.RoleAdmin {
			utils.ForbiddenResponse(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) primitive.ObjectID {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(primitive.ObjectID); ok {
			return id
		}
	}
	return primitive.NilObjectID
}

func GetUserRole(c *gin.Context) models.CreatorRole {
	if v, ok := c.Get(ContextUserRole); ok {
		if role, ok := v.(models.CreatorRole); ok {
			return role
		}
	}
	return ""
}

// GetVendorScope returns the vendor id vendor logins are confined to, or nil
// for admins.
func GetVendorScope(c *gin.Context) *primitive.ObjectID {
	if v, ok := c.Get(ContextVendorID); ok {
		if id, ok := v.(primitive.ObjectID); ok {
			return &id
		}
	}
	return nil
}
