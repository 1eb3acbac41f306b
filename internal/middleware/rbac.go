package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/models"
	appErrors "github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/errors"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/response"
)

// RequireRoles allows only the listed roles through.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.JWTClaims)

		if _, ok := allowed[claims.Role]; ok {
			c.Next()
			return
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}
