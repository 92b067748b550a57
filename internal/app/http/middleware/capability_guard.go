package middleware

import (
	"github.com/gin-gonic/gin"

	"pridenomad-hub/internal/api/respond"
	"pridenomad-hub/internal/domain/access"
	apperr "pridenomad-hub/internal/pkg/errors"
)

// RequireCapability blocks callers whose tier does not grant want.
func RequireCapability(want access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			respond.Error(c, apperr.Unauthorized("authentication required"))
			return
		}
		if !access.ComputePolicy(*u, IsAdmin(c)).Can(want) {
			respond.Error(c, apperr.Forbidden("your plan does not include this feature").
				WithDetails(map[string]string{"capability": string(want)}))
			return
		}
		c.Next()
	}
}
