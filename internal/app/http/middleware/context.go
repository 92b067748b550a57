package middleware

import (
	"github.com/gin-gonic/gin"

	"pridenomad-hub/internal/domain/users"
	"pridenomad-hub/internal/services/directory"
)

const (
	ctxUser      = "user"
	ctxUserID    = "user_id"
	ctxEmail     = "email"
	ctxIsAdmin   = "is_admin"
	ctxRequestID = "request_id"
)

// CurrentUser returns the user resolved by Authenticate or OptionalAuth.
func CurrentUser(c *gin.Context) (*users.User, bool) {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*users.User)
	return u, ok && u != nil
}

func IsAdmin(c *gin.Context) bool {
	return c.GetBool(ctxIsAdmin)
}

func RequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}

// Actor describes the caller for listing operations. Anonymous callers get
// the zero Actor.
func Actor(c *gin.Context) directory.Actor {
	u, ok := CurrentUser(c)
	if !ok {
		return directory.Actor{}
	}
	return directory.Actor{
		UserID:  u.ID,
		Email:   u.Email,
		Role:    u.Role,
		IsAdmin: IsAdmin(c),
	}
}

func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// SetUser records the resolved caller on the request.
func SetUser(c *gin.Context, u *users.User, isAdmin bool) {
	c.Set(ctxUser, u)
	c.Set(ctxUserID, u.ID)
	c.Set(ctxEmail, u.Email)
	c.Set(ctxIsAdmin, isAdmin)
}
