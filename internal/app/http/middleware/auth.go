package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"pridenomad-hub/internal/api/respond"
	"pridenomad-hub/internal/auth"
	"pridenomad-hub/internal/domain/admins"
	"pridenomad-hub/internal/domain/users"
	apperr "pridenomad-hub/internal/pkg/errors"
)

// UserResolver maps a verified identity onto a stored user.
type UserResolver interface {
	Ensure(ctx context.Context, id *auth.Identity) (*users.User, error)
}

type Authenticator struct {
	verifier auth.Verifier
	users    UserResolver
	admins   *admins.Registry
}

func NewAuthenticator(v auth.Verifier, r UserResolver, reg *admins.Registry) *Authenticator {
	return &Authenticator{verifier: v, users: r, admins: reg}
}

func bearer(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func (a *Authenticator) resolve(c *gin.Context, raw string) error {
	id, err := a.verifier.Verify(c.Request.Context(), raw)
	if err != nil {
		return apperr.Unauthorized("Invalid or expired token")
	}
	u, err := a.users.Ensure(c.Request.Context(), id)
	if err != nil {
		return err
	}
	SetUser(c, u, a.admins != nil && a.admins.IsAdmin(u.Email))
	return nil
}

// Required rejects requests without a valid bearer token.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearer(c)
		if !ok {
			respond.Error(c, apperr.Unauthorized("Authorization header missing"))
			return
		}
		if err := a.resolve(c, raw); err != nil {
			respond.Error(c, err)
			return
		}
		c.Next()
	}
}

// Optional resolves the caller when a token is present and otherwise lets
// the request through anonymously.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearer(c); ok {
			if err := a.resolve(c, raw); err != nil {
				respond.Error(c, err)
				return
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after Required.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			respond.Error(c, apperr.Unauthorized("authentication required"))
			return
		}
		if !IsAdmin(c) {
			respond.Error(c, apperr.Forbidden("Access denied"))
			return
		}
		c.Next()
	}
}
