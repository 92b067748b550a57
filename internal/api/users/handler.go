package users

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"pridenomad-hub/internal/api/respond"
	"pridenomad-hub/internal/app/http/middleware"
	apperr "pridenomad-hub/internal/pkg/errors"
	"pridenomad-hub/internal/services/accounts"
)

type ProfileService interface {
	Me(ctx context.Context, userID string) (*accounts.Profile, error)
}

type Handler struct {
	accounts ProfileService
}

func NewHandler(p ProfileService) *Handler {
	return &Handler{accounts: p}
}

// GetCurrentUser handles GET /me.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		respond.Error(c, apperr.Unauthorized("Unauthorized"))
		return
	}

	profile, err := h.accounts.Me(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User:   BuildUserDTO(profile.User),
		Plan:   BuildPlanDTO(profile.Policy.Tier),
		Access: BuildAccessDTO(profile.Policy),
	})
}
