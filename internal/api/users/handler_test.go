package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pridenomad-hub/internal/app/http/middleware"
	"pridenomad-hub/internal/domain/access"
	"pridenomad-hub/internal/domain/users"
	apperr "pridenomad-hub/internal/pkg/errors"
	"pridenomad-hub/internal/services/accounts"
)

type fakeProfiles map[string]*users.User

func (f fakeProfiles) Me(_ context.Context, userID string) (*accounts.Profile, error) {
	u, ok := f[userID]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	return &accounts.Profile{User: u, Policy: access.ComputePolicy(*u, false)}, nil
}

func TestGetCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	u := &users.User{ID: "u-1", Email: "alice@hub.test", Name: "Alice", Role: users.RolePremium}
	h := NewHandler(fakeProfiles{"u-1": u})

	r := gin.New()
	r.GET("/me", func(c *gin.Context) { middleware.SetUser(c, u, false) }, h.GetCurrentUser)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Premium User", resp.User.Role)
	require.NotNil(t, resp.Plan)
	assert.Equal(t, "premium", resp.Plan.ID)
	assert.False(t, resp.Access.IsAdmin)
	assert.Contains(t, resp.Access.Capabilities, string(access.CapVideo))
	assert.Equal(t, 15, resp.Access.Limits.MaxImages)
}

func TestGetCurrentUser_Anonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", NewHandler(fakeProfiles{}).GetCurrentUser)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBuildPlanDTO_RegularUserGetsEssentials(t *testing.T) {
	p := BuildPlanDTO(users.RoleRegular.Tier())
	require.NotNil(t, p)
	assert.Equal(t, "essentials", p.ID)
	assert.Zero(t, p.MonthlyPrice)
}
