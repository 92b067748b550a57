package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pridenomad-hub/internal/app/http/middleware"
	"pridenomad-hub/internal/domain/admins"
	"pridenomad-hub/internal/domain/billing"
	"pridenomad-hub/internal/domain/listings"
	"pridenomad-hub/internal/domain/plans"
	"pridenomad-hub/internal/domain/users"
	"pridenomad-hub/internal/pkg/logger"
	"pridenomad-hub/internal/services/claims"
	"pridenomad-hub/internal/services/directory"
	"pridenomad-hub/internal/store/gormstore"
	"pridenomad-hub/internal/testutil"
)

type okGateway struct{}

func (okGateway) CheckoutURL(_ context.Context, c *billing.PendingClaim, _ plans.Plan) (string, error) {
	return "https://pay.test/?order_id=" + c.ID, nil
}

var boss = &users.User{ID: "admin-1", Email: "boss@hub.test", Role: users.RoleRegular}

type fixture struct {
	router *gin.Engine
	store  *gormstore.Store
	claims *claims.Service
	dir    *directory.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := gormstore.New(testutil.NewTestDB(t))
	cs := claims.NewService(st, okGateway{}, nil, logger.Nop())
	dir := directory.NewService(st, nil, logger.Nop())
	h := NewHandler(cs, dir, st.Payments(), st.Admins(), admins.NewRegistry(boss.Email))

	r := gin.New()
	g := r.Group("/admin", func(c *gin.Context) { middleware.SetUser(c, boss, true) })
	g.GET("", AdminDashboard)
	g.GET("/claims", h.ListPendingClaims)
	g.POST("/claims/confirm", h.ConfirmClaim)
	g.GET("/payments", h.ListAllPayments)
	g.GET("/stats", h.GetAdminStats)
	g.POST("/businesses/:id/approve", h.ApproveBusiness)
	g.POST("/businesses/:id/reject", h.RejectBusiness)
	g.PUT("/businesses/:id/tier", h.SetBusinessTier)
	g.POST("/categories", h.CreateCategory)
	g.DELETE("/categories/:id", h.DeleteCategory)
	g.GET("/admins", h.ListAdmins)
	g.POST("/admins", h.AddAdmin)
	g.DELETE("/admins/:email", h.RemoveAdmin)
	return &fixture{router: r, store: st, claims: cs, dir: dir}
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/admin", "").Code)
}

func TestManualConfirmationAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := &users.User{Email: "alice@hub.test", Name: "Alice", Role: users.RoleRegular}
	require.NoError(t, f.store.Users().Create(ctx, u))
	_, err := f.claims.CreatePendingClaim(ctx, claims.CreateInput{
		UserID:   u.ID,
		Email:    u.Email,
		PlanID:   "premium",
		Business: listings.Business{BusinessName: "Rainbow Cafe"},
	})
	require.NoError(t, err)

	var pending []billing.PendingClaim
	require.NoError(t, json.Unmarshal(f.do(http.MethodGet, "/admin/claims", "").Body.Bytes(), &pending))
	require.Len(t, pending, 1)

	w := f.do(http.MethodPost, "/admin/claims/confirm", `{"userEmail":"alice@hub.test"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Premium User")

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/admin/claims/confirm", `{"userEmail":"alice@hub.test"}`).Code)

	var payments []billing.Payment
	require.NoError(t, json.Unmarshal(f.do(http.MethodGet, "/admin/payments", "").Body.Bytes(), &payments))
	require.Len(t, payments, 1)
	assert.Equal(t, "premium", payments[0].PlanID)

	var stats AdminStats
	require.NoError(t, json.Unmarshal(f.do(http.MethodGet, "/admin/stats", "").Body.Bytes(), &stats))
	assert.Equal(t, 0, stats.PendingClaims)
	assert.EqualValues(t, 1, stats.TotalPayments)
	assert.EqualValues(t, 1, stats.PaymentsPerPlan["premium"])
	assert.InDelta(t, 149.0, stats.TotalRevenue, 0.001)
}

func TestStatsAndPaymentsCoverWholeLog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 150; i++ {
		ts := now.Add(-time.Duration(i) * time.Minute)
		plan := "enhanced"
		if i >= 140 {
			ts = now.AddDate(0, 0, -40)
			plan = "elite"
		}
		require.NoError(t, f.store.Payments().Create(ctx, &billing.Payment{
			UserID:    "u",
			Email:     "u@hub.test",
			PlanID:    plan,
			Amount:    49,
			Status:    billing.PaymentStatusCompleted,
			Timestamp: ts,
		}))
	}

	var stats AdminStats
	require.NoError(t, json.Unmarshal(f.do(http.MethodGet, "/admin/stats", "").Body.Bytes(), &stats))
	assert.EqualValues(t, 150, stats.TotalPayments)
	assert.InDelta(t, 150*49.0, stats.TotalRevenue, 0.001)
	assert.InDelta(t, 140*49.0, stats.RecentRevenue, 0.001)
	assert.EqualValues(t, 140, stats.PaymentsPerPlan["enhanced"])
	assert.EqualValues(t, 10, stats.PaymentsPerPlan["elite"])

	var page []billing.Payment
	require.NoError(t, json.Unmarshal(f.do(http.MethodGet, "/admin/payments?limit=500", "").Body.Bytes(), &page))
	assert.Len(t, page, 150)

	require.NoError(t, json.Unmarshal(f.do(http.MethodGet, "/admin/payments?limit=20&offset=140", "").Body.Bytes(), &page))
	assert.Len(t, page, 10)
}

func TestModeration(t *testing.T) {
	f := newFixture(t)
	owner := directory.Actor{UserID: "owner-1", Role: users.RoleRegular}
	b, err := f.dir.Create(context.Background(), owner, listings.Business{BusinessName: "Corner Shop", Categories: []string{"Retail"}})
	require.NoError(t, err)

	w := f.do(http.MethodPost, "/admin/businesses/"+b.ID+"/approve", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"approved"`)

	w = f.do(http.MethodPut, "/admin/businesses/"+b.ID+"/tier", `{"tier":"elite"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tier":"elite"`)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPut, "/admin/businesses/"+b.ID+"/tier", `{"tier":"platinum"}`).Code)

	w = f.do(http.MethodPost, "/admin/businesses/"+b.ID+"/reject", "")
	assert.Contains(t, w.Body.String(), `"status":"rejected"`)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/admin/businesses/missing/approve", "").Code)
}

func TestCategories(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/admin/categories", `{"name":"Food & Drink"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cat listings.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cat))

	w = f.do(http.MethodPost, "/admin/categories", `{"name":"Cafes","parentId":"`+cat.ID+`"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), cat.Slug+"-cafes")

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/admin/categories/"+cat.ID, "").Code)
	cats, err := f.dir.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestAdminManagement(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/admin/admins", `{"email":"Helper@Hub.test"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"addedBy":"boss@hub.test"`)

	assert.Equal(t, http.StatusConflict, f.do(http.MethodPost, "/admin/admins", `{"email":"helper@hub.test"}`).Code)

	var list struct {
		Admins    []admins.Admin `json:"admins"`
		Effective []string       `json:"effective"`
	}
	require.NoError(t, json.Unmarshal(f.do(http.MethodGet, "/admin/admins", "").Body.Bytes(), &list))
	require.Len(t, list.Admins, 1)
	assert.Equal(t, "helper@hub.test", list.Admins[0].Email)
	assert.Equal(t, []string{"boss@hub.test"}, list.Effective)

	assert.Equal(t, http.StatusConflict, f.do(http.MethodDelete, "/admin/admins/boss@hub.test", "").Code)
	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/admin/admins/helper@hub.test", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/admin/admins/helper@hub.test", "").Code)
}
