package admin

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pridenomad-hub/internal/api/respond"
	"pridenomad-hub/internal/app/http/middleware"
	"pridenomad-hub/internal/domain/admins"
	"pridenomad-hub/internal/domain/billing"
	"pridenomad-hub/internal/domain/listings"
	"pridenomad-hub/internal/domain/users"
	apperr "pridenomad-hub/internal/pkg/errors"
	"pridenomad-hub/internal/services/claims"
	"pridenomad-hub/internal/store"
)

type ClaimService interface {
	ListPending(ctx context.Context) ([]billing.PendingClaim, error)
	ConfirmPayment(ctx context.Context, userEmail string) (*claims.Confirmation, error)
}

type Moderator interface {
	Approve(ctx context.Context, id string) (*listings.Business, error)
	Reject(ctx context.Context, id string) (*listings.Business, error)
	SetTier(ctx context.Context, id, tier string) (*listings.Business, error)
	CreateCategory(ctx context.Context, name string, parentID *string) (*listings.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type Handler struct {
	claims   ClaimService
	mod      Moderator
	payments store.Payments
	admins   store.Admins
	registry *admins.Registry
}

func NewHandler(c ClaimService, m Moderator, p store.Payments, a store.Admins, reg *admins.Registry) *Handler {
	return &Handler{claims: c, mod: m, payments: p, admins: a, registry: reg}
}

type AdminStats struct {
	PendingClaims   int              `json:"pending_claims"`
	TotalPayments   int64            `json:"total_payments"`
	TotalRevenue    float64          `json:"total_revenue"`
	RecentRevenue   float64          `json:"recent_revenue"`
	PaymentsPerPlan map[string]int64 `json:"payments_per_plan"`
}

func AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the admin dashboard",
	})
}

// ListPendingClaims handles GET /admin/claims.
func (h *Handler) ListPendingClaims(c *gin.Context) {
	pending, err := h.claims.ListPending(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	if pending == nil {
		pending = []billing.PendingClaim{}
	}
	c.JSON(http.StatusOK, pending)
}

// ConfirmClaim handles POST /admin/claims/confirm, for payments settled
// outside the webhook.
func (h *Handler) ConfirmClaim(c *gin.Context) {
	var body struct {
		UserEmail string `json:"userEmail" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.BindError(c, err)
		return
	}

	conf, err := h.claims.ConfirmPayment(c.Request.Context(), body.UserEmail)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, conf)
}

// ListAllPayments handles GET /admin/payments?limit=&offset=.
func (h *Handler) ListAllPayments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit = billing.PaymentPageSize(limit)
	if offset < 0 {
		offset = 0
	}

	payments, err := h.payments.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if payments == nil {
		payments = []billing.Payment{}
	}
	c.JSON(http.StatusOK, payments)
}

// GetAdminStats handles GET /admin/stats.
func (h *Handler) GetAdminStats(c *gin.Context) {
	ctx := c.Request.Context()

	totals, err := h.payments.Stats(ctx, time.Now().UTC().AddDate(0, 0, -30))
	if err != nil {
		respond.Error(c, err)
		return
	}
	pending, err := h.claims.ListPending(ctx)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, AdminStats{
		PendingClaims:   len(pending),
		TotalPayments:   totals.Count,
		TotalRevenue:    totals.Revenue,
		RecentRevenue:   totals.RecentRevenue,
		PaymentsPerPlan: totals.PerPlan,
	})
}

// ApproveBusiness handles POST /admin/businesses/:id/approve.
func (h *Handler) ApproveBusiness(c *gin.Context) {
	b, err := h.mod.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RejectBusiness handles POST /admin/businesses/:id/reject.
func (h *Handler) RejectBusiness(c *gin.Context) {
	b, err := h.mod.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// SetBusinessTier handles PUT /admin/businesses/:id/tier.
func (h *Handler) SetBusinessTier(c *gin.Context) {
	var body struct {
		Tier string `json:"tier" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.BindError(c, err)
		return
	}

	b, err := h.mod.SetTier(c.Request.Context(), c.Param("id"), body.Tier)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CreateCategory handles POST /admin/categories.
func (h *Handler) CreateCategory(c *gin.Context) {
	var body struct {
		Name     string  `json:"name" binding:"required,max=80"`
		ParentID *string `json:"parentId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.BindError(c, err)
		return
	}

	cat, err := h.mod.CreateCategory(c.Request.Context(), body.Name, body.ParentID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// DeleteCategory handles DELETE /admin/categories/:id.
func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.mod.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAdmins handles GET /admin/admins. Effective includes the
// ADMIN_EMAILS seed, which is not stored.
func (h *Handler) ListAdmins(c *gin.Context) {
	stored, err := h.admins.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	if stored == nil {
		stored = []admins.Admin{}
	}
	c.JSON(http.StatusOK, gin.H{
		"admins":    stored,
		"effective": h.registry.Snapshot().Emails(),
	})
}

// AddAdmin handles POST /admin/admins. The registry picks the change up on
// its next refresh.
func (h *Handler) AddAdmin(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.BindError(c, err)
		return
	}

	a := &admins.Admin{
		Email:   users.NormalizeEmail(body.Email),
		AddedAt: time.Now().UTC(),
	}
	if u, ok := middleware.CurrentUser(c); ok {
		a.AddedBy = u.Email
	}
	if err := h.admins.Add(c.Request.Context(), a); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// RemoveAdmin handles DELETE /admin/admins/:email.
func (h *Handler) RemoveAdmin(c *gin.Context) {
	email := users.NormalizeEmail(c.Param("email"))
	if u, ok := middleware.CurrentUser(c); ok && strings.EqualFold(u.Email, email) {
		respond.Error(c, apperr.Conflict("you cannot remove yourself"))
		return
	}
	if err := h.admins.Remove(c.Request.Context(), email); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
