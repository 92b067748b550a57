package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adminapi "pridenomad-hub/internal/api/admin"
	authapi "pridenomad-hub/internal/api/auth"
	"pridenomad-hub/internal/api/billing"
	"pridenomad-hub/internal/api/businesses"
	"pridenomad-hub/internal/api/plans"
	stripewebhooks "pridenomad-hub/internal/api/stripewebhook"
	"pridenomad-hub/internal/api/users"
	"pridenomad-hub/internal/api/webhook"
	"pridenomad-hub/internal/app/http/middleware"
	"pridenomad-hub/internal/domain/access"
	"pridenomad-hub/internal/pkg/metrics"
)

// Handlers is everything RegisterRoutes mounts. Stripe is nil unless the
// Stripe provider is configured.
type Handlers struct {
	Authenticator  *middleware.Authenticator
	WebhookLimiter *middleware.RateLimiter

	Webhook    *webhook.Handler
	Stripe     *stripewebhooks.Handler
	Auth       *authapi.Handler
	Users      *users.Handler
	Billing    *billing.Handler
	Businesses *businesses.Handler
	Admin      *adminapi.Handler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	hooks := r.Group("/webhook")
	if h.WebhookLimiter != nil {
		hooks.Use(h.WebhookLimiter.Middleware())
	}
	hooks.GET("/payment", h.Webhook.PaymentCallback)
	if h.Stripe != nil {
		hooks.POST("/stripe", h.Stripe.StripeWebhook)
	}

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", h.Auth.Register)
	public.POST("/login", h.Auth.Login)
	public.POST("/auth/session", h.Auth.ExchangeIDToken)
	public.GET("/auth/google", h.Auth.GoogleStart)
	public.GET("/auth/google/callback", h.Auth.GoogleCallback)

	public.GET("/plans", plans.ListPlans)
	public.GET("/tiers", plans.ListTiers)
	public.GET("/categories", h.Businesses.ListCategories)

	// Anonymous browsing; a token, when sent, reveals the caller's own
	// pending listings.
	browse := public.Group("/")
	browse.Use(h.Authenticator.Optional())
	browse.GET("/businesses", h.Businesses.ListBusinesses)
	browse.GET("/businesses/:id", h.Businesses.GetBusiness)
	browse.GET("/businesses/:id/reviews", h.Businesses.ListReviews)

	// Authenticated
	auth := r.Group("/")
	auth.Use(h.Authenticator.Required(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me", h.Users.GetCurrentUser)
	auth.GET("/me/payments", h.Billing.GetPaymentHistory)

	auth.POST("/claims", h.Billing.CreateClaim)
	auth.DELETE("/claims/:id", h.Billing.AbandonClaim)

	auth.POST("/businesses", middleware.RequireCapability(access.CapCreateListing), h.Businesses.CreateBusiness)
	auth.PUT("/businesses/:id", h.Businesses.UpdateBusiness)
	auth.DELETE("/businesses/:id", h.Businesses.DeleteBusiness)
	auth.POST("/businesses/:id/reviews", middleware.RequireCapability(access.CapReview), h.Businesses.CreateReview)
	auth.POST("/businesses/:id/photos", middleware.RequireCapability(access.CapUploadPhotos), h.Businesses.UploadPhoto)

	// Admin
	admin := r.Group("/admin")
	admin.Use(h.Authenticator.Required(), middleware.RequireAdmin(), middleware.SanitizeAndCleanInputMiddleware())
	admin.GET("", adminapi.AdminDashboard)
	admin.GET("/stats", h.Admin.GetAdminStats)
	admin.GET("/claims", h.Admin.ListPendingClaims)
	admin.POST("/claims/confirm", h.Admin.ConfirmClaim)
	admin.GET("/payments", h.Admin.ListAllPayments)
	admin.POST("/businesses/:id/approve", h.Admin.ApproveBusiness)
	admin.POST("/businesses/:id/reject", h.Admin.RejectBusiness)
	admin.PUT("/businesses/:id/tier", h.Admin.SetBusinessTier)
	admin.POST("/categories", h.Admin.CreateCategory)
	admin.DELETE("/categories/:id", h.Admin.DeleteCategory)
	admin.GET("/admins", h.Admin.ListAdmins)
	admin.POST("/admins", h.Admin.AddAdmin)
	admin.DELETE("/admins/:email", h.Admin.RemoveAdmin)
}
