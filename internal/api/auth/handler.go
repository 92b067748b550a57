package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"pridenomad-hub/internal/api/respond"
	hubauth "pridenomad-hub/internal/auth"
	apperr "pridenomad-hub/internal/pkg/errors"
	"pridenomad-hub/internal/services/accounts"
)

type AccountService interface {
	Register(ctx context.Context, in accounts.RegisterInput) (*accounts.Session, error)
	Login(ctx context.Context, email, password string) (*accounts.Session, error)
	SignInExternal(ctx context.Context, id *hubauth.Identity) (*accounts.Session, error)
}

// GoogleFlow is the OAuth half of Google sign-in.
type GoogleFlow interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*hubauth.Identity, error)
}

type Options struct {
	// Google is nil when Google sign-in is not configured.
	Google           GoogleFlow
	FrontendRedirect string
	SecureCookies    bool
	// IDTokens verifies provider ID tokens posted to /auth/session.
	IDTokens hubauth.Verifier
}

type Handler struct {
	accounts AccountService
	opts     Options
}

func NewHandler(a AccountService, opts Options) *Handler {
	return &Handler{accounts: a, opts: opts}
}

// Register handles POST /register.
func (h *Handler) Register(c *gin.Context) {
	var input accounts.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BindError(c, err)
		return
	}

	session, err := h.accounts.Register(c.Request.Context(), input)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Login handles POST /login.
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BindError(c, err)
		return
	}

	session, err := h.accounts.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ExchangeIDToken handles POST /auth/session: a Firebase or Google ID token
// is swapped for a hub session token.
func (h *Handler) ExchangeIDToken(c *gin.Context) {
	if h.opts.IDTokens == nil {
		respond.Error(c, apperr.New(apperr.ErrCodeBadRequest, "external sign-in is not configured", http.StatusNotImplemented))
		return
	}

	var input struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BindError(c, err)
		return
	}

	id, err := h.opts.IDTokens.Verify(c.Request.Context(), input.IDToken)
	if err != nil {
		respond.Error(c, apperr.Unauthorized("Invalid token"))
		return
	}

	session, err := h.accounts.SignInExternal(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
