package auth

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"pridenomad-hub/internal/api/respond"
	hubauth "pridenomad-hub/internal/auth"
	apperr "pridenomad-hub/internal/pkg/errors"
)

const stateCookie = "oauth_state"

// GoogleStart handles GET /auth/google.
func (h *Handler) GoogleStart(c *gin.Context) {
	if h.opts.Google == nil {
		respond.Error(c, apperr.NotFound("google sign-in"))
		return
	}

	state, err := hubauth.RandomState()
	if err != nil {
		respond.Error(c, apperr.Internal("failed to generate state", err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, 300, "/", "", h.opts.SecureCookies, true)
	c.Redirect(http.StatusFound, h.opts.Google.AuthCodeURL(state))
}

// GoogleCallback handles GET /auth/google/callback.
func (h *Handler) GoogleCallback(c *gin.Context) {
	if h.opts.Google == nil {
		respond.Error(c, apperr.NotFound("google sign-in"))
		return
	}

	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		respond.Error(c, apperr.BadRequest("missing code/state"))
		return
	}

	cookieState, err := c.Cookie(stateCookie)
	if err != nil || cookieState != state {
		respond.Error(c, apperr.BadRequest("invalid oauth state"))
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", h.opts.SecureCookies, true)

	id, err := h.opts.Google.Exchange(c.Request.Context(), code)
	if err != nil {
		respond.Error(c, apperr.Unauthorized("failed to exchange code"))
		return
	}

	session, err := h.accounts.SignInExternal(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}

	if h.opts.FrontendRedirect == "" {
		c.JSON(http.StatusOK, session)
		return
	}
	c.Redirect(http.StatusFound, h.opts.FrontendRedirect+"?token="+url.QueryEscape(session.Token))
}
