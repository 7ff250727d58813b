package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/danuarts/woodshop/internal/application"
	"github.com/danuarts/woodshop/pkg/helpers"
	"github.com/danuarts/woodshop/pkg/response"
	"github.com/danuarts/woodshop/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and sets the auth cookie. Every failure is
// the same generic 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	token, exp, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, application.ErrInvalidCredentials) && h.Logger != nil {
			h.Logger.WithError(err).Error("login failed")
		}
		resp := response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		c.JSON(resp.Status, resp)
		return
	}

	h.Cookies.SetToken(c, token, exp)
	resp := response.Success[any](c, http.StatusOK, gin.H{"username": req.Username}, "login successful", map[string]any{"expires_at": exp})
	c.JSON(resp.Status, resp)
}

// Logout clears the cookie. The token itself stays valid until expiry;
// there is no server-side revocation.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	resp := response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
	c.JSON(resp.Status, resp)
}
