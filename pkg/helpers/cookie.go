package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthCookieName is the cookie carrying the admin token.
const AuthCookieName = "auth_token"

// CookieManager writes and clears the auth cookie. HttpOnly always,
// SameSite=Strict, Secure per config.
type CookieManager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure}
}

// SetToken stores the admin token; Max-Age matches the token expiry so
// the cookie and the embedded expiry elapse together.
func (m *CookieManager) SetToken(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AuthCookieName, token, maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

// Clear removes the auth cookie. This is the whole of logout: the
// token itself remains valid server-side until its expiry.
func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AuthCookieName, "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
