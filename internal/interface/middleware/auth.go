package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danuarts/woodshop/pkg/helpers"
	"github.com/danuarts/woodshop/pkg/response"
)

const (
	CtxAdminIDKey   = "adminID"
	CtxAdminNameKey = "adminName"
)

// Auth is the gate in front of every administrative route. It reads
// the auth cookie and validates signature and expiry on each request;
// there is no server-side session state, the token is the whole proof.
// Failures are always the same generic 401 so the response does not
// leak why validation failed; clients are expected to send the user
// back to the login page.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.AuthCookieName)
		if err != nil || token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		c.Set(CtxAdminIDKey, claims.AdminID)
		c.Set(CtxAdminNameKey, claims.Username)
		c.Next()
	}
}
