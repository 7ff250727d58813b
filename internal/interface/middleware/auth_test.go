package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuarts/woodshop/pkg/helpers"
)

func setupGate(jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", Auth(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"admin_id":   c.GetInt64(CtxAdminIDKey),
			"admin_name": c.GetString(CtxAdminNameKey),
		})
	})
	return r
}

func doRequest(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: helpers.AuthCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingCookie(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}
	w := doRequest(setupGate(jwt), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthGarbageToken(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}
	w := doRequest(setupGate(jwt), "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthExpiredToken(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}
	expired := &helpers.JWTManager{Secret: []byte("test-secret"), TTL: -time.Minute}

	token, _, err := expired.GenerateToken(1, "admin")
	require.NoError(t, err)

	w := doRequest(setupGate(jwt), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthForeignSignatureRejected(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}
	forged := &helpers.JWTManager{Secret: []byte("other-secret"), TTL: time.Hour}

	token, _, err := forged.GenerateToken(1, "admin")
	require.NoError(t, err)

	w := doRequest(setupGate(jwt), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidTokenPassesIdentity(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}

	token, _, err := jwt.GenerateToken(42, "admin")
	require.NoError(t, err)

	w := doRequest(setupGate(jwt), token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"admin_id":42`)
	assert.Contains(t, w.Body.String(), `"admin_name":"admin"`)
}
