package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rvermeer/authd/internal/pkg/jwt"
)

func newGuardedRouter(t *testing.T, secret []byte) (*gin.Engine, *bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reached := false
	router := gin.New()
	router.GET("/protected", SessionAuth(secret), func(c *gin.Context) {
		reached = true
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(ContextUserIDKey)})
	})
	return router, &reached
}

func TestSessionAuthMissingCookie(t *testing.T) {
	router, reached := newGuardedRouter(t, []byte("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.False(t, *reached, "handler ran without a session cookie")
}

func TestSessionAuthGarbledToken(t *testing.T) {
	router, reached := newGuardedRouter(t, []byte("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.False(t, *reached)
}

func TestSessionAuthExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	router, reached := newGuardedRouter(t, secret)

	token, err := jwt.GenerateToken("user-1", secret, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.False(t, *reached)
}

func TestSessionAuthValidToken(t *testing.T) {
	secret := []byte("test-secret")
	router, reached := newGuardedRouter(t, secret)

	token, err := jwt.GenerateToken("user-1", secret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.True(t, *reached)
}
