package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rvermeer/authd/internal/pkg/jwt"
	"github.com/rvermeer/authd/internal/pkg/response"
)

const (
	ContextUserIDKey = "user_id"

	// SessionCookieName is the HTTP-only cookie the session token rides in.
	SessionCookieName = "auth_token"
)

// SessionAuth guards routes behind a valid session cookie. A missing,
// malformed or expired token all end the request with the same 401; the
// account itself is never touched here.
func SessionAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			response.Error(c, http.StatusUnauthorized, "No token, authorization denied")
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token, secret)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}
