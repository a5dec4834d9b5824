package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/rvermeer/authd/internal/pkg/errors"
	"github.com/rvermeer/authd/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get("user_id")
	userID, _ := value.(string)
	return userID
}

// handleError is the single place service errors become HTTP answers.
// Lookup misses stay 400 (never 404) and credential failures keep one
// generic message, so responses don't leak which accounts exist.
func handleError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case err == appErr.ErrInvalidCredentials:
		response.Error(c, http.StatusBadRequest, "Invalid credentials")
	case err == appErr.ErrConflict:
		response.Error(c, http.StatusBadRequest, "User already exists")
	case err == appErr.ErrCodeInvalid:
		response.Error(c, http.StatusBadRequest, "Invalid or expired verification code")
	case err == appErr.ErrResetInvalid:
		response.Error(c, http.StatusBadRequest, "Invalid or expired reset token")
	case err == appErr.ErrNotFound:
		response.Error(c, http.StatusBadRequest, "User not found")
	case err == appErr.ErrUnauthorized:
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
	case err == appErr.ErrInvalid:
		response.Error(c, http.StatusBadRequest, "Invalid request")
	default:
		requestID, _ := c.Get("request_id")
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.Any("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}
