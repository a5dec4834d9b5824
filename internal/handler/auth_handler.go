package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rvermeer/authd/internal/middleware"
	"github.com/rvermeer/authd/internal/pkg/response"
	"github.com/rvermeer/authd/internal/service"
)

type AuthHandler struct {
	auth       *service.AuthService
	sessionTTL time.Duration
}

func NewAuthHandler(auth *service.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, sessionTTL: sessionTTL}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyEmailRequest struct {
	Code string `json:"code"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Please enter all fields")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Password == "" || req.Name == "" {
		response.Error(c, http.StatusBadRequest, "Please enter all fields")
		return
	}
	user, token, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		handleError(c, err)
		return
	}
	h.setSessionCookie(c, token)
	response.SuccessUser(c, http.StatusCreated, "User created successfully", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request")
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	h.setSessionCookie(c, token)
	response.SuccessUser(c, http.StatusCreated, "User logged in successfully", user)
}

// Logout only clears the client-side cookie. Session tokens are stateless,
// so an already-issued token stays valid until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request")
		return
	}
	user, err := h.auth.VerifyEmail(c.Request.Context(), strings.TrimSpace(req.Code))
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessUser(c, http.StatusOK, "Email verified successfully", user)
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := h.auth.ResendVerification(c.Request.Context(), strings.TrimSpace(req.Email)); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Verification email sent again")
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := h.auth.ForgotPassword(c.Request.Context(), strings.TrimSpace(req.Email)); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Password reset email sent successfully")
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request")
		return
	}
	token := c.Param("resetToken")
	if err := h.auth.ResetPassword(c.Request.Context(), token, req.Password); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Password reset successfully")
}

func (h *AuthHandler) CheckAuth(c *gin.Context) {
	user, err := h.auth.CheckAuth(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	// user may be nil here: a valid session outlives a deleted account and
	// still answers 200 with a null user.
	response.SuccessUser(c, http.StatusOK, "User is authenticated", user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(h.sessionTTL / time.Second)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", false, true)
}
