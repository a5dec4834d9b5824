package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rvermeer/authd/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/signup", deps.Auth.Signup)
	api.POST("/auth/login", deps.Auth.Login)
	api.GET("/auth/logout", deps.Auth.Logout)
	api.POST("/auth/verify-email", deps.Auth.VerifyEmail)
	api.POST("/auth/resend-verification", deps.Auth.ResendVerification)
	api.POST("/auth/forgot-password", deps.Auth.ForgotPassword)
	api.POST("/auth/reset-password/:resetToken", deps.Auth.ResetPassword)

	authGroup := api.Group("")
	authGroup.Use(middleware.SessionAuth(deps.JWTSecret))
	authGroup.GET("/auth/check-auth", deps.Auth.CheckAuth)
}
