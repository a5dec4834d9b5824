package response

import (
	"github.com/gin-gonic/gin"

	"github.com/rvermeer/authd/internal/model"
)

// Every endpoint answers with the same envelope: {success, message, user?}.
// The user key is only present on operations that return an account and may
// be null there (a valid session whose account no longer exists).

func Success(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func SuccessUser(c *gin.Context, status int, message string, user *model.User) {
	c.JSON(status, gin.H{"success": true, "message": message, "user": user})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
