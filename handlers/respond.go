package handlers

import (
	"github.com/gin-gonic/gin"
)

// The single response contract: {"success": true, "data": ...} or
// {"success": false, "error": {"code", "message"}}.

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
