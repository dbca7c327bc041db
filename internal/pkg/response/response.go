package response

import "github.com/gin-gonic/gin"

// Success and Error shape every JSON reply the API produces. Failure payloads
// carry a machine-readable code and a message safe to show to callers; they
// never include internal paths or stack detail.

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
