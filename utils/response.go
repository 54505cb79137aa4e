package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"error": gin.H{
			"code":    errCode,
			"message": message,
		},
	})
}

func JSONErrorWithDetails(c *gin.Context, code int, errCode, message string, details any) {
	c.JSON(code, gin.H{
		"success": false,
		"error": gin.H{
			"code":    errCode,
			"message": message,
			"details": details,
		},
	})
}

// AbortJSONError is JSONError for middleware: the rest of the chain is skipped.
func AbortJSONError(c *gin.Context, code int, errCode, message string) {
	JSONError(c, code, errCode, message)
	c.Abort()
}
