package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidID        = "INVALID_ID"
	CodeValidation       = "VALIDATION_ERROR"
	CodeReferential      = "REFERENTIAL_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeInternal         = "INTERNAL"
	CodeServiceUnhealthy = "SERVICE_UNAVAILABLE"
)

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

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}

func Internal(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	Error(c, http.StatusInternalServerError, CodeInternal, "Internal error")
}
