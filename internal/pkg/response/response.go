package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"autoshop/internal/pkg/validator"
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

// CustomError accepts a plain string, an error or validation errors as the message.
func CustomError(c *gin.Context, statusCode int, code string, message any) {
	switch m := message.(type) {
	case validator.Errors:
		ErrorWithDetails(c, statusCode, code, m.Error(), m)
	case error:
		Error(c, statusCode, code, m.Error())
	case string:
		Error(c, statusCode, code, m)
	default:
		ErrorWithDetails(c, statusCode, code, code, m)
	}
}

// Validation writes a 422 with per-field details.
func Validation(c *gin.Context, errs validator.Errors) {
	ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", errs.Error(), errs)
}

// BindJSON decodes the request body into req. On failure it writes a 422 for
// non-numeric amounts or a 400 otherwise and returns false.
func BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if errs, ok := validator.FromBindError(err); ok {
			Validation(c, errs)
			return false
		}
		Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return false
	}
	return true
}

// ParamID reads the positive integer path parameter "id".
func ParamID(c *gin.Context, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+what+" ID")
		return 0, false
	}
	return id, true
}
