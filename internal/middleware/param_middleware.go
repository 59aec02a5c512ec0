package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExtractUUIDParam создает middleware для извлечения и валидации UUID параметра URL.
// paramName - имя параметра в URL (например, "id").
// contextKey - ключ, под которым uuid.UUID будет сохранен в контексте Gin.
func ExtractUUIDParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param(paramName))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":      fmt.Sprintf("Invalid %s", paramName),
				"error_type": "validation_error",
				"field":      paramName,
			})
			return
		}
		c.Set(contextKey, id)
		c.Next()
	}
}
