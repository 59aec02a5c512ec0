package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

func init() {
	// В ошибках валидации поле называется так же, как в JSON запроса
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// handleError переводит ошибку сервиса в HTTP-ответ {"error", "error_type"}.
// Причины внутренних ошибок логируются, но клиенту не показываются.
func handleError(c *gin.Context, component string, err error) {
	var fieldErr *apperrors.FieldError

	switch {
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Error(), "error_type": "validation_error", "field": fieldErr.Field})
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "error_type": "unauthenticated"})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrInvalidCredentials.Error(), "error_type": "invalid_credentials"})
	case errors.Is(err, apperrors.ErrInvalidSession):
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrInvalidSession.Error(), "error_type": "invalid_session"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "conflict"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error"})
	default:
		log.Printf("[%s] Внутренняя ошибка: %v", component, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка сервера", "error_type": "internal_server_error"})
	}
}

// bindJSON разбирает тело запроса и отвечает 400 при ошибке.
// Нарушение тега binding сообщается с именем поля, прочие ошибки разбора с полем "body".
// Возвращает false, если обработку нужно прекратить.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		handleError(c, "bind", apperrors.NewFieldError(fe.Field(), validationMessage(fe)))
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error", "field": "body"})
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
