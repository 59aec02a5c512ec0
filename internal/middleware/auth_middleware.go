package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// Ключи контекста Gin, которые выставляет RequireAuth
const (
	ContextUserIDKey = "user_id"
	ContextTokenKey  = "session_token"
)

// SessionAuthenticator проверяет токен сессии и возвращает ID владельца
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// AuthMiddleware обеспечивает аутентификацию для защищенных маршрутов
type AuthMiddleware struct {
	authenticator SessionAuthenticator
	cookieName    string
}

// NewAuthMiddleware создает middleware, читающий токен из cookie cookieName или заголовка Authorization
func NewAuthMiddleware(authenticator SessionAuthenticator, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		cookieName:    cookieName,
	}
}

// TokenFromRequest извлекает токен сессии: сначала из cookie, затем из заголовка "Bearer {token}".
// Пустая строка означает, что токен не передан.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth пропускает запрос дальше, только если сессия действительна.
// Проверка выполняется при каждом запросе, результат не кешируется.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c, m.cookieName)

		userID, err := m.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUnauthenticated):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "error_type": "unauthenticated"})
			case errors.Is(err, apperrors.ErrInvalidSession):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "error_type": "invalid_session"})
			default:
				log.Printf("[AuthMiddleware] Ошибка проверки сессии: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "error_type": "internal_server_error"})
			}
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}
