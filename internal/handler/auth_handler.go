package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/service"
)

// CookieConfig атрибуты cookie сессии
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler обрабатывает вход, выход и список сессий
type AuthHandler struct {
	authService *service.AuthService
	cookie      CookieConfig
}

// NewAuthHandler создает новый обработчик сессий
func NewAuthHandler(authService *service.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, expires time.Time) {
	maxAge := int(time.Until(expires).Seconds())
	if value == "" {
		maxAge = -1
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Login проверяет учетные данные и открывает новую сессию
// POST /api/session
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.authService.Issue(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, "AuthHandler", err)
		return
	}

	h.setSessionCookie(c, session.Token(), session.ExpiresAt)
	c.JSON(http.StatusCreated, dto.LoginResponse{SessionID: session.ID, ExpiresAt: session.ExpiresAt})
}

// Logout отзывает текущую сессию и очищает cookie
// POST /api/session/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextTokenKey)

	if err := h.authService.Revoke(c.Request.Context(), token); err != nil {
		handleError(c, "AuthHandler", err)
		return
	}

	h.setSessionCookie(c, "", time.Unix(0, 0))
	c.Status(http.StatusNoContent)
}

// LogoutAll отзывает все активные сессии текущего пользователя
// POST /api/session/logout-all
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserIDKey).(uuid.UUID)

	n, err := h.authService.RevokeAll(c.Request.Context(), userID)
	if err != nil {
		handleError(c, "AuthHandler", err)
		return
	}

	log.Printf("[AuthHandler] Пользователь %s завершил все сессии (%d)", userID, n)
	h.setSessionCookie(c, "", time.Unix(0, 0))
	c.JSON(http.StatusOK, gin.H{"revoked": n})
}

// ListSessions возвращает активные сессии текущего пользователя
// GET /api/session
func (h *AuthHandler) ListSessions(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserIDKey).(uuid.UUID)

	sessions, err := h.authService.ListActive(c.Request.Context(), userID)
	if err != nil {
		handleError(c, "AuthHandler", err)
		return
	}

	token := c.GetString(middleware.ContextTokenKey)
	c.JSON(http.StatusOK, dto.NewSessionListResponse(sessions, token))
}
