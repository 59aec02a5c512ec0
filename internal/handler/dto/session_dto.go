package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// LoginRequest тело запроса входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse ответ на успешный вход
type LoginResponse struct {
	SessionID uuid.UUID `json:"sessionId"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResponse описание активной сессии пользователя
type SessionResponse struct {
	ID        uuid.UUID `json:"id"`
	Current   bool      `json:"current"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewSessionListResponse преобразует сессии, отмечая ту, через которую пришел запрос
func NewSessionListResponse(sessions []entity.Session, currentToken string) []SessionResponse {
	result := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		result[i] = SessionResponse{
			ID:        s.ID,
			Current:   s.Token() == currentToken,
			CreatedAt: s.CreatedAt,
			ExpiresAt: s.ExpiresAt,
		}
	}
	return result
}
