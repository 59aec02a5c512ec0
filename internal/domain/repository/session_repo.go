package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// SessionRepository интерфейс для работы с сессиями входа.
// Сессии никогда не удаляются физически, кроме каскада от пользователя.
type SessionRepository interface {
	// Create сохраняет новую сессию
	Create(ctx context.Context, session *entity.Session) error

	// GetByID находит сессию по ID (токену), не проверяя её активность
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// Deactivate выставляет active = false; повторный вызов не является ошибкой
	Deactivate(ctx context.Context, id uuid.UUID) error

	// DeactivateAllForUser отзывает все активные сессии пользователя и возвращает их количество
	DeactivateAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// ListActiveForUser возвращает активные и не истекшие к моменту now сессии
	ListActiveForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]entity.Session, error)
}
