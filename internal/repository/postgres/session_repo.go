package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// SessionRepo реализует интерфейс SessionRepository с использованием PostgreSQL и GORM
type SessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo создает новый экземпляр SessionRepo и возвращает ошибку при проблемах
func NewSessionRepo(gormDB *gorm.DB) (*SessionRepo, error) {
	if gormDB == nil {
		return nil, fmt.Errorf("GORM DB instance is required for SessionRepo")
	}
	return &SessionRepo{db: gormDB}, nil
}

// Create сохраняет новую сессию в базе данных
func (r *SessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return translateError("create session", r.db.WithContext(ctx).Create(session).Error)
}

// GetByID находит сессию по её ID. Активность и срок здесь не проверяются:
// решение принимает сервис по текущему времени.
func (r *SessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var session entity.Session
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		return nil, translateError("get session by id", err)
	}
	return &session, nil
}

// Deactivate помечает сессию как неактивную. Повторный вызов не является ошибкой,
// отсутствие строки тоже: сессия могла быть удалена каскадом вместе с пользователем.
func (r *SessionRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&entity.Session{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"active":     false,
			"updated_at": time.Now().UTC(),
		})
	return translateError("deactivate session", result.Error)
}

// DeactivateAllForUser помечает все активные сессии пользователя как неактивные
func (r *SessionRepo) DeactivateAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Session{}).
		Where("user_id = ? AND active = ?", userID, true).
		Updates(map[string]interface{}{
			"active":     false,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, translateError("deactivate user sessions", result.Error)
	}
	return result.RowsAffected, nil
}

// ListActiveForUser возвращает активные (не отозванные и не истекшие) сессии пользователя
func (r *SessionRepo) ListActiveForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]entity.Session, error) {
	var sessions []entity.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ? AND expires_at > ?", userID, true, now).
		Order("created_at DESC"). // Сортируем по дате создания (самые новые первыми)
		Find(&sessions).Error
	if err != nil {
		return nil, translateError("list active sessions", err)
	}
	return sessions, nil
}
