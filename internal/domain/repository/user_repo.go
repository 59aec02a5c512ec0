package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update обновляет только переданные поля и возвращает актуальную запись
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*entity.User, error)
	// Delete удаляет пользователя; его сессии удаляются каскадно
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]entity.User, error)
}
