package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// SubjectRepository определяет методы для работы с дисциплинами
type SubjectRepository interface {
	Create(ctx context.Context, subject *entity.Subject) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Subject, error)
	GetByName(ctx context.Context, name string) (*entity.Subject, error)
	List(ctx context.Context) ([]entity.Subject, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*entity.Subject, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
