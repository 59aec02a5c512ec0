package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuestionFilters фильтры для списка вопросов
type QuestionFilters struct {
	SubjectID *uuid.UUID
	Level     entity.QuestionLevel
}

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	// GetByID возвращает вопрос вместе с дисциплиной
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Question, error)
	// List возвращает вопросы с подгруженной дисциплиной
	List(ctx context.Context, filters QuestionFilters) ([]entity.Question, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*entity.Question, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
