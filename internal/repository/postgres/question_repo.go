package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	return translateError("create question", r.db.WithContext(ctx).Omit("Subject").Create(question).Error)
}

// GetByID возвращает вопрос по ID вместе с дисциплиной
func (r *QuestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Question, error) {
	var question entity.Question
	err := r.db.WithContext(ctx).Preload("Subject").First(&question, "id = ?", id).Error
	if err != nil {
		return nil, translateError("get question by id", err)
	}
	return &question, nil
}

// List возвращает вопросы с учетом фильтров
func (r *QuestionRepo) List(ctx context.Context, filters repository.QuestionFilters) ([]entity.Question, error) {
	var questions []entity.Question

	query := r.db.WithContext(ctx).Preload("Subject")
	if filters.SubjectID != nil {
		query = query.Where("subject_id = ?", *filters.SubjectID)
	}
	if filters.Level != "" {
		query = query.Where("level = ?", filters.Level)
	}

	if err := query.Order("created_at, id").Find(&questions).Error; err != nil {
		return nil, translateError("list questions", err)
	}
	return questions, nil
}

// Update обновляет переданные поля вопроса
func (r *QuestionRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*entity.Question, error) {
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&entity.Question{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, translateError("update question", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete удаляет вопрос; варианты ответов удаляются каскадом
func (r *QuestionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Question{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete question", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
