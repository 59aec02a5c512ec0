package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// SubjectRepo реализует repository.SubjectRepository
type SubjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo создает новый репозиторий дисциплин
func NewSubjectRepo(db *gorm.DB) *SubjectRepo {
	return &SubjectRepo{db: db}
}

// Create создает новую дисциплину
func (r *SubjectRepo) Create(ctx context.Context, subject *entity.Subject) error {
	return translateError("create subject", r.db.WithContext(ctx).Create(subject).Error)
}

// GetByID возвращает дисциплину по ID
func (r *SubjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Subject, error) {
	var subject entity.Subject
	if err := r.db.WithContext(ctx).First(&subject, "id = ?", id).Error; err != nil {
		return nil, translateError("get subject by id", err)
	}
	return &subject, nil
}

// GetByName возвращает дисциплину по имени
func (r *SubjectRepo) GetByName(ctx context.Context, name string) (*entity.Subject, error) {
	var subject entity.Subject
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&subject).Error; err != nil {
		return nil, translateError("get subject by name", err)
	}
	return &subject, nil
}

// List возвращает все дисциплины
func (r *SubjectRepo) List(ctx context.Context) ([]entity.Subject, error) {
	var subjects []entity.Subject
	if err := r.db.WithContext(ctx).Order("name").Find(&subjects).Error; err != nil {
		return nil, translateError("list subjects", err)
	}
	return subjects, nil
}

// Update обновляет переданные поля дисциплины
func (r *SubjectRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*entity.Subject, error) {
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&entity.Subject{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, translateError("update subject", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete удаляет дисциплину; вопросы и их варианты удаляются каскадом
func (r *SubjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Subject{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete subject", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
