package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// QuestionOptionRepo реализует repository.QuestionOptionRepository
type QuestionOptionRepo struct {
	db *gorm.DB
}

// NewQuestionOptionRepo создает новый репозиторий вариантов ответов
func NewQuestionOptionRepo(db *gorm.DB) *QuestionOptionRepo {
	return &QuestionOptionRepo{db: db}
}

// WithQuestionLock открывает транзакцию, блокирует строку вопроса (SELECT ... FOR UPDATE)
// и выполняет fn. Пока транзакция не завершена, другие писатели того же вопроса ждут.
func (r *QuestionOptionRepo) WithQuestionLock(ctx context.Context, questionID uuid.UUID, fn func(tx repository.QuestionOptionTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question entity.Question
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&question, "id = ?", questionID).Error
		if err != nil {
			return translateError("lock question", err)
		}
		return fn(&questionOptionTx{tx: tx})
	})
}

// ListByQuestion возвращает варианты вопроса в порядке создания
func (r *QuestionOptionRepo) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]entity.QuestionOption, error) {
	var options []entity.QuestionOption
	err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("created_at, id").
		Find(&options).Error
	if err != nil {
		return nil, translateError("list options", err)
	}
	return options, nil
}

// ListByQuestionIDs загружает варианты сразу для нескольких вопросов одним запросом
func (r *QuestionOptionRepo) ListByQuestionIDs(ctx context.Context, questionIDs []uuid.UUID) (map[uuid.UUID][]entity.QuestionOption, error) {
	result := make(map[uuid.UUID][]entity.QuestionOption, len(questionIDs))
	if len(questionIDs) == 0 {
		return result, nil
	}

	var options []entity.QuestionOption
	err := r.db.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Order("created_at, id").
		Find(&options).Error
	if err != nil {
		return nil, translateError("list options by questions", err)
	}

	for _, o := range options {
		result[o.QuestionID] = append(result[o.QuestionID], o)
	}
	return result, nil
}

// Delete удаляет вариант, только если он принадлежит указанному вопросу
func (r *QuestionOptionRepo) Delete(ctx context.Context, questionID, optionID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND question_id = ?", optionID, questionID).
		Delete(&entity.QuestionOption{})
	if result.Error != nil {
		return translateError("delete option", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// questionOptionTx выполняет операции внутри транзакции WithQuestionLock.
// Все запросы должны идти через tx, иначе они окажутся вне транзакции.
type questionOptionTx struct {
	tx *gorm.DB
}

func (t *questionOptionTx) GetByID(optionID uuid.UUID) (*entity.QuestionOption, error) {
	var option entity.QuestionOption
	if err := t.tx.First(&option, "id = ?", optionID).Error; err != nil {
		return nil, translateError("get option by id", err)
	}
	return &option, nil
}

func (t *questionOptionTx) ClearCorrect(questionID uuid.UUID, exceptID *uuid.UUID) (int64, error) {
	query := t.tx.Model(&entity.QuestionOption{}).
		Where("question_id = ? AND is_correct = ?", questionID, true)
	if exceptID != nil {
		query = query.Where("id <> ?", *exceptID)
	}

	result := query.Updates(map[string]interface{}{
		"is_correct": false,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return 0, translateError("clear correct options", result.Error)
	}
	return result.RowsAffected, nil
}

func (t *questionOptionTx) Create(option *entity.QuestionOption) error {
	return translateError("create option", t.tx.Omit("Question").Create(option).Error)
}

func (t *questionOptionTx) Update(optionID uuid.UUID, updates map[string]interface{}) (*entity.QuestionOption, error) {
	updates["updated_at"] = time.Now().UTC()

	result := t.tx.Model(&entity.QuestionOption{}).Where("id = ?", optionID).Updates(updates)
	if result.Error != nil {
		return nil, translateError("update option", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return t.GetByID(optionID)
}
