package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuestionOptionRepository определяет методы для работы с вариантами ответов
type QuestionOptionRepository interface {
	// WithQuestionLock выполняет fn в одной транзакции, предварительно заблокировав
	// строку вопроса. Конкурентные вызовы для одного вопроса сериализуются.
	// Возвращает ErrNotFound, если вопроса нет. Любая ошибка fn откатывает транзакцию.
	WithQuestionLock(ctx context.Context, questionID uuid.UUID, fn func(tx QuestionOptionTx) error) error

	// ListByQuestion возвращает варианты вопроса в порядке создания
	ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]entity.QuestionOption, error)

	// ListByQuestionIDs возвращает варианты нескольких вопросов, сгруппированные по ID вопроса
	ListByQuestionIDs(ctx context.Context, questionIDs []uuid.UUID) (map[uuid.UUID][]entity.QuestionOption, error)

	// Delete удаляет вариант, принадлежащий вопросу
	Delete(ctx context.Context, questionID, optionID uuid.UUID) error
}

// QuestionOptionTx операции над вариантами внутри транзакции WithQuestionLock
type QuestionOptionTx interface {
	// GetByID возвращает вариант по ID или ErrNotFound
	GetByID(optionID uuid.UUID) (*entity.QuestionOption, error)

	// ClearCorrect снимает отметку правильности со всех вариантов вопроса,
	// кроме exceptID (если задан). Затрагивает только строки с is_correct = true.
	ClearCorrect(questionID uuid.UUID, exceptID *uuid.UUID) (int64, error)

	// Create вставляет новый вариант и заполняет сгенерированные поля
	Create(option *entity.QuestionOption) error

	// Update обновляет указанные поля варианта и возвращает сохраненную строку
	Update(optionID uuid.UUID, updates map[string]interface{}) (*entity.QuestionOption, error)
}
