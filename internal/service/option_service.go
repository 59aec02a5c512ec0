package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// SetOptionInput описывает создание (OptionID == nil) или обновление варианта ответа.
// Nil-поля при обновлении остаются без изменений.
type SetOptionInput struct {
	QuestionID uuid.UUID
	OptionID   *uuid.UUID
	Text       *string
	IsCorrect  *bool
}

func (in SetOptionInput) validate() error {
	if in.Text != nil && strings.TrimSpace(*in.Text) == "" {
		return apperrors.NewFieldError("option_text", "must not be empty")
	}
	if in.OptionID == nil && in.Text == nil {
		return apperrors.NewFieldError("option_text", "is required")
	}
	if in.OptionID != nil && in.Text == nil && in.IsCorrect == nil {
		return apperrors.NewFieldError("option", "at least one of option_text, is_correct must be provided")
	}
	return nil
}

func (in SetOptionInput) marksCorrect() bool {
	return in.IsCorrect != nil && *in.IsCorrect
}

// OptionService управляет вариантами ответов и следит за тем,
// чтобы у вопроса был не более чем один правильный вариант
type OptionService struct {
	optionRepo   repository.QuestionOptionRepository
	questionRepo repository.QuestionRepository
}

// NewOptionService создает новый сервис вариантов ответов
func NewOptionService(optionRepo repository.QuestionOptionRepository, questionRepo repository.QuestionRepository) *OptionService {
	return &OptionService{
		optionRepo:   optionRepo,
		questionRepo: questionRepo,
	}
}

// SetOption создает или обновляет вариант ответа в одной транзакции.
// Если вариант отмечается правильным, сначала снимается отметка со всех остальных
// вариантов вопроса, затем записывается целевой вариант. Строка вопроса заблокирована
// до конца транзакции, поэтому из конкурентных вызовов побеждает последний.
func (s *OptionService) SetOption(ctx context.Context, in SetOptionInput) (*entity.QuestionOption, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var result *entity.QuestionOption
	err := s.optionRepo.WithQuestionLock(ctx, in.QuestionID, func(tx repository.QuestionOptionTx) error {
		if in.OptionID != nil {
			existing, err := tx.GetByID(*in.OptionID)
			if err != nil {
				return replaceNotFound(err, ErrOptionNotFound)
			}
			if !existing.BelongsTo(in.QuestionID) {
				return ErrOptionNotFound
			}
		}

		if in.marksCorrect() {
			cleared, err := tx.ClearCorrect(in.QuestionID, in.OptionID)
			if err != nil {
				return err
			}
			if cleared > 0 {
				log.Printf("[OptionService] Снята отметка правильного ответа с %d вариантов вопроса %s", cleared, in.QuestionID)
			}
		}

		if in.OptionID == nil {
			option := &entity.QuestionOption{
				QuestionID: in.QuestionID,
				OptionText: *in.Text,
				IsCorrect:  in.marksCorrect(),
			}
			if err := tx.Create(option); err != nil {
				return err
			}
			result = option
			return nil
		}

		updates := make(map[string]interface{}, 2)
		if in.Text != nil {
			updates["option_text"] = *in.Text
		}
		if in.IsCorrect != nil {
			updates["is_correct"] = *in.IsCorrect
		}
		updated, err := tx.Update(*in.OptionID, updates)
		if err != nil {
			return replaceNotFound(err, ErrOptionNotFound)
		}
		result = updated
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOptionNotFound) {
			return nil, err
		}
		return nil, replaceNotFound(err, ErrQuestionNotFound)
	}
	return result, nil
}

// List возвращает варианты вопроса в порядке создания
func (s *OptionService) List(ctx context.Context, questionID uuid.UUID) ([]entity.QuestionOption, error) {
	if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
		return nil, replaceNotFound(err, ErrQuestionNotFound)
	}
	return s.optionRepo.ListByQuestion(ctx, questionID)
}

// Delete удаляет вариант вопроса. Удаление правильного варианта оставляет
// вопрос без правильного ответа, это допустимое состояние.
func (s *OptionService) Delete(ctx context.Context, questionID, optionID uuid.UUID) error {
	if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
		return replaceNotFound(err, ErrQuestionNotFound)
	}
	if err := s.optionRepo.Delete(ctx, questionID, optionID); err != nil {
		return replaceNotFound(err, ErrOptionNotFound)
	}
	return nil
}
