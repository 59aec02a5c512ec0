package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// CreateQuestionInput данные для создания вопроса
type CreateQuestionInput struct {
	SubjectID uuid.UUID
	Statement string
	Type      entity.QuestionType
	Level     entity.QuestionLevel
	Answer    *string
}

// UpdateQuestionInput изменяемые поля вопроса; nil означает "не менять"
type UpdateQuestionInput struct {
	SubjectID *uuid.UUID
	Statement *string
	Type      *entity.QuestionType
	Level     *entity.QuestionLevel
	Answer    *string
}

// QuestionWithOptions вопрос вместе с вариантами ответов (для экспорта)
type QuestionWithOptions struct {
	Question entity.Question
	Options  []entity.QuestionOption
}

// QuestionService предоставляет методы для работы с вопросами
type QuestionService struct {
	questionRepo repository.QuestionRepository
	subjectRepo  repository.SubjectRepository
	optionRepo   repository.QuestionOptionRepository
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	subjectRepo repository.SubjectRepository,
	optionRepo repository.QuestionOptionRepository,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		subjectRepo:  subjectRepo,
		optionRepo:   optionRepo,
	}
}

func validateStatement(statement string) error {
	if strings.TrimSpace(statement) == "" {
		return apperrors.NewFieldError("statement", "is required")
	}
	return nil
}

func validateType(t entity.QuestionType) error {
	if !t.IsValid() {
		return apperrors.NewFieldError("type", "must be one of MULTIPLE_CHOICE, TRUE_FALSE, ESSAY, CODE")
	}
	return nil
}

func validateLevel(l entity.QuestionLevel) error {
	if !l.IsValid() {
		return apperrors.NewFieldError("level", "must be one of EASY, MEDIUM, HARD")
	}
	return nil
}

// ensureSubject проверяет, что дисциплина существует
func (s *QuestionService) ensureSubject(ctx context.Context, subjectID uuid.UUID) error {
	if _, err := s.subjectRepo.GetByID(ctx, subjectID); err != nil {
		return replaceNotFound(err, ErrSubjectNotFound)
	}
	return nil
}

// Create создает вопрос в существующей дисциплине
func (s *QuestionService) Create(ctx context.Context, in CreateQuestionInput) (*entity.Question, error) {
	if err := validateStatement(in.Statement); err != nil {
		return nil, err
	}
	if err := validateType(in.Type); err != nil {
		return nil, err
	}
	if err := validateLevel(in.Level); err != nil {
		return nil, err
	}
	if err := s.ensureSubject(ctx, in.SubjectID); err != nil {
		return nil, err
	}

	question := &entity.Question{
		SubjectID: in.SubjectID,
		Statement: in.Statement,
		Type:      in.Type,
		Level:     in.Level,
		Answer:    in.Answer,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	// Перечитываем, чтобы вернуть вопрос вместе с дисциплиной
	return s.GetByID(ctx, question.ID)
}

// GetByID возвращает вопрос с дисциплиной
func (s *QuestionService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, replaceNotFound(err, ErrQuestionNotFound)
	}
	return question, nil
}

// List возвращает вопросы, отфильтрованные по дисциплине и уровню
func (s *QuestionService) List(ctx context.Context, filters repository.QuestionFilters) ([]entity.Question, error) {
	if filters.Level != "" {
		if err := validateLevel(filters.Level); err != nil {
			return nil, err
		}
	}
	return s.questionRepo.List(ctx, filters)
}

// Update изменяет поля вопроса. Нужно передать хотя бы одно поле.
func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, in UpdateQuestionInput) (*entity.Question, error) {
	updates := make(map[string]interface{}, 5)

	if in.Statement != nil {
		if err := validateStatement(*in.Statement); err != nil {
			return nil, err
		}
		updates["statement"] = *in.Statement
	}
	if in.Type != nil {
		if err := validateType(*in.Type); err != nil {
			return nil, err
		}
		updates["type"] = string(*in.Type)
	}
	if in.Level != nil {
		if err := validateLevel(*in.Level); err != nil {
			return nil, err
		}
		updates["level"] = string(*in.Level)
	}
	if in.Answer != nil {
		updates["answer"] = *in.Answer
	}
	if in.SubjectID != nil {
		if err := s.ensureSubject(ctx, *in.SubjectID); err != nil {
			return nil, err
		}
		updates["subject_id"] = *in.SubjectID
	}

	if len(updates) == 0 {
		return nil, apperrors.NewFieldError("question", "at least one field must be provided")
	}

	question, err := s.questionRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, replaceNotFound(err, ErrQuestionNotFound)
	}
	return question, nil
}

// Delete удаляет вопрос вместе с вариантами ответов
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return replaceNotFound(err, ErrQuestionNotFound)
	}
	return nil
}

// Export возвращает вопросы (опционально одной дисциплины) вместе с их вариантами
func (s *QuestionService) Export(ctx context.Context, subjectID *uuid.UUID) ([]QuestionWithOptions, error) {
	if subjectID != nil {
		if err := s.ensureSubject(ctx, *subjectID); err != nil {
			return nil, err
		}
	}

	questions, err := s.questionRepo.List(ctx, repository.QuestionFilters{SubjectID: subjectID})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	options, err := s.optionRepo.ListByQuestionIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]QuestionWithOptions, len(questions))
	for i, q := range questions {
		result[i] = QuestionWithOptions{Question: q, Options: options[q.ID]}
	}
	return result, nil
}
