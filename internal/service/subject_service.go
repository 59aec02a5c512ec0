package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// SubjectService предоставляет методы для работы с дисциплинами
type SubjectService struct {
	subjectRepo repository.SubjectRepository
}

// NewSubjectService создает новый сервис дисциплин
func NewSubjectService(subjectRepo repository.SubjectRepository) *SubjectService {
	return &SubjectService{subjectRepo: subjectRepo}
}

func normalizeSubjectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.NewFieldError("name", "is required")
	}
	return name, nil
}

// Create создает дисциплину с уникальным именем
func (s *SubjectService) Create(ctx context.Context, name string) (*entity.Subject, error) {
	name, err := normalizeSubjectName(name)
	if err != nil {
		return nil, err
	}

	subject := &entity.Subject{Name: name}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, replaceConflict(err, ErrSubjectNameTaken)
	}
	return subject, nil
}

// GetByID возвращает дисциплину по ID
func (s *SubjectService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, replaceNotFound(err, ErrSubjectNotFound)
	}
	return subject, nil
}

// List возвращает все дисциплины
func (s *SubjectService) List(ctx context.Context) ([]entity.Subject, error) {
	return s.subjectRepo.List(ctx)
}

// Update переименовывает дисциплину
func (s *SubjectService) Update(ctx context.Context, id uuid.UUID, name *string) (*entity.Subject, error) {
	if name == nil {
		return nil, apperrors.NewFieldError("subject", "at least one field must be provided")
	}
	normalized, err := normalizeSubjectName(*name)
	if err != nil {
		return nil, err
	}

	subject, err := s.subjectRepo.Update(ctx, id, map[string]interface{}{"name": normalized})
	if err != nil {
		return nil, replaceConflict(replaceNotFound(err, ErrSubjectNotFound), ErrSubjectNameTaken)
	}
	return subject, nil
}

// Delete удаляет дисциплину вместе с ее вопросами
func (s *SubjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		return replaceNotFound(err, ErrSubjectNotFound)
	}
	return nil
}
