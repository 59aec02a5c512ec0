package service

import (
	"errors"
	"fmt"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// Ошибки сервисов. Все NotFound оборачивают apperrors.ErrNotFound,
// все конфликты уникальности оборачивают apperrors.ErrConflict.
var (
	ErrUserNotFound     = fmt.Errorf("user %w", apperrors.ErrNotFound)
	ErrSubjectNotFound  = fmt.Errorf("subject %w", apperrors.ErrNotFound)
	ErrQuestionNotFound = fmt.Errorf("question %w", apperrors.ErrNotFound)
	ErrOptionNotFound   = fmt.Errorf("option %w", apperrors.ErrNotFound)

	ErrEmailTaken       = fmt.Errorf("email is already registered: %w", apperrors.ErrConflict)
	ErrSubjectNameTaken = fmt.Errorf("subject name already exists: %w", apperrors.ErrConflict)
)

// replaceNotFound подменяет общий ErrNotFound ошибкой конкретной сущности
func replaceNotFound(err, target error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return target
	}
	return err
}

// replaceConflict подменяет общий ErrConflict ошибкой конкретного ограничения
func replaceConflict(err, target error) error {
	if errors.Is(err, apperrors.ErrConflict) {
		return target
	}
	return err
}
