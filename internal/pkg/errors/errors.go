package errors

import (
	"errors"
	"fmt"
)

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthenticated используется, когда токен сессии не передан вовсе.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidCredentials возвращается при неудачном входе.
	// Неизвестный email и неверный пароль намеренно неразличимы.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidSession возвращается для неизвестной, отозванной или истекшей сессии.
	ErrInvalidSession = errors.New("invalid or expired session")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется при нарушении уникальности (email, имя дисциплины).
	ErrConflict = errors.New("resource state conflict")

	// ErrStore оборачивает любые неожиданные ошибки хранилища.
	ErrStore = errors.New("store error")
)

// FieldError описывает ошибку валидации конкретного поля
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap позволяет проверять FieldError через errors.Is(err, ErrValidation)
func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// NewFieldError создает ошибку валидации для поля
func NewFieldError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// Store оборачивает ошибку хранилища, сохраняя исходную причину в цепочке
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}
