package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

const uniqueViolationCode = "23505"

// isUniqueViolation проверяет нарушение уникальности для pgconn, lib/pq и
// переведенных GORM ошибок (TranslateError)
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return true
	}
	return false
}

// translateError переводит ошибку GORM в ошибку приложения
func translateError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, op)
	default:
		return apperrors.Store(op, err)
	}
}
