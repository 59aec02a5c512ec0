// Package testutil содержит общие помощники для тестов, работающих с БД.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// NewTestDB создает временную SQLite базу со схемой всех сущностей.
// Используется одно соединение, поэтому транзакции сериализуются так же,
// как при блокировке строки в PostgreSQL.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=1&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Session{},
		&entity.Subject{},
		&entity.Question{},
		&entity.QuestionOption{},
	))
	return db
}

// CreateUser сохраняет пользователя с заданным email и хешем пароля
func CreateUser(t *testing.T, db *gorm.DB, email, passwordHash string) *entity.User {
	t.Helper()
	user := &entity.User{Name: "Test User", Email: email, PasswordHash: passwordHash}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateQuestion сохраняет дисциплину и вопрос с вариантами по умолчанию
func CreateQuestion(t *testing.T, db *gorm.DB) *entity.Question {
	t.Helper()
	subject := &entity.Subject{Name: "subject-" + uuid.NewString()}
	require.NoError(t, db.Create(subject).Error)

	question := &entity.Question{
		SubjectID: subject.ID,
		Statement: "2 + 2 = ?",
		Type:      entity.QuestionTypeMultipleChoice,
		Level:     entity.QuestionLevelEasy,
	}
	require.NoError(t, db.Create(question).Error)
	return question
}

// CreateOption сохраняет вариант ответа вопроса
func CreateOption(t *testing.T, db *gorm.DB, questionID uuid.UUID, text string, correct bool) *entity.QuestionOption {
	t.Helper()
	option := &entity.QuestionOption{QuestionID: questionID, OptionText: text, IsCorrect: correct}
	require.NoError(t, db.Omit("Question").Create(option).Error)
	return option
}
