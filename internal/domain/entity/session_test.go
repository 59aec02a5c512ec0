package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_ActiveWithTTL(t *testing.T) {
	// Arrange
	userID := uuid.New()
	now := time.Date(2025, 10, 7, 12, 0, 0, 0, time.UTC)

	// Act
	session := NewSession(userID, now, DefaultSessionTTL)

	// Assert
	assert.Equal(t, userID, session.UserID)
	assert.True(t, session.Active, "Новая сессия должна быть активной")
	assert.Equal(t, now.Add(7*24*time.Hour), session.ExpiresAt, "Сессия должна истекать через 7 дней")
}

func TestSession_IsUsableAt(t *testing.T) {
	now := time.Date(2025, 10, 7, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		active    bool
		expiresAt time.Time
		expected  bool
	}{
		{"активна и не истекла", true, now.Add(time.Hour), true},
		{"истекла секунду назад", true, now.Add(-time.Second), false},
		{"истекает ровно сейчас", true, now, false},
		{"отозвана", false, now.Add(time.Hour), false},
		{"отозвана и истекла", false, now.Add(-time.Hour), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			session := &Session{Active: tc.active, ExpiresAt: tc.expiresAt}
			assert.Equal(t, tc.expected, session.IsUsableAt(now))
		})
	}
}

func TestSession_BeforeCreate_AssignsIDOnce(t *testing.T) {
	session := &Session{}
	require.NoError(t, session.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, session.ID)

	assigned := session.ID
	require.NoError(t, session.BeforeCreate(nil))
	assert.Equal(t, assigned, session.ID, "Заданный ID не должен перезаписываться")
	assert.Equal(t, assigned.String(), session.Token())
}

func TestUser_PasswordHashIsNeverSerialized(t *testing.T) {
	user := User{ID: uuid.New(), Name: "Ana", Email: "a@x.com", PasswordHash: "$2a$10$secret"}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "hash_password")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.com "))
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "sessions", Session{}.TableName())
	assert.Equal(t, "subjects", Subject{}.TableName())
	assert.Equal(t, "questions", Question{}.TableName())
	assert.Equal(t, "question_options", QuestionOption{}.TableName())
}
