package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultSessionTTL время жизни сессии, если в конфигурации не задано иное
const DefaultSessionTTL = 7 * 24 * time.Hour

// Session представляет одну аутентифицированную сессию входа.
// ID сессии одновременно является непрозрачным bearer-токеном.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Только для внешнего ключа с каскадным удалением
	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Session) TableName() string {
	return "sessions"
}

// BeforeCreate генерирует UUID, если он не был задан заранее
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// NewSession создает активную сессию пользователя, истекающую через ttl
func NewSession(userID uuid.UUID, now time.Time, ttl time.Duration) *Session {
	return &Session{
		UserID:    userID,
		Active:    true,
		ExpiresAt: now.Add(ttl),
	}
}

// IsUsableAt сообщает, можно ли использовать сессию в момент now.
// Истечение не хранится флагом: оно вычисляется при каждой проверке.
func (s *Session) IsUsableAt(now time.Time) bool {
	return s.Active && s.ExpiresAt.After(now)
}

// Token возвращает непрозрачный токен сессии
func (s *Session) Token() string {
	return s.ID.String()
}
