package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestionType тип вопроса
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      QuestionType = "TRUE_FALSE"
	QuestionTypeEssay          QuestionType = "ESSAY"
	QuestionTypeCode           QuestionType = "CODE"
)

// IsValid проверяет, что тип входит в допустимый набор
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeEssay, QuestionTypeCode:
		return true
	}
	return false
}

// QuestionLevel уровень сложности вопроса
type QuestionLevel string

const (
	QuestionLevelEasy   QuestionLevel = "EASY"
	QuestionLevelMedium QuestionLevel = "MEDIUM"
	QuestionLevelHard   QuestionLevel = "HARD"
)

// IsValid проверяет, что уровень входит в допустимый набор
func (l QuestionLevel) IsValid() bool {
	switch l {
	case QuestionLevelEasy, QuestionLevelMedium, QuestionLevelHard:
		return true
	}
	return false
}

// Question представляет вопрос дисциплины
type Question struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectID uuid.UUID     `gorm:"type:uuid;not null;index" json:"subject_id"`
	Statement string        `gorm:"type:text;not null" json:"statement"`
	Type      QuestionType  `gorm:"size:20;not null" json:"type"`
	Answer    *string       `gorm:"type:text" json:"answer"`
	Level     QuestionLevel `gorm:"size:10;not null;index" json:"level"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Subject *Subject `gorm:"constraint:OnDelete:CASCADE" json:"subject,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// BeforeCreate генерирует UUID, если он не был задан заранее
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
