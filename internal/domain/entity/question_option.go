package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestionOption представляет вариант ответа на вопрос.
// Для одного вопроса правильным может быть не более одного варианта.
type QuestionOption struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	OptionText string    `gorm:"column:option_text;type:text;not null" json:"option_text"`
	IsCorrect  bool      `gorm:"column:is_correct;not null;default:false" json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Question *Question `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (QuestionOption) TableName() string {
	return "question_options"
}

// BeforeCreate генерирует UUID, если он не был задан заранее
func (o *QuestionOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// BelongsTo проверяет принадлежность варианта вопросу
func (o *QuestionOption) BelongsTo(questionID uuid.UUID) bool {
	return o.QuestionID == questionID
}

// CountCorrect возвращает количество вариантов, отмеченных правильными
func CountCorrect(options []QuestionOption) int {
	n := 0
	for _, o := range options {
		if o.IsCorrect {
			n++
		}
	}
	return n
}
