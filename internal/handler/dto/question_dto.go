package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// CreateQuestionRequest тело запроса создания вопроса
type CreateQuestionRequest struct {
	Statement string               `json:"statement" binding:"required"`
	SubjectID uuid.UUID            `json:"subject_id" binding:"required"`
	Type      entity.QuestionType  `json:"type" binding:"required"`
	Level     entity.QuestionLevel `json:"level" binding:"required"`
	Answer    *string              `json:"answer"`
}

// UpdateQuestionRequest тело запроса изменения вопроса; отсутствующие поля не меняются
type UpdateQuestionRequest struct {
	Statement *string               `json:"statement"`
	SubjectID *uuid.UUID            `json:"subject_id"`
	Type      *entity.QuestionType  `json:"type"`
	Level     *entity.QuestionLevel `json:"level"`
	Answer    *string               `json:"answer"`
}

// SubjectSummary краткое описание дисциплины внутри вопроса
type SubjectSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// QuestionResponse вопрос с вложенной дисциплиной
type QuestionResponse struct {
	ID        uuid.UUID            `json:"id"`
	Statement string               `json:"statement"`
	Type      entity.QuestionType  `json:"type"`
	Answer    *string              `json:"answer"`
	Level     entity.QuestionLevel `json:"level"`
	SubjectID uuid.UUID            `json:"subject_id"`
	Subject   *SubjectSummary      `json:"subject,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// NewQuestionResponse преобразует сущность вопроса в ответ
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	resp := QuestionResponse{
		ID:        q.ID,
		Statement: q.Statement,
		Type:      q.Type,
		Answer:    q.Answer,
		Level:     q.Level,
		SubjectID: q.SubjectID,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	if q.Subject != nil {
		resp.Subject = &SubjectSummary{ID: q.Subject.ID, Name: q.Subject.Name}
	}
	return resp
}

// NewQuestionListResponse преобразует список вопросов
func NewQuestionListResponse(questions []entity.Question) []QuestionResponse {
	result := make([]QuestionResponse, len(questions))
	for i := range questions {
		result[i] = NewQuestionResponse(&questions[i])
	}
	return result
}
