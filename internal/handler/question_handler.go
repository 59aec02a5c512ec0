package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
)

// QuestionHandler обрабатывает запросы к вопросам
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// parseSubjectQuery читает необязательный параметр subject_id
func parseSubjectQuery(c *gin.Context) (*uuid.UUID, error) {
	raw := c.Query("subject_id")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.NewFieldError("subject_id", "must be a valid UUID")
	}
	return &id, nil
}

// Create создает вопрос
// POST /api/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), service.CreateQuestionInput{
		SubjectID: req.SubjectID,
		Statement: req.Statement,
		Type:      req.Type,
		Level:     req.Level,
		Answer:    req.Answer,
	})
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewQuestionResponse(question))
}

// List возвращает вопросы с фильтрами
// GET /api/questions?subject_id=&level=
func (h *QuestionHandler) List(c *gin.Context) {
	subjectID, err := parseSubjectQuery(c)
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}

	questions, err := h.questionService.List(c.Request.Context(), repository.QuestionFilters{
		SubjectID: subjectID,
		Level:     entity.QuestionLevel(c.Query("level")),
	})
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionListResponse(questions))
}

// Get возвращает вопрос по ID
// GET /api/questions/:id
func (h *QuestionHandler) Get(c *gin.Context) {
	question, err := h.questionService.GetByID(c.Request.Context(), c.MustGet("questionID").(uuid.UUID))
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// Update изменяет вопрос
// PUT /api/questions/:id
func (h *QuestionHandler) Update(c *gin.Context) {
	var req dto.UpdateQuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), c.MustGet("questionID").(uuid.UUID), service.UpdateQuestionInput{
		SubjectID: req.SubjectID,
		Statement: req.Statement,
		Type:      req.Type,
		Level:     req.Level,
		Answer:    req.Answer,
	})
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// Delete удаляет вопрос вместе с вариантами
// DELETE /api/questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	if err := h.questionService.Delete(c.Request.Context(), c.MustGet("questionID").(uuid.UUID)); err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	c.Status(http.StatusNoContent)
}
