package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/service"
)

// OptionHandler обрабатывает запросы к вариантам ответов вопроса
type OptionHandler struct {
	optionService *service.OptionService
}

// NewOptionHandler создает новый обработчик вариантов ответов
func NewOptionHandler(optionService *service.OptionService) *OptionHandler {
	return &OptionHandler{optionService: optionService}
}

// Create добавляет вариант ответа
// POST /api/questions/:id/options
func (h *OptionHandler) Create(c *gin.Context) {
	var req dto.OptionRequest
	if !bindJSON(c, &req) {
		return
	}

	option, err := h.optionService.SetOption(c.Request.Context(), service.SetOptionInput{
		QuestionID: c.MustGet("questionID").(uuid.UUID),
		Text:       req.OptionText,
		IsCorrect:  req.IsCorrect,
	})
	if err != nil {
		handleError(c, "OptionHandler", err)
		return
	}
	c.JSON(http.StatusCreated, option)
}

// List возвращает варианты вопроса в порядке создания
// GET /api/questions/:id/options
func (h *OptionHandler) List(c *gin.Context) {
	options, err := h.optionService.List(c.Request.Context(), c.MustGet("questionID").(uuid.UUID))
	if err != nil {
		handleError(c, "OptionHandler", err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// Update изменяет текст и/или правильность варианта
// PUT /api/questions/:id/options/:optionId
func (h *OptionHandler) Update(c *gin.Context) {
	var req dto.OptionRequest
	if !bindJSON(c, &req) {
		return
	}

	optionID := c.MustGet("optionID").(uuid.UUID)
	option, err := h.optionService.SetOption(c.Request.Context(), service.SetOptionInput{
		QuestionID: c.MustGet("questionID").(uuid.UUID),
		OptionID:   &optionID,
		Text:       req.OptionText,
		IsCorrect:  req.IsCorrect,
	})
	if err != nil {
		handleError(c, "OptionHandler", err)
		return
	}
	c.JSON(http.StatusOK, option)
}

// Delete удаляет вариант ответа
// DELETE /api/questions/:id/options/:optionId
func (h *OptionHandler) Delete(c *gin.Context) {
	err := h.optionService.Delete(c.Request.Context(), c.MustGet("questionID").(uuid.UUID), c.MustGet("optionID").(uuid.UUID))
	if err != nil {
		handleError(c, "OptionHandler", err)
		return
	}
	c.Status(http.StatusNoContent)
}
