package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/service"
)

// SubjectHandler обрабатывает запросы к дисциплинам
type SubjectHandler struct {
	subjectService *service.SubjectService
}

// NewSubjectHandler создает новый обработчик дисциплин
func NewSubjectHandler(subjectService *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

// Create создает дисциплину
// POST /api/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	var req dto.SubjectRequest
	if !bindJSON(c, &req) {
		return
	}

	subject, err := h.subjectService.Create(c.Request.Context(), req.Name)
	if err != nil {
		handleError(c, "SubjectHandler", err)
		return
	}
	c.JSON(http.StatusCreated, subject)
}

// List возвращает все дисциплины
// GET /api/subjects
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.subjectService.List(c.Request.Context())
	if err != nil {
		handleError(c, "SubjectHandler", err)
		return
	}
	c.JSON(http.StatusOK, subjects)
}

// Get возвращает дисциплину по ID
// GET /api/subjects/:id
func (h *SubjectHandler) Get(c *gin.Context) {
	subject, err := h.subjectService.GetByID(c.Request.Context(), c.MustGet("subjectID").(uuid.UUID))
	if err != nil {
		handleError(c, "SubjectHandler", err)
		return
	}
	c.JSON(http.StatusOK, subject)
}

// Update переименовывает дисциплину
// PUT /api/subjects/:id
func (h *SubjectHandler) Update(c *gin.Context) {
	var req dto.UpdateSubjectRequest
	if !bindJSON(c, &req) {
		return
	}

	subject, err := h.subjectService.Update(c.Request.Context(), c.MustGet("subjectID").(uuid.UUID), req.Name)
	if err != nil {
		handleError(c, "SubjectHandler", err)
		return
	}
	c.JSON(http.StatusOK, subject)
}

// Delete удаляет дисциплину
// DELETE /api/subjects/:id
func (h *SubjectHandler) Delete(c *gin.Context) {
	if err := h.subjectService.Delete(c.Request.Context(), c.MustGet("subjectID").(uuid.UUID)); err != nil {
		handleError(c, "SubjectHandler", err)
		return
	}
	c.Status(http.StatusNoContent)
}
