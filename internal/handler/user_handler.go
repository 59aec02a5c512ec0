package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/service"
)

// UserHandler обрабатывает запросы, связанные с пользователями
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register регистрирует нового пользователя
// POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(c, "UserHandler", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// List возвращает пользователей постранично
// GET /api/users?page=1&page_size=20
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	users, err := h.userService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		handleError(c, "UserHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserListResponse(users))
}

// GetByID возвращает пользователя по ID
// GET /api/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	h.respondUser(c, c.MustGet("userID").(uuid.UUID))
}

// GetMe возвращает текущего пользователя
// GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	h.respondUser(c, c.MustGet(middleware.ContextUserIDKey).(uuid.UUID))
}

func (h *UserHandler) respondUser(c *gin.Context, id uuid.UUID) {
	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, "UserHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateMe изменяет профиль текущего пользователя
// PUT /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserIDKey).(uuid.UUID)

	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), userID, service.UpdateUserInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		CurrentPassword: req.CurrentPassword,
	})
	if err != nil {
		handleError(c, "UserHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// DeleteMe удаляет текущего пользователя вместе с его сессиями
// DELETE /api/users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserIDKey).(uuid.UUID)

	if err := h.userService.Delete(c.Request.Context(), userID); err != nil {
		handleError(c, "UserHandler", err)
		return
	}

	c.Status(http.StatusNoContent)
}
