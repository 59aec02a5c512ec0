package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// RegisterRequest тело запроса регистрации
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=50"`
}

// UpdateUserRequest тело запроса изменения профиля; отсутствующие поля не меняются.
// Для смены пароля нужен current_password.
type UpdateUserRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=150"`
	Email           *string `json:"email" binding:"omitempty,email,max=255"`
	Password        *string `json:"password" binding:"omitempty,min=6,max=50"`
	CurrentPassword *string `json:"current_password"`
}

// UserResponse представление пользователя без хеша пароля
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse преобразует сущность пользователя в ответ
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserListResponse преобразует список пользователей
func NewUserListResponse(users []entity.User) []UserResponse {
	result := make([]UserResponse, len(users))
	for i := range users {
		result[i] = NewUserResponse(&users[i])
	}
	return result
}
