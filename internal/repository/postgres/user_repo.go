package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return translateError("create user", r.db.WithContext(ctx).Create(user).Error)
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateError("get user by id", err)
	}
	return &user, nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError("get user by email", err)
	}
	return &user, nil
}

// Update обновляет только переданные поля пользователя
func (r *UserRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*entity.User, error) {
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, translateError("update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete удаляет пользователя (сессии удаляются каскадом в БД)
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.User{}, "id = ?", id)
	if result.Error != nil {
		return translateError("delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List возвращает список пользователей с пагинацией
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).Order("created_at, id").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, translateError("list users", err)
	}
	return users, nil
}
