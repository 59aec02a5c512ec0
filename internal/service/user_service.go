package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/pkg/auth"
)

// RegisterInput данные для регистрации пользователя
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput изменяемые поля профиля; nil означает "не менять".
// Смена пароля требует CurrentPassword.
type UpdateUserInput struct {
	Name            *string
	Email           *string
	Password        *string
	CurrentPassword *string
}

// UserService предоставляет методы для работы с пользователями.
// Формат email и длина пароля проверяются тегами binding на уровне запроса.
type UserService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	hasher      auth.PasswordHasher
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, hasher auth.PasswordHasher) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
	}
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewFieldError("name", "is required")
	}
	return nil
}

// Register создает пользователя с хешированным паролем
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := entity.NormalizeEmail(in.Email)
	if err := validateName(in.Name); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, replaceConflict(err, ErrEmailTaken)
	}

	log.Printf("[UserService] Зарегистрирован пользователь %s", user.ID)
	return user, nil
}

// GetByID возвращает пользователя по ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, replaceNotFound(err, ErrUserNotFound)
	}
	return user, nil
}

// List возвращает пользователей постранично
func (s *UserService) List(ctx context.Context, page, pageSize int) ([]entity.User, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20 // Значение по умолчанию
	} else if pageSize > 100 {
		pageSize = 100 // Максимальный лимит
	}
	return s.userRepo.List(ctx, pageSize, (page-1)*pageSize)
}

// Update изменяет профиль пользователя. Нужно передать хотя бы одно поле.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*entity.User, error) {
	updates := make(map[string]interface{}, 3)

	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return nil, err
		}
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		updates["email"] = entity.NormalizeEmail(*in.Email)
	}
	if in.Password != nil {
		if err := s.checkCurrentPassword(ctx, id, in.CurrentPassword); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		updates["hash_password"] = hash
	}

	if len(updates) == 0 {
		return nil, apperrors.NewFieldError("user", "at least one of name, email, password must be provided")
	}

	user, err := s.userRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, replaceConflict(replaceNotFound(err, ErrUserNotFound), ErrEmailTaken)
	}

	// Старый пароль больше не должен открывать доступ: завершаем все сессии
	if in.Password != nil {
		revoked, err := s.sessionRepo.DeactivateAllForUser(ctx, id)
		if err != nil {
			return nil, err
		}
		log.Printf("[UserService] Пароль пользователя %s изменен, завершено сессий: %d", id, revoked)
	}
	return user, nil
}

// checkCurrentPassword сверяет текущий пароль перед сменой.
// Неверный пароль дает ту же ошибку, что и неудачный вход.
func (s *UserService) checkCurrentPassword(ctx context.Context, id uuid.UUID, current *string) error {
	if current == nil || *current == "" {
		return apperrors.NewFieldError("current_password", "is required to change password")
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return replaceNotFound(err, ErrUserNotFound)
	}
	if !s.hasher.Verify(*current, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}

// Delete удаляет пользователя вместе с его сессиями
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return replaceNotFound(err, ErrUserNotFound)
	}
	log.Printf("[UserService] Пользователь %s удален", id)
	return nil
}
