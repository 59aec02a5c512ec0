package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/pkg/auth"
)

// AuthService выдает, проверяет и отзывает сессии входа
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	hasher      auth.PasswordHasher
	sessionTTL  time.Duration

	// dummyHash сравнивается с паролем для неизвестного email,
	// чтобы время ответа не выдавало существование пользователя
	dummyHash string

	now func() time.Time
}

// NewAuthService создает сервис аутентификации. ttl <= 0 заменяется на entity.DefaultSessionTTL.
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	hasher auth.PasswordHasher,
	sessionTTL time.Duration,
) (*AuthService, error) {
	if userRepo == nil || sessionRepo == nil || hasher == nil {
		return nil, fmt.Errorf("user repository, session repository and password hasher are required for AuthService")
	}
	if sessionTTL <= 0 {
		sessionTTL = entity.DefaultSessionTTL
	}

	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy password hash: %w", err)
	}

	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		sessionTTL:  sessionTTL,
		dummyHash:   dummyHash,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// Issue проверяет учетные данные и создает новую активную сессию.
// Неизвестный email и неверный пароль возвращают одну и ту же ErrInvalidCredentials.
func (s *AuthService) Issue(ctx context.Context, email, password string) (*entity.Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.hasher.Verify(password, s.dummyHash)
		return nil, apperrors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	session := entity.NewSession(user.ID, s.now(), s.sessionTTL)
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		log.Printf("[AuthService] Ошибка создания сессии для пользователя %s: %v", user.ID, err)
		return nil, err
	}
	return session, nil
}

// Authenticate возвращает ID владельца действительной сессии.
// Пустой токен дает ErrUnauthenticated. Неизвестная, отозванная и истекшая сессии
// неразличимы снаружи и дают ErrInvalidSession.
func (s *AuthService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, apperrors.ErrUnauthenticated
	}

	sessionID, err := uuid.Parse(token)
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidSession
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return uuid.Nil, apperrors.ErrInvalidSession
		}
		return uuid.Nil, err
	}

	if !session.IsUsableAt(s.now()) {
		return uuid.Nil, apperrors.ErrInvalidSession
	}
	return session.UserID, nil
}

// Revoke деактивирует сессию. Повторный отзыв не является ошибкой.
func (s *AuthService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.ErrUnauthenticated
	}
	sessionID, err := uuid.Parse(token)
	if err != nil {
		return apperrors.ErrInvalidSession
	}
	return s.sessionRepo.Deactivate(ctx, sessionID)
}

// RevokeAll деактивирует все активные сессии пользователя и возвращает их количество
func (s *AuthService) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.sessionRepo.DeactivateAllForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	log.Printf("[AuthService] Отозвано %d сессий пользователя %s", n, userID)
	return n, nil
}

// ListActive возвращает сессии пользователя, пригодные к использованию прямо сейчас
func (s *AuthService) ListActive(ctx context.Context, userID uuid.UUID) ([]entity.Session, error) {
	return s.sessionRepo.ListActiveForUser(ctx, userID, s.now())
}
