// Package auth содержит логику бизнес-уровня для регистрации,
// входа и сессионной аутентификации пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/daily-practice/internal/lib/password"
	"github.com/magabrotheeeer/daily-practice/internal/lib/token"
	"github.com/magabrotheeeer/daily-practice/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrSessionRevoked возвращается для отозванной или истёкшей сессии.
var ErrSessionRevoked = errors.New("session revoked")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UUID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByUUID возвращает пользователя по UUID или ошибку, если не найден.
	GetUserByUUID(ctx context.Context, userUID string) (*models.User, error)
}

// SessionStore описывает реестр активных сессий.
type SessionStore interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Session — запись активной сессии в реестре.
type Session struct {
	Username string `json:"username"`
	UserUID  string `json:"user_uid"`
}

// AuthService отвечает за регистрацию, вход, выход и проверку сессий.
type AuthService struct {
	users      UserRepository
	sessions   SessionStore
	tokenMaker token.Maker
	sessionTTL time.Duration
	trialDays  int
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionStore, tokenMaker token.Maker,
	sessionTTL time.Duration, trialDays int) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		tokenMaker: tokenMaker,
		sessionTTL: sessionTTL,
		trialDays:  trialDays,
	}
}

// Register создает нового пользователя с хэшированием пароля, дефолтной ролью
// "user" и пробным периодом, который начинается сразу.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	trialEndDate := time.Now().UTC().AddDate(0, 0, s.trialDays)
	user := models.User{
		Email:              email,
		Username:           username,
		PasswordHash:       hashed,
		Role:               "user", // дефолтная роль при регистрации
		TrialEndDate:       &trialEndDate,
		SubscriptionStatus: models.SubscriptionTrial,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя, регистрирует сессию в реестре
// и возвращает подписанный сессионный токен для cookie.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	session := Session{Username: user.Username, UserUID: user.UUID}
	if err := s.sessions.Set(sessionKey(sessionID), session, s.sessionTTL); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return s.tokenMaker.GenerateToken(user.Username, user.UUID, sessionID)
}

// Logout отзывает сессию: токен в cookie перестаёт приниматься,
// даже если его подпись и срок ещё действительны.
func (s *AuthService) Logout(_ context.Context, sessionID string) error {
	return s.sessions.Invalidate(sessionKey(sessionID))
}

// ValidateSession проверяет подпись токена и наличие сессии в реестре.
func (s *AuthService) ValidateSession(_ context.Context, tokenStr string) (*token.SessionClaims, error) {
	claims, err := s.tokenMaker.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}

	var session Session
	found, err := s.sessions.Get(sessionKey(claims.SessionID), &session)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// CurrentUser возвращает пользователя по его UUID.
func (s *AuthService) CurrentUser(ctx context.Context, userUID string) (*models.User, error) {
	return s.users.GetUserByUUID(ctx, userUID)
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
