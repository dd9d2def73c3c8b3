// Package token реализует выпуск и разбор подписанных сессионных токенов.
//
// Токен кладётся в HttpOnly cookie; помимо подписи каждая сессия
// регистрируется в Redis, так что logout отзывает её до истечения срока.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Maker описывает интерфейс для выпуска и разбора сессионных токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя и идентификатора сессии.
	GenerateToken(username, useruid, sessionID string) (string, error)
	// ParseToken проверяет подпись и возвращает claims токена.
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// SessionClaims описывает данные, хранящиеся в сессионном токене.
type SessionClaims struct {
	Username             string `json:"username"`   // Имя пользователя
	UserUID              string `json:"user_uid"`   // Идентификатор пользователя
	SessionID            string `json:"session_id"` // Идентификатор сессии в Redis
	jwt.RegisteredClaims        // Встроенные стандартные claims (ExpiresAt, IssuedAt и пр.)
}

// MakerImpl реализует Maker на секретном ключе и времени жизни сессии.
type MakerImpl struct {
	secretKey string
	ttl       time.Duration
}

// NewMaker создаёт новый экземпляр MakerImpl.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		ttl:       ttl,
	}
}

// GenerateToken создает токен с заданными username, useruid и sessionID,
// подписывая его секретным ключом. Время жизни определяется полем ttl.
func (m *MakerImpl) GenerateToken(username, useruid, sessionID string) (string, error) {
	claims := SessionClaims{
		Username:  username,
		UserUID:   useruid,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(m.secretKey))
}

// ParseToken парсит токен, проверяет его подпись и срок действия,
// возвращает SessionClaims с данными, если токен корректен.
func (m *MakerImpl) ParseToken(tokenStr string) (*SessionClaims, error) {
	const op = "token.ParseToken"
	t, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := t.Claims.(*SessionClaims)
	if !ok || !t.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
