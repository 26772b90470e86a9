// Package jwt реализует генерацию и парсинг JWT токенов для сессий консоли.
//
// Токен несёт email пользователя, роль и идентификатор сессии,
// по которому сервис пользователей находит активную сессию в хранилище.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	Email                string `json:"email"`      // Электронная почта пользователя
	Role                 string `json:"role"`       // Роль: user или admin
	SessionID            string `json:"session_id"` // Идентификатор сессии в хранилище
	jwt.RegisteredClaims        // Стандартные claims (ExpiresAt, IssuedAt и пр.)
}

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	GenerateToken(email, role, sessionID string) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker на основе секретного ключа и времени жизни токена.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker создаёт новый MakerImpl с секретным ключом и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
