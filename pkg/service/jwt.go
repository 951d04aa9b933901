package service

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"gearguard/pkg/errors"
)

// RemoteClaims - полезная нагрузка токена, который выдаёт удалённый API.
type RemoteClaims struct {
	UserID uint64 `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService только читает токен. Подпись проверяет удалённый API,
// секрета у шлюза нет.
type JWTService interface {
	Inspect(tokenString string) (*RemoteClaims, error)
	// TTL - сколько осталось жить токену. fallback - если exp не указан.
	TTL(tokenString string, fallback time.Duration) (time.Duration, error)
}

type jwtService struct {
	parser *jwt.Parser
	now    func() time.Time
}

func NewJWTService() JWTService {
	return &jwtService{parser: jwt.NewParser(), now: time.Now}
}

func (s *jwtService) Inspect(tokenString string) (*RemoteClaims, error) {
	claims := &RemoteClaims{}
	if _, _, err := s.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.ErrInvalidToken
	}

	if claims.ExpiresAt != nil && !claims.ExpiresAt.Time.After(s.now()) {
		return claims, errors.ErrTokenExpired
	}
	return claims, nil
}

func (s *jwtService) TTL(tokenString string, fallback time.Duration) (time.Duration, error) {
	claims, err := s.Inspect(tokenString)
	if err != nil {
		return 0, err
	}
	if claims.ExpiresAt == nil {
		return fallback, nil
	}
	return claims.ExpiresAt.Time.Sub(s.now()), nil
}
