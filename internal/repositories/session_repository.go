package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
)

// SessionRepositoryInterface - хранилище единственной сессии шлюза.
type SessionRepositoryInterface interface {
	Load(ctx context.Context) (*entities.Session, error)
	Save(ctx context.Context, session entities.Session) error
	Clear(ctx context.Context) error
	// Token реализует integrations.TokenProvider.
	Token(ctx context.Context) (string, error)
}

type SessionRepository struct {
	cache      CacheRepositoryInterface
	jwt        service.JWTService
	key        string
	defaultTTL time.Duration
	logger     *zap.Logger
}

func NewSessionRepository(cache CacheRepositoryInterface, jwt service.JWTService, key string, defaultTTL time.Duration, logger *zap.Logger) *SessionRepository {
	return &SessionRepository{
		cache:      cache,
		jwt:        jwt,
		key:        key,
		defaultTTL: defaultTTL,
		logger:     logger,
	}
}

// storedSession - запись как она лежит в хранилище. Роль читается строкой,
// чтобы принять и старые значения admin/technician/employee.
type storedSession struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	CompanyID *uint64 `json:"companyId,omitempty"`
	Token     string  `json:"token,omitempty"`
}

// Load читает сессию. Старые роли переводятся и запись пересохраняется,
// повреждённая запись удаляется. Нет сессии - ErrSessionMissing.
func (r *SessionRepository) Load(ctx context.Context) (*entities.Session, error) {
	raw, err := r.cache.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrSessionMissing
		}
		return nil, fmt.Errorf("чтение сессии: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || stored.ID == 0 {
		r.logger.Warn("Повреждённая запись сессии удалена", zap.String("key", r.key), zap.Error(err))
		if delErr := r.cache.Del(ctx, r.key); delErr != nil {
			r.logger.Error("Не удалось удалить запись сессии", zap.Error(delErr))
		}
		return nil, apperrors.ErrSessionMissing
	}

	session := &entities.Session{
		User: entities.User{
			ID:        stored.ID,
			Name:      stored.Name,
			Email:     stored.Email,
			Role:      entities.RoleFromBackend(stored.Role),
			CompanyID: stored.CompanyID,
		},
		Token: stored.Token,
	}

	if string(session.Role) != stored.Role {
		r.logger.Info("Роль в сессии переведена в актуальное имя",
			zap.String("from", stored.Role),
			zap.String("to", string(session.Role)),
		)
		if err := r.resave(ctx, *session); err != nil {
			r.logger.Error("Не удалось пересохранить сессию", zap.Error(err))
		}
	}
	return session, nil
}

// Save сохраняет сессию с TTL по exp токена. Просроченный токен не сохраняется.
func (r *SessionRepository) Save(ctx context.Context, session entities.Session) error {
	ttl := r.defaultTTL
	if session.Token != "" {
		tokenTTL, err := r.jwt.TTL(session.Token, r.defaultTTL)
		switch {
		case errors.Is(err, apperrors.ErrTokenExpired):
			return err
		case err != nil:
			r.logger.Warn("Токен не разобран, используется TTL по умолчанию", zap.Error(err))
		default:
			ttl = tokenTTL
		}
	}
	return r.write(ctx, session, ttl)
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	return r.cache.Del(ctx, r.key)
}

func (r *SessionRepository) Token(ctx context.Context) (string, error) {
	session, err := r.Load(ctx)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

// resave сохраняет запись, не продлевая её жизнь.
func (r *SessionRepository) resave(ctx context.Context, session entities.Session) error {
	ttl, err := r.cache.TTL(ctx, r.key)
	if err != nil || ttl <= 0 {
		ttl = r.defaultTTL
	}
	return r.write(ctx, session, ttl)
}

func (r *SessionRepository) write(ctx context.Context, session entities.Session, ttl time.Duration) error {
	payload, err := json.Marshal(storedSession{
		ID:        session.ID,
		Name:      session.Name,
		Email:     session.Email,
		Role:      string(session.Role),
		CompanyID: session.CompanyID,
		Token:     session.Token,
	})
	if err != nil {
		return fmt.Errorf("сериализация сессии: %w", err)
	}
	if err := r.cache.Set(ctx, r.key, payload, ttl); err != nil {
		return fmt.Errorf("запись сессии: %w", err)
	}
	return nil
}
