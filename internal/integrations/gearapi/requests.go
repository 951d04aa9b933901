package gearapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/metrics"
)

// call выполняет запрос к API. route - шаблон пути для метрик и логов.
// authorized == true: запрос несёт bearer-токен сессии, 401 вызывает принудительный выход.
func (p *Provider) call(ctx context.Context, method, endpoint, route string, body, out interface{}, authorized bool) error {
	start := time.Now()
	outcome := "ok"
	defer func() {
		metrics.RecordAPICall(method, route, outcome, time.Since(start))
	}()

	// Шаг 1: ждём слот лимитера
	if err := p.limiter.Wait(ctx); err != nil {
		outcome = "transport"
		return fmt.Errorf("лимит запросов к API: %w", err)
	}

	// Шаг 2: собираем запрос
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			outcome = "error"
			return fmt.Errorf("ошибка сериализации тела для '%s': %w", route, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+endpoint, reader)
	if err != nil {
		outcome = "error"
		return fmt.Errorf("ошибка создания %s-запроса: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	requestID, _ := ctx.Value(contextkeys.RequestIDKey).(string)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)

	if authorized && p.tokens != nil {
		token, err := p.tokens.Token(ctx)
		if err != nil && !errors.Is(err, apperrors.ErrSessionMissing) {
			outcome = "error"
			return fmt.Errorf("не удалось получить токен сессии: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	// Шаг 3: выполняем
	resp, err := p.httpClient.Do(req)
	if err != nil {
		outcome = "transport"
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrRemoteUnavailable, method, route, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		outcome = "transport"
		return fmt.Errorf("ошибка чтения ответа '%s': %w", route, err)
	}

	// Шаг 4: статус
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		remoteErr := &apperrors.RemoteError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, resp.Status),
			Endpoint:   route,
		}
		outcome = "error"
		if resp.StatusCode == http.StatusUnauthorized {
			outcome = "unauthorized"
			if authorized {
				p.logger.Warn("API вернул 401, сессия будет завершена", zap.String("endpoint", route))
				p.unauthorized(ctx)
			}
		}
		return remoteErr
	}

	// Шаг 5: разбираем тело
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		outcome = "error"
		return fmt.Errorf("ошибка парсинга ответа '%s': %w", route, err)
	}
	return nil
}

// errorMessage достаёт поле message из тела ошибки, иначе возвращает статус.
func errorMessage(raw []byte, fallback string) string {
	if gjson.ValidBytes(raw) {
		if msg := gjson.GetBytes(raw, "message"); msg.Exists() && msg.String() != "" {
			return msg.String()
		}
		if msg := gjson.GetBytes(raw, "error"); msg.Exists() && msg.String() != "" {
			return msg.String()
		}
	}
	return fallback
}
