package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Токены и сессия
	ErrInvalidToken   = errors.New("недопустимый токен")
	ErrTokenExpired   = errors.New("срок действия токена истёк")
	ErrSessionMissing = errors.New("сессия не найдена")

	// Авторизация
	ErrEmptyAuthHeader    = errors.New("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = errors.New("неверный формат заголовка авторизации")
	ErrInvalidCredentials = errors.New("неверные учётные данные")
	ErrUnauthorized       = errors.New("неавторизован")
	ErrForbidden          = errors.New("доступ запрещён")

	// Общие
	ErrNotFound   = errors.New("запись не найдена")
	ErrBadRequest = errors.New("неверный запрос")
	ErrConflict   = errors.New("конфликт состояния")

	// Удалённый API
	ErrRemoteUnavailable = errors.New("удалённый API недоступен")
)

// HttpError - ошибка, которая знает свой HTTP-код и сообщение для клиента.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}

// RemoteError - ответ удалённого API со статусом, отличным от 2xx.
type RemoteError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("API %s вернул статус %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// Is позволяет проверять 401 через errors.Is(err, ErrUnauthorized).
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
