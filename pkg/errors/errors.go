package errors

import (
	"errors"
	"fmt"
	"net/http"

	"report-system/pkg/reporter"
)

var (
	ErrNotFound        = fmt.Errorf("запись не найдена")
	ErrBadRequest      = fmt.Errorf("неверный запрос")
	ErrTooManyRequests = fmt.Errorf("слишком много запросов на выгрузку, попробуйте позже")
	ErrInternal        = fmt.Errorf("внутренняя ошибка сервера")
)

// HttpError - ошибка с HTTP-кодом и сообщением для клиента.
// Err хранит техническую причину и в ответ не попадает.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// StatusCode сопоставляет ошибку с HTTP-кодом. Неизвестные ошибки - 500.
func StatusCode(err error) int {
	var httpErr *HttpError
	var inputErr *InvalidInputError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.As(err, &inputErr),
		errors.Is(err, ErrBadRequest),
		errors.Is(err, reporter.ErrFieldNotDeclared),
		errors.Is(err, reporter.ErrDuplicateField),
		errors.Is(err, reporter.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, reporter.ErrUnknownReport):
		return http.StatusNotFound
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}
