package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "report-system/pkg/errors"
)

type Response[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Body    T      `json:"body,omitempty"`
}

type ListBody[T any] struct {
	List []T `json:"list"`
}

// SuccessList: список без пагинации (справочники, перечень отчётов)
func SuccessList[T any](c echo.Context, message string, list []T) error {
	if list == nil {
		list = make([]T, 0)
	}
	return c.JSON(http.StatusOK, Response[ListBody[T]]{
		Status:  true,
		Message: message,
		Body:    ListBody[T]{List: list},
	})
}

// ErrorResponse пишет ошибку в формате API. Технические детали только в лог.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, Response[any]{
			Status:  false,
			Message: "Ошибка валидации: " + strings.Join(msgs, "; "),
		})
	}

	code := apperrors.StatusCode(err)
	msg := err.Error()

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		code = echoErr.Code
		msg = fmt.Sprint(echoErr.Message)
	}

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		msg = httpErr.Message
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
	}

	if code >= http.StatusInternalServerError {
		if httpErr == nil {
			logger.Error("Unexpected Error", zap.Error(err))
		}
		msg = apperrors.ErrInternal.Error()
	}

	return c.JSON(code, Response[any]{
		Status:  false,
		Message: msg,
	})
}
