package http

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error kinds clients can switch on.
const (
	KindUnauthenticated    = "unauthenticated"
	KindValidation         = "validation_error"
	KindForbidden          = "forbidden"
	KindNotFound           = "not_found"
	KindInvalidTransition  = "invalid_transition"
	KindPreconditionFailed = "precondition_failed"
	KindConflict           = "conflict"
	KindInternal           = "internal"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// classify maps an error returned by a handler to its status and kind.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ports.ErrUnauthenticated):
		return http.StatusUnauthorized, KindUnauthenticated
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, KindForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, KindNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict, KindInvalidTransition
	case errors.Is(err, errs.ErrPreconditionFailed):
		return http.StatusPreconditionFailed, KindPreconditionFailed
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict, KindConflict
	case errs.IsValidationError(err):
		return http.StatusBadRequest, KindValidation
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, kindForStatus(httpErr.Code)
	}
	return http.StatusInternalServerError, KindInternal
}

func kindForStatus(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return KindUnauthenticated
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return KindValidation
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return KindNotFound
	default:
		return KindInternal
	}
}

// NewErrorHandler renders errors as Error bodies. Internal failures are logged
// and their details withheld from the client.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http_error_handler")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, kind := classify(err)
		message := err.Error()

		var httpErr *echo.HTTPError
		switch {
		case code >= http.StatusInternalServerError:
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err)
			message = http.StatusText(code)
		case errors.As(err, &httpErr):
			if text, ok := httpErr.Message.(string); ok {
				message = text
			}
		}

		body := Error{Code: code, Kind: kind, Message: message}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
		}
	}
}
