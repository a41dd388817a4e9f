package http

import (
	"errors"
	"net/http"

	applogger "FinDoc/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Messages for transport-level failures.
const (
	MsgNotFound         = "Endpoint not found"
	MsgMethodNotAllowed = "Method not allowed"
	MsgInternal         = "Internal server error"
)

// ErrorResponse writes {"error": message} with status.
func ErrorResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorBody{Error: message})
}

// ValidationErrorResponse writes the first validation message as a 400.
func ValidationErrorResponse(c echo.Context, errs []ValidationError) error {
	msg := "Invalid request"
	if len(errs) > 0 && errs[0].Message != "" {
		msg = errs[0].Message
	}
	return ErrorResponse(c, http.StatusBadRequest, msg)
}

// AppErrorResponse writes application error response.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ErrorResponse(c, appErr.Status, appErr.Message)
	}
	return ErrorResponse(c, http.StatusInternalServerError, MsgInternal)
}

// ErrorHandler maps errors escaping handlers to JSON bodies.
func ErrorHandler(l *applogger.Logger) echo.HTTPErrorHandler {
	if l == nil {
		l = applogger.Nop()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var appErr *AppError
		var he *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			_ = AppErrorResponse(c, appErr)
		case errors.As(err, &he):
			switch he.Code {
			case http.StatusNotFound:
				_ = ErrorResponse(c, http.StatusNotFound, MsgNotFound)
			case http.StatusMethodNotAllowed:
				_ = ErrorResponse(c, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
			case http.StatusInternalServerError:
				_ = ErrorResponse(c, http.StatusInternalServerError, MsgInternal)
			default:
				_ = ErrorResponse(c, he.Code, http.StatusText(he.Code))
			}
		default:
			l.Error("unhandled error",
				applogger.String("path", c.Request().URL.Path),
				applogger.Error(err),
			)
			_ = ErrorResponse(c, http.StatusInternalServerError, MsgInternal)
		}
	}
}
