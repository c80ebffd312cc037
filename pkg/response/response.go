package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/resto_pos/pkg/apperr"
	"github.com/Skotchmaster/resto_pos/pkg/logging"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type SuccessBody struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type ErrorBody struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

func Success(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, SuccessBody{
		Status:  StatusSuccess,
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func Error(c echo.Context, code int, message string, details any) error {
	return c.JSON(code, ErrorBody{
		Status:  StatusError,
		Code:    code,
		Message: message,
		Errors:  details,
	})
}

// ErrorHandler renders every error returned by a handler or middleware as an error envelope.
// With debug on, internal faults expose their message and Go type.
func ErrorHandler(debug bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message, details := describe(err, debug)
		if code >= http.StatusInternalServerError {
			logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", code, "error", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = Error(c, code, message, details)
		}
		if writeErr != nil {
			c.Logger().Error(writeErr)
		}
	}
}

func describe(err error, debug bool) (int, string, any) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		code := apperr.StatusCode(appErr)
		if code == http.StatusInternalServerError {
			return internal(err, debug)
		}
		if len(appErr.Details) > 0 {
			return code, appErr.Message, appErr.Details
		}
		return code, appErr.Message, nil
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			return he.Code, "Endpoint not found", nil
		case http.StatusUnauthorized:
			return he.Code, "Unauthenticated", nil
		}
		if he.Code >= http.StatusInternalServerError {
			return internal(err, debug)
		}
		return he.Code, fmt.Sprint(he.Message), nil
	}

	return internal(err, debug)
}

func internal(err error, debug bool) (int, string, any) {
	if debug {
		return http.StatusInternalServerError, err.Error(), map[string]string{
			"exception": fmt.Sprintf("%T", err),
		}
	}
	return http.StatusInternalServerError, "Internal server error", nil
}
