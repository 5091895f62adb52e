package http

import (
	"errors"
	"net/http"

	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed request.
type Error struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// statusOf maps the error taxonomy onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotPermitted):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrPayment):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		return c.JSON(code, Error{Code: code, Message: "Internal server error"})
	}

	body := Error{Code: code, Message: err.Error()}
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		body.Message = errs.ErrValidation.Error()
		for _, v := range validationErr.Violations {
			body.Details = append(body.Details, v.Error())
		}
	}
	return c.JSON(code, body)
}

// badRequest answers input the handlers never saw: unreadable bodies and
// rejected command constructors.
func badRequest(c echo.Context, message string, err error) error {
	body := Error{Code: http.StatusBadRequest, Message: message}
	if err != nil {
		body.Message += ": " + err.Error()
	}
	return c.JSON(http.StatusBadRequest, body)
}

// unreadable answers a body that could not be read, or that was over its limit.
func unreadable(c echo.Context, message string, err error) error {
	if errors.Is(err, errTooLarge) {
		code := http.StatusRequestEntityTooLarge
		return c.JSON(code, Error{Code: code, Message: message + ": " + err.Error()})
	}
	return badRequest(c, message, err)
}
