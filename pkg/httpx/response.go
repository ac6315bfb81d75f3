// Package httpx writes the {success, message, data} envelope shared by every endpoint.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/clockit/clockit-idm/pkg/errors"
)

// Envelope is the body of every response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a successful envelope with status.
func Success(w http.ResponseWriter, r *http.Request, status int, message string, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failed envelope with status.
func Fail(w http.ResponseWriter, r *http.Request, status int, message string, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, Envelope{Success: false, Message: message, Data: data})
}

// Error maps err to its status. Coded errors expose their message and
// details; anything else is logged and answered with an opaque message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := apperrors.As(err)
	if !ok {
		slog.Error("Unhandled error", "err", err, "method", r.Method, "path", r.URL.Path)
		Fail(w, r, http.StatusInternalServerError, "Internal server error.", nil)
		return
	}

	status := e.HTTPStatusCode()
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "err", err, "code", e.Code, "method", r.Method, "path", r.URL.Path)
	}
	if e.Code == apperrors.ErrCodeInternal {
		Fail(w, r, status, "Internal server error.", nil)
		return
	}

	var data interface{}
	if len(e.Details) > 0 {
		data = e.Details
	}
	Fail(w, r, status, e.Message, data)
}

var validate = validator.New()

// Bind decodes a JSON body into v and runs its validate tags.
func Bind(r *http.Request, v interface{}) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return apperrors.ValidationFailed("", "Invalid request body.")
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return apperrors.ValidationFailed("", "Invalid request body.")
	}
	return nil
}

func fieldError(fe validator.FieldError) *apperrors.Error {
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required":
		return apperrors.ValidationFailed(field, field+" is required.")
	case "email":
		return apperrors.ValidationFailed(field, field+" must be a valid email address.")
	case "uuid":
		return apperrors.ValidationFailed(field, field+" must be a valid id.")
	default:
		return apperrors.ValidationFailed(field, field+" is invalid.")
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, c := range s {
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(c + ('a' - 'A'))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
