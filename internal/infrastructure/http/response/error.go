package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rezkam/taskmate/internal/api"
	"github.com/rezkam/taskmate/internal/domain"
)

// BadRequest sends a 400 Bad Request error.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, "INVALID_REQUEST", message, http.StatusBadRequest)
}

// ValidationError sends a 400 validation error with field details.
func ValidationError(w http.ResponseWriter, field, issue string) {
	writeJSON(w, http.StatusBadRequest, api.ErrorResponse{
		Error: api.ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed",
			Details: []api.ErrorField{
				{Field: field, Issue: issue},
			},
		},
	})
}

// NotFound sends a 404 Not Found error.
func NotFound(w http.ResponseWriter, resource string) {
	Error(w, "NOT_FOUND", resource+" not found", http.StatusNotFound)
}

// Conflict sends a 409 Conflict error.
func Conflict(w http.ResponseWriter, message string) {
	Error(w, "CONFLICT", message, http.StatusConflict)
}

// InternalError sends a 500 with a generic message and logs the real error.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "Internal server error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
	}
	Error(w, "INTERNAL_ERROR", "an internal error occurred", http.StatusInternalServerError)
}

// Error sends a generic error response.
func Error(w http.ResponseWriter, code, message string, statusCode int) {
	writeJSON(w, statusCode, api.ErrorResponse{
		Error: api.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// FromDomainError maps domain errors to HTTP responses.
func FromDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr *api.FieldError

	switch {
	// Validation errors (400)
	case errors.As(err, &fieldErr):
		ValidationError(w, fieldErr.Field, fieldErr.Issue)
	case errors.Is(err, domain.ErrIDRequired):
		ValidationError(w, "id", "required field missing")
	case errors.Is(err, domain.ErrTitleRequired):
		ValidationError(w, "title", "required field missing")
	case errors.Is(err, domain.ErrTitleTooLong):
		ValidationError(w, "title", "must be 255 characters or less")
	case errors.Is(err, domain.ErrInvalidPriority):
		ValidationError(w, "priority", "must be one of High, Medium, Low")
	case errors.Is(err, domain.ErrInvalidStatus):
		ValidationError(w, "status", "must be pending or done")
	case errors.Is(err, domain.ErrInvalidProgress):
		ValidationError(w, "progress", "must be between 0 and 100")
	case errors.Is(err, domain.ErrInvalidDeadline):
		ValidationError(w, "deadline", "must be a YYYY-MM-DD date")
	case errors.Is(err, domain.ErrCategoryRequired):
		ValidationError(w, "category", "must not be null")
	case errors.Is(err, domain.ErrCategoryKeyRequired):
		ValidationError(w, "key", "required field missing")
	case errors.Is(err, domain.ErrEmptyPatch):
		BadRequest(w, "no changes")
	case errors.Is(err, domain.ErrValidation):
		BadRequest(w, err.Error())

	// Not found errors (404)
	case errors.Is(err, domain.ErrTaskNotFound):
		NotFound(w, "task")
	case errors.Is(err, domain.ErrNotFound):
		NotFound(w, "resource")

	// Conflicts (409)
	case errors.Is(err, domain.ErrCategoryExists):
		Conflict(w, "category already exists")

	// Store failures (500); duplicate ids are logged distinctly
	case errors.Is(err, domain.ErrDuplicateID):
		slog.WarnContext(r.Context(), "Duplicate task id", "error", err)
		InternalError(w, r, err)
	default:
		InternalError(w, r, err)
	}
}
