package domain

import (
	"errors"
	"fmt"
)

// Domain errors returned by the service and repository implementations.
// Transport layers map them with errors.Is.

var (
	// ErrValidation is the parent of every input validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict indicates the resource already exists.
	ErrConflict = errors.New("resource already exists")
)

// Validation errors. Each wraps ErrValidation.
var (
	ErrIDRequired          = fmt.Errorf("%w: id is required", ErrValidation)
	ErrTitleRequired       = fmt.Errorf("%w: title is required", ErrValidation)
	ErrTitleTooLong        = fmt.Errorf("%w: title must be 255 characters or less", ErrValidation)
	ErrEmptyPatch          = fmt.Errorf("%w: no changes", ErrValidation)
	ErrUnknownField        = fmt.Errorf("%w: unknown field", ErrValidation)
	ErrInvalidPriority     = fmt.Errorf("%w: invalid priority", ErrValidation)
	ErrInvalidStatus       = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrInvalidProgress     = fmt.Errorf("%w: progress must be between 0 and 100", ErrValidation)
	ErrInvalidDeadline     = fmt.Errorf("%w: deadline must be a YYYY-MM-DD date", ErrValidation)
	ErrCategoryRequired    = fmt.Errorf("%w: category must not be null", ErrValidation)
	ErrCategoryKeyRequired = fmt.Errorf("%w: category key is required", ErrValidation)
)

var (
	// ErrTaskNotFound indicates no task row matched the given id.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrCategoryExists indicates a category with the same key (case-insensitive) exists.
	ErrCategoryExists = fmt.Errorf("%w: category", ErrConflict)

	// ErrDuplicateID indicates a task with the same id already exists.
	// It does not wrap ErrConflict; callers treat it as a store failure.
	ErrDuplicateID = errors.New("duplicate task id")
)
