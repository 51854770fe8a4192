package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rezkam/taskmate/internal/domain"
)

// FieldError reports a patch value of the wrong JSON type.
type FieldError struct {
	Field string
	Issue string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Issue)
}

// Unwrap makes FieldError match domain.ErrValidation.
func (e *FieldError) Unwrap() error {
	return domain.ErrValidation
}

// Patch is the body of PUT /tasks/{id}: a JSON object whose keys are the
// fields to change. A key set to null is part of the patch.
type Patch map[string]any

// PatchFromParams encodes the masked fields of params. Fields in the mask
// with nil values are encoded as null.
func PatchFromParams(params domain.UpdateTaskParams) Patch {
	p := make(Patch, len(params.UpdateMask))
	for _, field := range params.UpdateMask {
		switch field {
		case domain.FieldTitle:
			p[field] = params.Title
		case domain.FieldDescription:
			p[field] = params.Description
		case domain.FieldDeadline:
			p[field] = params.Deadline
		case domain.FieldCategory:
			p[field] = params.Category
		case domain.FieldPriority:
			p[field] = params.Priority
		case domain.FieldStatus:
			p[field] = params.Status
		case domain.FieldProgress:
			p[field] = params.Progress
		}
	}
	return p
}

// ParsePatch decodes a PUT body into update params for taskID. Unknown keys
// are ignored. The returned mask follows domain.UpdatableTaskFields order.
func ParsePatch(taskID string, body map[string]json.RawMessage) (domain.UpdateTaskParams, error) {
	params := domain.UpdateTaskParams{TaskID: taskID}

	for _, field := range domain.UpdatableTaskFields {
		raw, ok := body[field]
		if !ok {
			continue
		}
		params.UpdateMask = append(params.UpdateMask, field)
		if isNull(raw) {
			continue
		}

		var err error
		switch field {
		case domain.FieldTitle:
			params.Title, err = decode[string](raw)
		case domain.FieldDescription:
			params.Description, err = decode[string](raw)
		case domain.FieldDeadline:
			params.Deadline, err = decode[string](raw)
		case domain.FieldCategory:
			params.Category, err = decode[string](raw)
		case domain.FieldPriority:
			params.Priority, err = decode[domain.Priority](raw)
		case domain.FieldStatus:
			params.Status, err = decode[domain.Status](raw)
		case domain.FieldProgress:
			params.Progress, err = decode[int](raw)
		}
		if err != nil {
			return domain.UpdateTaskParams{}, &FieldError{Field: field, Issue: "wrong type"}
		}
	}

	return params, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decode[T any](raw json.RawMessage) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
