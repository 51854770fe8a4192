package domain

import (
	"fmt"
	"slices"
	"time"
)

// Task field names accepted in an update mask.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDeadline    = "deadline"
	FieldCategory    = "category"
	FieldPriority    = "priority"
	FieldStatus      = "status"
	FieldProgress    = "progress"
)

// UpdatableTaskFields lists the mask fields in storage column order.
var UpdatableTaskFields = []string{
	FieldTitle,
	FieldDescription,
	FieldDeadline,
	FieldCategory,
	FieldPriority,
	FieldStatus,
	FieldProgress,
}

// UpdateTaskParams is a partial update of one task.
//
// A field listed in UpdateMask is written even when its pointer is nil;
// nil clears Description and Deadline and is rejected for the others.
// Fields not in the mask are left unchanged.
type UpdateTaskParams struct {
	TaskID     string
	UpdateMask []string

	Title       *string
	Description *string
	Deadline    *string
	Category    *string
	Priority    *Priority
	Status      *Status
	Progress    *int

	// UpdatedAt is stamped by the service, never by callers.
	UpdatedAt time.Time
}

// Has reports whether field is part of the update mask.
func (p UpdateTaskParams) Has(field string) bool {
	return slices.Contains(p.UpdateMask, field)
}

// Validate checks that UpdateMask contains only known fields and that
// fields which cannot be cleared have non-nil values.
func (p UpdateTaskParams) Validate() error {
	if len(p.UpdateMask) == 0 {
		return ErrEmptyPatch
	}

	for _, field := range p.UpdateMask {
		if !slices.Contains(UpdatableTaskFields, field) {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	switch {
	case p.Has(FieldTitle) && p.Title == nil:
		return ErrTitleRequired
	case p.Has(FieldCategory) && p.Category == nil:
		return ErrCategoryRequired
	case p.Has(FieldPriority) && p.Priority == nil:
		return ErrInvalidPriority
	case p.Has(FieldStatus) && p.Status == nil:
		return ErrInvalidStatus
	case p.Has(FieldProgress) && p.Progress == nil:
		return ErrInvalidProgress
	}

	return nil
}

// Apply copies the masked fields onto t. Used by in-memory stores and the
// client board to mirror a successful update locally. Params are expected
// to be validated; nil values of non-clearable fields are skipped.
func (p UpdateTaskParams) Apply(t *Task) {
	for _, field := range p.UpdateMask {
		switch field {
		case FieldTitle:
			if p.Title != nil {
				t.Title = *p.Title
			}
		case FieldDescription:
			t.Description = p.Description
		case FieldDeadline:
			t.Deadline = p.Deadline
		case FieldCategory:
			if p.Category != nil {
				t.Category = *p.Category
			}
		case FieldPriority:
			if p.Priority != nil {
				t.Priority = *p.Priority
			}
		case FieldStatus:
			if p.Status != nil {
				t.Status = *p.Status
			}
		case FieldProgress:
			if p.Progress != nil {
				t.Progress = *p.Progress
			}
		}
	}
	if !p.UpdatedAt.IsZero() {
		t.UpdatedAt = p.UpdatedAt
	}
}
