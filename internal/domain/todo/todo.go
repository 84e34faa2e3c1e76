// Package todo defines the todo entity: a titled, described, completable task.
package todo

import (
	"strings"

	"github.com/jsamuelsen11/todo-mongo-service/internal/domain"
)

// Todo is the sole entity managed by the service. ID is assigned by the
// store on creation and never changes afterwards.
type Todo struct {
	ID          string
	Title       string
	Description string
	Completed   bool
}

// Validate checks that every stored field is populated. Completed is a plain
// bool and is always populated once the value exists.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) for the
// first violated field, or nil if all rules pass.
func (t *Todo) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return domain.NewValidationError("title", domain.MsgRequired)
	}
	if strings.TrimSpace(t.Description) == "" {
		return domain.NewValidationError("description", domain.MsgRequired)
	}
	return nil
}

// Patch is a partial update. A nil field means "leave unchanged".
type Patch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

// Apply copies the present fields of p onto t. ID is never touched.
func (p Patch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
