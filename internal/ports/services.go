package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-mongo-service/internal/domain/todo"
)

// TodoService defines the service port for the todo resource.
// Implemented by the application layer; called by inbound adapters (handlers).
// Each method is one validate -> persist transition with no state kept
// between calls.
type TodoService interface {
	// ListTodos returns all todos. An empty store yields an empty, non-nil slice.
	ListTodos(ctx context.Context) ([]todo.Todo, error)

	// GetTodo returns a single todo by ID.
	// Returns domain.ErrNotFound if the todo does not exist.
	GetTodo(ctx context.Context, id string) (*todo.Todo, error)

	// CreateTodo validates and stores a new todo, returning it with its
	// store-assigned ID.
	// Returns domain.ErrValidation if the todo fails validation.
	CreateTodo(ctx context.Context, t *todo.Todo) (*todo.Todo, error)

	// ReplaceTodo validates t and overwrites every field of the stored todo.
	// Returns domain.ErrValidation or domain.ErrNotFound.
	ReplaceTodo(ctx context.Context, id string, t *todo.Todo) (*todo.Todo, error)

	// UpdateTodo merges the present fields of patch onto the stored todo and
	// saves the result.
	// Returns domain.ErrValidation or domain.ErrNotFound.
	UpdateTodo(ctx context.Context, id string, patch todo.Patch) (*todo.Todo, error)

	// DeleteTodo deletes a todo by ID.
	// Returns domain.ErrNotFound if the todo does not exist.
	DeleteTodo(ctx context.Context, id string) error
}
