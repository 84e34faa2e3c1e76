package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-mongo-service/internal/domain/todo"
)

// TodoRepository defines the persistence port for todo documents.
// Implemented by the MongoDB adapter; called by the application layer.
// Implementations translate driver failures into domain.ErrPersistence and
// missing or malformed identifiers into domain.ErrNotFound.
type TodoRepository interface {
	// List returns every stored todo in store-defined order.
	List(ctx context.Context) ([]todo.Todo, error)

	// Get returns a single todo by ID.
	// Returns domain.ErrNotFound if the todo does not exist.
	Get(ctx context.Context, id string) (*todo.Todo, error)

	// Insert stores a new todo and returns it with the store-assigned ID.
	// Any ID already set on t is ignored.
	Insert(ctx context.Context, t *todo.Todo) (*todo.Todo, error)

	// Replace atomically overwrites all fields of the todo with the given ID
	// and returns the stored result.
	// Returns domain.ErrNotFound if the todo does not exist.
	Replace(ctx context.Context, id string, t *todo.Todo) (*todo.Todo, error)

	// Delete removes the todo with the given ID.
	// Returns domain.ErrNotFound if the todo does not exist.
	Delete(ctx context.Context, id string) error
}
