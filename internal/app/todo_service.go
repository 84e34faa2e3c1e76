// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen11/todo-mongo-service/internal/domain"
	"github.com/jsamuelsen11/todo-mongo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-mongo-service/internal/ports"
)

// Compile-time check that TodoService implements ports.TodoService.
var _ ports.TodoService = (*TodoService)(nil)

// TodoService implements ports.TodoService on top of a TodoRepository. It
// validates before every write, merges partial updates, and logs failures.
// It holds no state between calls.
type TodoService struct {
	repo   ports.TodoRepository
	logger *slog.Logger
}

// NewTodoService creates a TodoService. A nil logger discards all output.
func NewTodoService(repo ports.TodoRepository, logger *slog.Logger) *TodoService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TodoService{
		repo:   repo,
		logger: logger,
	}
}

// ListTodos returns every stored todo. An empty store yields an empty,
// non-nil slice.
func (s *TodoService) ListTodos(ctx context.Context) ([]todo.Todo, error) {
	s.logger.InfoContext(ctx, "listing todos")

	todos, err := s.repo.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list todos",
			slog.String("operation", "ListTodos"),
			slog.Any("error", err),
		)
		return nil, err
	}

	if todos == nil {
		todos = []todo.Todo{}
	}
	return todos, nil
}

// GetTodo returns a single todo by ID.
func (s *TodoService) GetTodo(ctx context.Context, id string) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "fetching todo", slog.String("todo_id", id))

	t, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch todo",
			slog.String("operation", "GetTodo"),
			slog.String("todo_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return t, nil
}

// CreateTodo validates and stores a new todo, returning it with the
// store-assigned ID.
func (s *TodoService) CreateTodo(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "creating todo")

	if err := validate(t); err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, t)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create todo",
			slog.String("operation", "CreateTodo"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return created, nil
}

// ReplaceTodo validates t and overwrites every field of the stored todo.
func (s *TodoService) ReplaceTodo(ctx context.Context, id string, t *todo.Todo) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "replacing todo", slog.String("todo_id", id))

	if err := validate(t); err != nil {
		return nil, err
	}

	replaced, err := s.repo.Replace(ctx, id, t)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to replace todo",
			slog.String("operation", "ReplaceTodo"),
			slog.String("todo_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return replaced, nil
}

// UpdateTodo reads the stored todo, applies the present fields of patch,
// re-validates the merged result and saves it. An empty patch returns the
// stored todo unchanged without writing.
func (s *TodoService) UpdateTodo(ctx context.Context, id string, patch todo.Patch) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "updating todo", slog.String("todo_id", id))

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch todo for update",
			slog.String("operation", "UpdateTodo"),
			slog.String("todo_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	if patch.IsEmpty() {
		return current, nil
	}

	patch.Apply(current)
	if err := current.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Replace(ctx, id, current)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update todo",
			slog.String("operation", "UpdateTodo"),
			slog.String("todo_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return updated, nil
}

// DeleteTodo deletes a todo by ID.
func (s *TodoService) DeleteTodo(ctx context.Context, id string) error {
	s.logger.InfoContext(ctx, "deleting todo", slog.String("todo_id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete todo",
			slog.String("operation", "DeleteTodo"),
			slog.String("todo_id", id),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

func validate(t *todo.Todo) error {
	if t == nil {
		return domain.NewValidationError("todo", domain.MsgRequired)
	}
	return t.Validate()
}
