package app

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todo-mongo-service/internal/domain"
	"github.com/jsamuelsen11/todo-mongo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-mongo-service/mocks"
)

const todoID = "65f1c0ffee0123456789abcd"

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func stringPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func storedTodo() *todo.Todo {
	return &todo.Todo{
		ID:          todoID,
		Title:       "Buy groceries",
		Description: "Milk, eggs, bread",
		Completed:   false,
	}
}

func newService(t *testing.T) (*TodoService, *mocks.MockTodoRepository) {
	t.Helper()
	repo := mocks.NewMockTodoRepository(t)
	return NewTodoService(repo, discardLogger()), repo
}

// --- NewTodoService ---

func TestNewTodoService_NilLogger(t *testing.T) {
	t.Parallel()

	svc := NewTodoService(mocks.NewMockTodoRepository(t), nil)
	if svc.logger == nil {
		t.Fatal("NewTodoService(nil logger) should create a no-op logger, got nil")
	}
}

// --- ListTodos ---

func TestTodoService_ListTodos(t *testing.T) {
	t.Parallel()

	t.Run("returns todos on success", func(t *testing.T) {
		t.Parallel()
		svc, repo := newService(t)

		want := []todo.Todo{*storedTodo(), {ID: "65f1c0ffee0123456789abce", Title: "B", Description: "b"}}
		repo.EXPECT().List(mock.Anything).Return(want, nil)

		got, err := svc.ListTodos(context.Background())
		if err != nil {
			t.Fatalf("ListTodos() error = %v, want nil", err)
		}
		if len(got) != 2 {
			t.Errorf("ListTodos() len = %d, want 2", len(got))
		}
	})

	t.Run("returns empty non-nil slice for empty store", func(t *testing.T) {
		t.Parallel()
		svc, repo := newService(t)

		repo.EXPECT().List(mock.Anything).Return(nil, nil)

		got, err := svc.ListTodos(context.Background())
		if err != nil {
			t.Fatalf("ListTodos() error = %v, want nil", err)
		}
		if got == nil {
			t.Fatal("ListTodos() = nil, want empty slice")
		}
		if len(got) != 0 {
			t.Errorf("ListTodos() len = %d, want 0", len(got))
		}
	})

	t.Run("returns error when store fails", func(t *testing.T) {
		t.Parallel()
		svc, repo := newService(t)

		repo.EXPECT().List(mock.Anything).Return(nil, domain.ErrPersistence)

		_, err := svc.ListTodos(context.Background())
		if !errors.Is(err, domain.ErrPersistence) {
			t.Errorf("ListTodos() error = %v, want ErrPersistence", err)
		}
	})
}

// --- GetTodo ---

func TestTodoService_GetTodo(t *testing.T) {
	t.Parallel()

	t.Run("returns stored todo", func(t *testing.T) {
		t.Parallel()
		svc, repo := newService(t)

		repo.EXPECT().Get(mock.Anything, todoID).Return(storedTodo(), nil)

		got, err := svc.GetTodo(context.Background(), todoID)
		if err != nil {
			t.Fatalf("GetTodo() error = %v, want nil", err)
		}
		if got.ID != todoID {
			t.Errorf("GetTodo().ID = %q, want %q", got.ID, todoID)
		}
	})

	t.Run("propagates not found", func(t *testing.T) {
		t.Parallel()
		svc, repo := newService(t)

		repo.EXPECT().Get(mock.Anything, "missing").Return(nil, domain.ErrNotFound)

		_, err := svc.GetTodo(context.Background(), "missing")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("GetTodo() error = %v, want ErrNotFound", err)
		}
	})
}

// --- CreateTodo ---

func TestTodoService_CreateTodo(t *testing.T) {
	t.Parallel()

	t.Run("stores valid todo", func(t *testing.T) {
		t.Parallel()
		svc, repo := newService(t)

		input := &todo.Todo{Title: "Write docs", Description: "README", Completed: true}
		created := &todo.Todo{ID: todoID, Title: "Write docs", Description: "README", Completed: true}
		repo.EXPECT().Insert(mock.Anything, input).Return(created, nil)

		got, err := svc.CreateTodo(context.Background(), input)
		if err != nil {
			t.Fatalf("CreateTodo() error = %v, want nil", err)
		}
		if got.ID != todoID {
			t.Errorf("CreateTodo().ID = %q, want %q", got.ID, todoID)
		}
		if got.Title != input.Title || got.Description != input.Description || got.Completed != input.Completed {
			t.Errorf("CreateTodo() = %+v, want fields of %+v", got, input)
		}
	})

	invalid := []struct {
		name  string
		input *todo.Todo
		field string
	}{
		{name: "nil todo", input: nil, field: "todo"},
		{name: "blank title", input: &todo.Todo{Title: "  ", Description: "d"}, field: "title"},
		{name: "empty description", input: &todo.Todo{Title: "t"}, field: "description"},
	}
	for _, tt := range invalid {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			t.Parallel()
			svc, _ := newService(t)

			_, err := svc.CreateTodo(context.Background(), tt.input)

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("CreateTodo() error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("ValidationError.Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}

	t.Run("propagates store failure", func(t *testing.T) {
		t.Parallel()
		svc, repo := newService(t)

		repo.EXPECT().Insert(mock.Anything, mock.Anything).Return(nil, domain.ErrPersistence)

		_, err := svc.CreateTodo(context.Background(), &todo.Todo{Title: "t", Description: "d"})
		if !errors.Is(err, domain.ErrPersistence) {
			t.Errorf("CreateTodo() error = %v, want ErrPersistence", err)
		}
	})
}

// --- ReplaceTodo ---

func TestTodoService_ReplaceTodo(t *testing.T) {
	t.Parallel()

	t.Run("replaces with valid todo", func(t *testing.T) {
		t.Parallel()
		svc, repo := newService(t)

		input := &todo.Todo{Title: "New", Description: "Fresh", Completed: true}
		replaced := &todo.Todo{ID: todoID, Title: "New", Description: "Fresh", Completed: true}
		repo.EXPECT().Replace(mock.Anything, todoID, input).Return(replaced, nil)

		got, err := svc.ReplaceTodo(context.Background(), todoID, input)
		if err != nil {
			t.Fatalf("ReplaceTodo() error = %v, want nil", err)
		}
		if *got != *replaced {
			t.Errorf("ReplaceTodo() = %+v, want %+v", got, replaced)
		}
	})

	t.Run("rejects invalid todo without touching the store", func(t *testing.T) {
		t.Parallel()
		svc, _ := newService(t)

		_, err := svc.ReplaceTodo(context.Background(), todoID, &todo.Todo{Title: "only title"})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("ReplaceTodo() error = %v, want ErrValidation", err)
		}
	})

	t.Run("propagates not found", func(t *testing.T) {
		t.Parallel()
		svc, repo := newService(t)

		repo.EXPECT().Replace(mock.Anything, "missing", mock.Anything).Return(nil, domain.ErrNotFound)

		_, err := svc.ReplaceTodo(context.Background(), "missing", &todo.Todo{Title: "t", Description: "d"})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("ReplaceTodo() error = %v, want ErrNotFound", err)
		}
	})
}

// --- UpdateTodo ---

func TestTodoService_UpdateTodo(t *testing.T) {
	t.Parallel()

	t.Run("changes only patched fields", func(t *testing.T) {
		t.Parallel()
		svc, repo := newService(t)

		repo.EXPECT().Get(mock.Anything, todoID).Return(storedTodo(), nil)
		repo.EXPECT().Replace(mock.Anything, todoID, mock.Anything).
			RunAndReturn(func(_ context.Context, id string, td *todo.Todo) (*todo.Todo, error) {
				saved := *td
				saved.ID = id
				return &saved, nil
			})

		got, err := svc.UpdateTodo(context.Background(), todoID, todo.Patch{Title: stringPtr("X")})
		if err != nil {
			t.Fatalf("UpdateTodo() error = %v, want nil", err)
		}

		want := storedTodo()
		want.Title = "X"
		if *got != *want {
			t.Errorf("UpdateTodo() = %+v, want %+v", got, want)
		}
	})

	t.Run("empty patch returns stored todo without writing", func(t *testing.T) {
		t.Parallel()
		svc, repo := newService(t)

		repo.EXPECT().Get(mock.Anything, todoID).Return(storedTodo(), nil)

		got, err := svc.UpdateTodo(context.Background(), todoID, todo.Patch{})
		if err != nil {
			t.Fatalf("UpdateTodo() error = %v, want nil", err)
		}
		if *got != *storedTodo() {
			t.Errorf("UpdateTodo() = %+v, want unchanged %+v", got, storedTodo())
		}
	})

	t.Run("rejects merge that blanks a field", func(t *testing.T) {
		t.Parallel()
		svc, repo := newService(t)

		repo.EXPECT().Get(mock.Anything, todoID).Return(storedTodo(), nil)

		_, err := svc.UpdateTodo(context.Background(), todoID, todo.Patch{Description: stringPtr(" ")})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("UpdateTodo() error = %v, want ErrValidation", err)
		}
	})

	t.Run("propagates not found from read", func(t *testing.T) {
		t.Parallel()
		svc, repo := newService(t)

		repo.EXPECT().Get(mock.Anything, "missing").Return(nil, domain.ErrNotFound)

		_, err := svc.UpdateTodo(context.Background(), "missing", todo.Patch{Completed: boolPtr(true)})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("UpdateTodo() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("propagates not found when deleted between read and write", func(t *testing.T) {
		t.Parallel()
		svc, repo := newService(t)

		repo.EXPECT().Get(mock.Anything, todoID).Return(storedTodo(), nil)
		repo.EXPECT().Replace(mock.Anything, todoID, mock.Anything).Return(nil, domain.ErrNotFound)

		_, err := svc.UpdateTodo(context.Background(), todoID, todo.Patch{Completed: boolPtr(true)})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("UpdateTodo() error = %v, want ErrNotFound", err)
		}
	})
}

// --- DeleteTodo ---

func TestTodoService_DeleteTodo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		repoErr error
	}{
		{name: "deletes existing todo", repoErr: nil},
		{name: "propagates not found", repoErr: domain.ErrNotFound},
		{name: "propagates store failure", repoErr: domain.ErrPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo := newService(t)

			repo.EXPECT().Delete(mock.Anything, todoID).Return(tt.repoErr)

			err := svc.DeleteTodo(context.Background(), todoID)
			if !errors.Is(err, tt.repoErr) {
				t.Errorf("DeleteTodo() error = %v, want %v", err, tt.repoErr)
			}
		})
	}
}
