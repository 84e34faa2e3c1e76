package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/todo-mongo-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-mongo-service/internal/domain"
	"github.com/jsamuelsen11/todo-mongo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-mongo-service/mocks"
)

func TestResponseWriter_DefaultStatus(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	if rw.statusCode != http.StatusOK {
		t.Errorf("default statusCode = %d, want %d", rw.statusCode, http.StatusOK)
	}
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusNotFound)

	if rw.statusCode != http.StatusNotFound {
		t.Errorf("statusCode = %d, want %d", rw.statusCode, http.StatusNotFound)
	}
	if !rw.headerWritten {
		t.Error("headerWritten = false, want true")
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("recorder Code = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestResponseWriter_WriteHeaderOnlyFirstCallTakesEffect(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusNotFound) // should be ignored

	if rw.statusCode != http.StatusCreated {
		t.Errorf("statusCode = %d, want %d (first call)", rw.statusCode, http.StatusCreated)
	}
}

func TestResponseWriter_Write(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	n, err := rw.Write([]byte("hello"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != 5 {
		t.Errorf("Write() = %d, want 5", n)
	}
	if rw.written != 5 {
		t.Errorf("written = %d, want 5", rw.written)
	}
	if !rw.headerWritten {
		t.Error("headerWritten = false after Write, want true")
	}
}

func TestResponseWriter_WriteAccumulatesBytes(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	_, _ = rw.Write([]byte("abc"))
	_, _ = rw.Write([]byte("de"))

	if rw.written != 5 {
		t.Errorf("written = %d, want 5", rw.written)
	}
}

func TestResponseWriter_Unwrap(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	inner := rw.Unwrap()
	if inner != rec {
		t.Error("Unwrap() did not return the underlying writer")
	}
}

func todoRequest(method, id, body string) *http.Request {
	req := httptest.NewRequest(method, "/todos/"+id, strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestResponseWriter_TracksTodoHandlerResponses(t *testing.T) {
	t.Parallel()

	const id = "65f1c0ffee0000000000abcd"

	t.Run("delete has status but no body", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewMockTodoService(t)
		svc.EXPECT().DeleteTodo(mock.Anything, id).Return(nil)

		rec := httptest.NewRecorder()
		rw := newResponseWriter(rec)
		handlers.NewTodoHandler(svc).DeleteTodo(rw, todoRequest(http.MethodDelete, id, ""))

		if rw.statusCode != http.StatusNoContent {
			t.Errorf("statusCode = %d, want %d", rw.statusCode, http.StatusNoContent)
		}
		if !rw.headerWritten {
			t.Error("headerWritten = false, want true")
		}
		if rw.written != 0 {
			t.Errorf("written = %d, want 0", rw.written)
		}
	})

	t.Run("patch counts the encoded record", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewMockTodoService(t)
		svc.EXPECT().UpdateTodo(mock.Anything, id, mock.Anything).Return(&todo.Todo{
			ID:          id,
			Title:       "Buy groceries",
			Description: "Milk",
			Completed:   true,
		}, nil)

		rec := httptest.NewRecorder()
		rw := newResponseWriter(rec)
		handlers.NewTodoHandler(svc).UpdateTodo(rw, todoRequest(http.MethodPatch, id, `{"completed":true}`))

		if rw.statusCode != http.StatusOK {
			t.Errorf("statusCode = %d, want %d", rw.statusCode, http.StatusOK)
		}
		if rw.written != int64(rec.Body.Len()) || rw.written == 0 {
			t.Errorf("written = %d, want %d", rw.written, rec.Body.Len())
		}
	})

	t.Run("not found keeps the error status", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewMockTodoService(t)
		svc.EXPECT().GetTodo(mock.Anything, id).Return(nil, domain.ErrNotFound)

		rec := httptest.NewRecorder()
		rw := newResponseWriter(rec)
		handlers.NewTodoHandler(svc).GetTodo(rw, todoRequest(http.MethodGet, id, ""))

		if rw.statusCode != http.StatusNotFound {
			t.Errorf("statusCode = %d, want %d", rw.statusCode, http.StatusNotFound)
		}
	})
}
