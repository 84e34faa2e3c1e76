package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todo-mongo-service/internal/domain/todo"
)

const testTodoID = "65f1c0ffee0000000000abcd"

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withTodoID(r *http.Request, id string) *http.Request {
	return withChiParams(r, map[string]string{"id": id})
}

func validTodo() *todo.Todo {
	return &todo.Todo{
		ID:          testTodoID,
		Title:       "Buy groceries",
		Description: "Milk, eggs, bread",
		Completed:   false,
	}
}

func rawBody(s string) *strings.Reader {
	return strings.NewReader(s)
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

func requireErrorBody(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	resp := decodeJSON[map[string]string](t, rec)
	if resp["error"] != want {
		t.Errorf("error = %q, want %q", resp["error"], want)
	}
}
