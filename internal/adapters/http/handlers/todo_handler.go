package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/todo-mongo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-mongo-service/internal/ports"
)

// TodoHandler handles HTTP requests for the todo resource.
type TodoHandler struct {
	svc ports.TodoService
}

// NewTodoHandler creates a new TodoHandler with the given service port.
func NewTodoHandler(svc ports.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// ListTodos handles GET /todos.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.ListTodos(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoListResponse(todos))
}

// CreateTodo handles POST /todos.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody(w, r, dto.DecodeTodoRequest)
	if !ok {
		return
	}

	created, err := h.svc.CreateTodo(r.Context(), req.ToDomain())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToTodoResponse(created))
}

// GetTodo handles GET /todos/{id}.
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.GetTodo(r.Context(), todoID(r))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoResponse(t))
}

// ReplaceTodo handles PUT /todos/{id}.
func (h *TodoHandler) ReplaceTodo(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody(w, r, dto.DecodeTodoRequest)
	if !ok {
		return
	}

	replaced, err := h.svc.ReplaceTodo(r.Context(), todoID(r), req.ToDomain())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoResponse(replaced))
}

// UpdateTodo handles PATCH /todos/{id}.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody(w, r, dto.DecodePatchTodoRequest)
	if !ok {
		return
	}

	updated, err := h.svc.UpdateTodo(r.Context(), todoID(r), req.ToDomain())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoResponse(updated))
}

// DeleteTodo handles DELETE /todos/{id}.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTodo(r.Context(), todoID(r)); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
