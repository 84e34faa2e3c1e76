// Package dto provides HTTP request and response data transfer objects for
// the inbound HTTP adapter: schema-checked request bodies, todo records, and
// the {"error": "..."} failure body.
package dto

import (
	"github.com/jsamuelsen11/todo-mongo-service/internal/domain/todo"
)

// TodoResponse is a single todo record in HTTP responses.
type TodoResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// ToTodoResponse converts a domain Todo to an HTTP response DTO.
func ToTodoResponse(t *todo.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
}

// ToTodoListResponse converts todos to a JSON array body. An empty input
// produces an empty array, never null.
func ToTodoListResponse(todos []todo.Todo) []TodoResponse {
	items := make([]TodoResponse, len(todos))
	for i := range todos {
		items[i] = ToTodoResponse(&todos[i])
	}
	return items
}
