package mongodb

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jsamuelsen11/todo-mongo-service/internal/domain/todo"
)

// todoDocument is the stored shape of a todo.
type todoDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Completed   bool               `bson:"completed"`
}

func toDocument(t *todo.Todo) todoDocument {
	return todoDocument{
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
}

func (d todoDocument) toDomain() todo.Todo {
	return todo.Todo{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
	}
}
