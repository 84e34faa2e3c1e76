package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jsamuelsen11/todo-mongo-service/internal/domain"
)

// parseID converts a hex identifier to an ObjectID. Identifiers that can
// never name a stored document are reported as not found.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("todo %q: %w", id, domain.ErrNotFound)
	}
	return oid, nil
}

// translateError maps a driver error to a domain sentinel. The operation name
// is kept in the message for logs.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
