package mongodb_test

import (
	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/todo-mongo-service/internal/adapters/store/mongodb"
)

// The container disconnects the pool on teardown only if Client satisfies
// do's shutdown hook.
var _ do.ShutdownerWithContextAndError = (*mongodb.Client)(nil)
