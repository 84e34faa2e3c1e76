package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/todo-mongo-service/internal/domain"
	"github.com/jsamuelsen11/todo-mongo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-mongo-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-mongo-service/internal/ports"
)

// Compile-time interface check.
var _ ports.TodoRepository = (*TodoRepository)(nil)

// TodoRepository stores todos as documents in a single collection. Every call
// runs under the configured operation timeout derived from the caller's
// context.
type TodoRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
	tracer  trace.Tracer
}

// NewTodoRepository creates a repository over coll. A zero timeout leaves the
// caller's deadline as the only bound.
func NewTodoRepository(coll *mongo.Collection, timeout time.Duration) *TodoRepository {
	return &TodoRepository{
		coll:    coll,
		timeout: timeout,
		tracer:  otel.Tracer(telemetry.InstrumentationName),
	}
}

// List returns every document in natural order.
func (r *TodoRepository) List(ctx context.Context) (_ []todo.Todo, err error) {
	ctx, done := r.start(ctx, "find")
	defer func() { done(err) }()

	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, translateError("find todos", err)
	}

	var docs []todoDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translateError("decode todos", err)
	}

	todos := make([]todo.Todo, 0, len(docs))
	for _, d := range docs {
		todos = append(todos, d.toDomain())
	}
	return todos, nil
}

// Get returns the todo with the given hex ObjectID.
func (r *TodoRepository) Get(ctx context.Context, id string) (_ *todo.Todo, err error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, done := r.start(ctx, "findOne")
	defer func() { done(err) }()

	var doc todoDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, translateError("find todo "+id, err)
	}

	t := doc.toDomain()
	return &t, nil
}

// Insert stores t as a new document and returns it with the generated ID.
func (r *TodoRepository) Insert(ctx context.Context, t *todo.Todo) (_ *todo.Todo, err error) {
	ctx, done := r.start(ctx, "insert")
	defer func() { done(err) }()

	doc := toDocument(t)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, translateError("insert todo", err)
	}

	created := doc.toDomain()
	return &created, nil
}

// Replace atomically overwrites the document and returns the stored result.
func (r *TodoRepository) Replace(ctx context.Context, id string, t *todo.Todo) (_ *todo.Todo, err error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, done := r.start(ctx, "findAndModify")
	defer func() { done(err) }()

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)

	var doc todoDocument
	err = r.coll.FindOneAndReplace(ctx, bson.D{{Key: "_id", Value: oid}}, toDocument(t), opts).Decode(&doc)
	if err != nil {
		return nil, translateError("replace todo "+id, err)
	}

	replaced := doc.toDomain()
	return &replaced, nil
}

// Delete removes the document. A delete that matches nothing is not found.
func (r *TodoRepository) Delete(ctx context.Context, id string) (err error) {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, done := r.start(ctx, "delete")
	defer func() { done(err) }()

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return translateError("delete todo "+id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete todo %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// start applies the operation timeout and opens a client span. The returned
// func ends both and records err on the span.
func (r *TodoRepository) start(ctx context.Context, op string) (context.Context, func(error)) {
	cancel := context.CancelFunc(func() {})
	if r.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
	}

	ctx, span := r.tracer.Start(ctx, "mongodb."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			telemetry.AttrDBSystem.String("mongodb"),
			telemetry.AttrDBOperation.String(op),
			telemetry.AttrDBCollection.String(r.coll.Name()),
		),
	)

	return ctx, func(err error) {
		if err != nil && !isNotFound(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		cancel()
	}
}
