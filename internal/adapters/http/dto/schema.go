package dto

import (
	_ "embed"
	"errors"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jsamuelsen11/todo-mongo-service/internal/domain"
)

//go:embed schemas/todo.create.json
var createSchemaSource string

//go:embed schemas/todo.patch.json
var patchSchemaSource string

var (
	createSchema = jsonschema.MustCompileString("todo.create.json", createSchemaSource)
	patchSchema  = jsonschema.MustCompileString("todo.patch.json", patchSchemaSource)
)

// fieldOrder ranks instance locations the way the schemas declare their
// properties. Root-level problems (missing or unknown properties, wrong body
// type) rank first.
var fieldOrder = map[string]int{
	"":            0,
	"title":       1,
	"description": 2,
	"completed":   3,
}

func fieldRank(field string) int {
	if rank, ok := fieldOrder[field]; ok {
		return rank
	}
	return len(fieldOrder)
}

// checkSchema validates a decoded JSON document against s. The first leaf
// violation, in property declaration order, becomes a *domain.ValidationError.
func checkSchema(s *jsonschema.Schema, doc any) error {
	err := s.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return domain.NewValidationError("body", err.Error())
	}

	leaves := schemaLeaves(verr, nil)
	sort.SliceStable(leaves, func(i, j int) bool {
		return fieldRank(pointerToField(leaves[i].InstanceLocation)) <
			fieldRank(pointerToField(leaves[j].InstanceLocation))
	})

	first := leaves[0]
	return domain.NewValidationError(pointerToField(first.InstanceLocation), first.Message)
}

func schemaLeaves(e *jsonschema.ValidationError, acc []*jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(e.Causes) == 0 {
		return append(acc, e)
	}
	for _, c := range e.Causes {
		acc = schemaLeaves(c, acc)
	}
	return acc
}

// pointerToField turns a JSON pointer such as "/title" into "title". The
// document root maps to the empty field.
func pointerToField(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	return strings.ReplaceAll(ptr, "/", ".")
}
