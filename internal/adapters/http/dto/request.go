package dto

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jsamuelsen11/todo-mongo-service/internal/domain"
	"github.com/jsamuelsen11/todo-mongo-service/internal/domain/todo"
)

const msgInvalidJSON = "must be valid JSON"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}

	return v
}

// TodoRequest is the JSON body for creating or replacing a todo. Pointer
// fields distinguish an omitted field from a zero value.
type TodoRequest struct {
	Title       *string `json:"title" validate:"required,notblank"`
	Description *string `json:"description" validate:"required,notblank"`
	Completed   *bool   `json:"completed" validate:"required"`
}

// Validate checks content rules that the structural schema cannot express.
// Returns a *domain.ValidationError for the first violation.
func (r *TodoRequest) Validate() error {
	return structErr(validate.Struct(r))
}

// ToDomain converts a validated request into a todo.Todo.
func (r *TodoRequest) ToDomain() *todo.Todo {
	return &todo.Todo{
		Title:       *r.Title,
		Description: *r.Description,
		Completed:   *r.Completed,
	}
}

// PatchTodoRequest is the JSON body for a partial update. A nil field means
// "do not change this field".
type PatchTodoRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,notblank"`
	Description *string `json:"description,omitempty" validate:"omitempty,notblank"`
	Completed   *bool   `json:"completed,omitempty"`
}

// Validate checks content rules on the fields that are present.
func (r *PatchTodoRequest) Validate() error {
	return structErr(validate.Struct(r))
}

// ToDomain converts the request into a todo.Patch.
func (r *PatchTodoRequest) ToDomain() todo.Patch {
	return todo.Patch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
}

// DecodeTodoRequest parses and validates a create or replace body.
func DecodeTodoRequest(body []byte) (*TodoRequest, error) {
	var req TodoRequest
	if err := decode(body, createSchema, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// DecodePatchTodoRequest parses and validates a partial update body.
func DecodePatchTodoRequest(body []byte) (*PatchTodoRequest, error) {
	var req PatchTodoRequest
	if err := decode(body, patchSchema, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// decode checks body against the structural schema, then unmarshals it into dst.
func decode(body []byte, s *jsonschema.Schema, dst any) error {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return domain.NewValidationError("body", msgInvalidJSON)
	}
	if err := checkSchema(s, doc); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.NewValidationError("body", msgInvalidJSON)
	}
	return nil
}

// structErr converts the first validator failure into a domain error.
func structErr(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError("body", err.Error())
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return domain.NewValidationError(fe.Field(), domain.MsgRequired)
	case "notblank":
		return domain.NewValidationError(fe.Field(), domain.MsgMustNotBlank)
	default:
		return domain.NewValidationError(fe.Field(), "failed "+fe.Tag()+" check")
	}
}
