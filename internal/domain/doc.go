// Package domain contains types shared across entity sub-packages: the
// sentinel errors every layer classifies with errors.Is, and the
// ValidationError carried from request validation to the HTTP boundary.
// The todo entity itself lives in domain/todo.
package domain
