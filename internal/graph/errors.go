package graph

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports that a graph does not exist.
type NotFoundError struct {
	// Name is the graph that was looked up.
	Name string
	// Action is the attempted operation: "load", "update" or "remove".
	Action string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Can't %s graph '%s'. Graph does not exist", e.Action, e.Name)
}

// AlreadyExistsError reports that a graph name is already taken.
type AlreadyExistsError struct {
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("Can't add graph '%s'. Graph already exists", e.Name)
}

// ValidationError lists required fields that were empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// PersistenceError wraps a failure to save the store after a successful
// in-memory change.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save graph configuration: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsAlreadyExists checks if an error is or wraps an AlreadyExistsError.
func IsAlreadyExists(err error) bool {
	var target *AlreadyExistsError
	return errors.As(err, &target)
}

// IsValidation checks if an error is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsPersistence checks if an error is or wraps a PersistenceError.
func IsPersistence(err error) bool {
	var target *PersistenceError
	return errors.As(err, &target)
}

// ErrListUnsupported is returned by Registry.List when the store cannot
// enumerate its sections.
var ErrListUnsupported = errors.New("store does not support listing sections")
