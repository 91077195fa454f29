package services

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed or missing field in caller input.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ConflictError reports a write that clashes with existing data.
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string { return e.Message }

// StorageError wraps a data store failure. Its message is meant for logs,
// not for clients.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

var (
	ErrUnauthorized = errors.New("invalid username or password")
	ErrForbidden    = errors.New("access denied")
)

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var n NotFoundError
	return errors.As(err, &n)
}
