package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/khairunnisaa/palmcode-api/internal/validation"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// NotFoundError reports a missing record of Model. It matches ErrNotFound.
type NotFoundError struct {
	Model string
	ID    uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No query results for model [%s] %d", e.Model, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type ValidationError struct {
	Errors validation.Errors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors.Fields(), ", ")
}

func invalid(errs validation.Errors) error {
	if errs.Empty() {
		return nil
	}
	return &ValidationError{Errors: errs}
}

// CreateFailedError wraps a failure after validation passed.
type CreateFailedError struct {
	Err error
}

func (e *CreateFailedError) Error() string {
	return e.Err.Error()
}

func (e *CreateFailedError) Unwrap() error {
	return e.Err
}
