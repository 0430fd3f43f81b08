package docstate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyKey is returned when a binding is opened without a storage key.
	ErrEmptyKey = errors.New("docstate: storage key must not be empty")
	// ErrNilStore is returned when a binding is opened without a store.
	ErrNilStore = errors.New("docstate: store is required")
	// ErrNilSchema is returned when a binding is opened without a schema.
	ErrNilSchema = errors.New("docstate: schema is required")
	// ErrClosed is returned by Save after the binding has been closed.
	ErrClosed = errors.New("docstate: binding is closed")
)

// FieldError describes one invalid field in a document.
type FieldError struct {
	Field      string
	Constraint string
	Message    string
}

func (e FieldError) Error() string {
	field := e.Field
	if field == "" {
		field = "$"
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", field, e.Message)
	}
	if e.Constraint != "" {
		return fmt.Sprintf("%s: failed constraint %q", field, e.Constraint)
	}
	return fmt.Sprintf("%s: invalid", field)
}

// FieldErrors aggregates every invalid field found during validation.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "docstate: validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, fieldErr := range e {
		parts = append(parts, fieldErr.Error())
	}
	return "docstate: validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the names of every invalid field.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, fieldErr := range e {
		fields = append(fields, fieldErr.Field)
	}
	return fields
}

// ConstraintError captures engine metadata alongside the originating error
// when a constraint expression itself fails to compile or run.
type ConstraintError struct {
	Engine string
	Expr   string
	Key    string
	Err    error
}

func (e *ConstraintError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("docstate: %s engine %s key=%s: %v", e.Engine, describeExpression(e.Expr), e.Key, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEngineError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var constraintErr *ConstraintError
	if errors.As(err, &constraintErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "docstate:") {
		return err
	}
	return fmt.Errorf("docstate: %s engine: %w", engine, err)
}

func wrapConstraintError(engine, expr, key string, err error) error {
	if err == nil {
		return nil
	}

	var constraintErr *ConstraintError
	if errors.As(err, &constraintErr) {
		if constraintErr.Engine == "" {
			constraintErr.Engine = engine
		}
		if constraintErr.Expr == "" {
			constraintErr.Expr = expr
		}
		if constraintErr.Key == "" {
			constraintErr.Key = key
		}
		return constraintErr
	}

	return &ConstraintError{
		Engine: engine,
		Expr:   expr,
		Key:    key,
		Err:    err,
	}
}
