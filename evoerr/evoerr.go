// Package evoerr carries the typed error kinds used across the
// evolution core: InvalidArgument, Overflow, TaskError and SystemError.
package evoerr

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers wrap these with fmt.Errorf("%s: %w", detail, Sentinel)
// so errors.Is/errors.As keep working against the kind regardless of the
// specific message text.
var (
	// ErrInvalidArgument covers dimension mismatches, missing required
	// problem capabilities, and weaker-than-required thread-safety tiers.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOverflow signals that batch-size arithmetic would exceed the
	// index range.
	ErrOverflow = errors.New("overflow")
	// ErrSystem marks a threading-primitive failure; fatal in destructor context.
	ErrSystem = errors.New("system error")
)

// TaskError wraps the error raised by an evolve task, surfaced once via
// Island.Wait. It satisfies error and Unwrap.
type TaskError struct {
	Cause error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task error: %v", e.Cause)
}

func (e *TaskError) Unwrap() error {
	return e.Cause
}

// NewTaskError wraps cause as a TaskError. A nil cause yields a nil error.
func NewTaskError(cause error) error {
	if cause == nil {
		return nil
	}
	return &TaskError{Cause: cause}
}

// InvalidArgumentf builds an error wrapping ErrInvalidArgument with a
// formatted detail message.
func InvalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

// Overflowf builds an error wrapping ErrOverflow.
func Overflowf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrOverflow)
}

// Systemf builds an error wrapping ErrSystem.
func Systemf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrSystem)
}

// IsInvalidArgument reports whether err (or anything it wraps) is ErrInvalidArgument.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }

// IsOverflow reports whether err (or anything it wraps) is ErrOverflow.
func IsOverflow(err error) bool { return errors.Is(err, ErrOverflow) }

// IsSystem reports whether err (or anything it wraps) is ErrSystem.
func IsSystem(err error) bool { return errors.Is(err, ErrSystem) }
