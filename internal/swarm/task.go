package swarm

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidOutput marks a result rejected by a task's validator.
var ErrInvalidOutput = errors.New("invalid output")

// Task is one independently failing unit of generation work.
type Task interface {
	TaskName() string
	Execute(ctx context.Context) (any, error)
	FallbackValue() any
}

// Spec is a typed Task. Fallback shares the success type of Work, so a
// failed task always yields a value the merger can use.
type Spec[T any] struct {
	Name     string
	Work     func(ctx context.Context) (T, error)
	Fallback T
	// Validate rejects malformed results; a rejection resolves to Fallback.
	Validate func(T) error
}

func (s Spec[T]) TaskName() string { return s.Name }

func (s Spec[T]) FallbackValue() any { return s.Fallback }

func (s Spec[T]) Execute(ctx context.Context) (any, error) {
	if s.Work == nil {
		return nil, errors.New("no work function")
	}
	value, err := s.Work(ctx)
	if err != nil {
		return nil, err
	}
	if s.Validate != nil {
		if err := s.Validate(value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
	}
	return value, nil
}
