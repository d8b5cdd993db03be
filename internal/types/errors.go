package types

import (
	"errors"
	"fmt"
)

var (
	ErrInput            = errors.New("input error")
	ErrStorage          = errors.New("storage error")
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// InputError reports a failure to read the text to analyze.
type InputError struct {
	Source string
	Err    error
}

func (e *InputError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("read input: %v", e.Err)
	}
	return fmt.Sprintf("read input from %s: %v", e.Source, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

func (e *InputError) Is(target error) bool { return target == ErrInput }

// CapacityError describes a bound that was reached. It is only ever logged.
type CapacityError struct {
	Limit string
	Max   int
	Count int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s limit %d reached (%d affected)", e.Limit, e.Max, e.Count)
}

func (e *CapacityError) Is(target error) bool { return target == ErrCapacityExceeded }
