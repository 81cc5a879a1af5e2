package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned when a system is registered without a name.
	ErrEmptyName = errors.New("system name must not be empty")

	// ErrNilGroup is returned when a system is registered without access.
	ErrNilGroup = errors.New("system access must not be nil")

	// ErrDuplicateSystem is returned when a name is registered twice.
	ErrDuplicateSystem = errors.New("duplicate system")

	// ErrUnknownSystem is returned when an ordering names an unregistered system.
	ErrUnknownSystem = errors.New("unknown system")

	// ErrCycle is returned when an ordering would make the schedule cyclic.
	ErrCycle = errors.New("ordering cycle")
)

// CycleError indicates that ordering Before ahead of After would close a cycle.
//
// errors.Is(err, ErrCycle) reports true for a *CycleError.
type CycleError struct {
	Before string
	After  string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("ordering cycle: %q already runs after %q", e.Before, e.After)
}

func (e *CycleError) Unwrap() error { return ErrCycle }
