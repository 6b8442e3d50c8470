package model

import (
	"errors"
	"fmt"
)

// ErrorKind separates mazes that simply cannot be built from bugs in the
// pipeline.
type ErrorKind int

const (
	// MazeDependent failures reject the maze; the caller should try another.
	MazeDependent ErrorKind = iota
	// Internal failures indicate a broken invariant.
	Internal
)

func (k ErrorKind) String() string {
	if k == MazeDependent {
		return "maze-dependent"
	}
	return "internal"
}

// SchematicError is the typed failure of the panel pipeline. Display marks
// maze-dependent failures worth reporting to the user.
type SchematicError struct {
	Kind    ErrorKind
	Reason  string
	Display bool
}

func (e *SchematicError) Error() string {
	return fmt.Sprintf("%s schematic failure: %s", e.Kind, e.Reason)
}

// NewMazeError returns a maze-dependent failure.
func NewMazeError(display bool, format string, args ...any) *SchematicError {
	return &SchematicError{Kind: MazeDependent, Reason: fmt.Sprintf(format, args...), Display: display}
}

// NewInternalError returns an internal failure.
func NewInternalError(format string, args ...any) *SchematicError {
	return &SchematicError{Kind: Internal, Reason: fmt.Sprintf(format, args...), Display: true}
}

// IsMazeDependent reports whether err wraps a maze-dependent failure.
func IsMazeDependent(err error) bool {
	var se *SchematicError
	return errors.As(err, &se) && se.Kind == MazeDependent
}

// IsInternal reports whether err wraps an internal failure.
func IsInternal(err error) bool {
	var se *SchematicError
	return errors.As(err, &se) && se.Kind == Internal
}
