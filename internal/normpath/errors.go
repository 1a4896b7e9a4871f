// SPDX-License-Identifier: MPL-2.0

package normpath

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition is wrapped by every PreconditionError.
	ErrPrecondition = errors.New("precondition violated")

	// ErrRootNotDir means the root is missing or not a directory.
	ErrRootNotDir = errors.New("root is not a directory")
	// ErrDestNotDir means the destination is missing or not a directory.
	ErrDestNotDir = errors.New("destination is not a directory")
	// ErrDestInsideRoot means the destination lies within the root.
	ErrDestInsideRoot = errors.New("destination is inside root")
	// ErrVanished means an entry disappeared between enumeration and use.
	ErrVanished = errors.New("entry no longer exists")
	// ErrSpecialFile means an entry is neither a regular file nor a directory.
	ErrSpecialFile = errors.New("can't handle special file")
	// ErrOutsideRoot means an entry does not lie strictly beneath the root.
	ErrOutsideRoot = errors.New("entry is outside root")
	// ErrDestExists means a file move would overwrite an existing entry.
	ErrDestExists = errors.New("destination already exists")
	// ErrCollision means several sources normalize to the same destination.
	ErrCollision = errors.New("normalized destinations collide")

	// ErrInvalidMode is the sentinel error wrapped by InvalidModeError.
	ErrInvalidMode = errors.New("invalid normpath mode")
)

type (
	// PreconditionError reports a violated assumption about the file system.
	// It matches both ErrPrecondition and the specific reason with errors.Is.
	PreconditionError struct {
		Path   string
		Reason error
	}

	// InvalidModeError is returned when a Mode value is not recognized.
	InvalidModeError struct {
		Value Mode
	}
)

func precondition(path string, reason error) *PreconditionError {
	return &PreconditionError{Path: path, Reason: reason}
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Path)
}

// Unwrap exposes ErrPrecondition and the specific reason.
func (e *PreconditionError) Unwrap() []error {
	return []error{ErrPrecondition, e.Reason}
}

// Error implements the error interface.
func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid normpath mode %q (valid: plan, apply)", e.Value)
}

// Unwrap returns ErrInvalidMode for errors.Is() compatibility.
func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }
