// SPDX-License-Identifier: MPL-2.0

package normalize

import (
	"errors"
	"fmt"
)

var (
	// ErrInconsistent is wrapped by ConsistencyError. It signals a defect in
	// the rule itself rather than bad input.
	ErrInconsistent = errors.New("normalization produced a disallowed character")
	// ErrUnnamedRune is wrapped by UnnamedRuneError.
	ErrUnnamedRune = errors.New("character has no unicode name")
	// ErrInvalidUTF8 is wrapped by InvalidUTF8Error.
	ErrInvalidUTF8 = errors.New("input is not valid utf-8")
)

type (
	// ConsistencyError reports a disallowed character in normalized output.
	ConsistencyError struct {
		Output string
		Rune   rune
		Offset int
	}

	// UnnamedRuneError reports a character without a Unicode name, which
	// therefore cannot be escaped.
	UnnamedRuneError struct {
		Rune rune
	}

	// InvalidUTF8Error reports input that is not valid UTF-8. Offset is the
	// byte index of the first invalid sequence.
	InvalidUTF8Error struct {
		Input  string
		Offset int
	}
)

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("bad char %q (U+%04X) at offset %d in %q", e.Rune, e.Rune, e.Offset, e.Output)
}

// Unwrap returns ErrInconsistent for errors.Is() compatibility.
func (e *ConsistencyError) Unwrap() error { return ErrInconsistent }

func (e *UnnamedRuneError) Error() string {
	return fmt.Sprintf("cannot escape U+%04X: no unicode name", e.Rune)
}

// Unwrap returns ErrUnnamedRune for errors.Is() compatibility.
func (e *UnnamedRuneError) Unwrap() error { return ErrUnnamedRune }

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("invalid utf-8 at byte %d in %q", e.Offset, e.Input)
}

// Unwrap returns ErrInvalidUTF8 for errors.Is() compatibility.
func (e *InvalidUTF8Error) Unwrap() error { return ErrInvalidUTF8 }
