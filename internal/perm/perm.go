// SPDX-License-Identifier: MPL-2.0

// Package perm reads Unix permission bits as owner/group/other octal digits.
package perm

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
)

// ErrInvalidTriplet is returned by Parse for malformed input.
var ErrInvalidTriplet = errors.New("invalid permission triplet")

// Triplet holds the three octal permission digits, each in 0-7.
type Triplet struct {
	Owner uint8
	Group uint8
	Other uint8
}

// Unix returns the permission digits of path. Symbolic links are followed.
func Unix(fsys afero.Fs, path string) (Triplet, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return Triplet{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return FromMode(info.Mode()), nil
}

// FromMode extracts the permission digits of m, ignoring the file type and
// the setuid, setgid and sticky bits.
func FromMode(m fs.FileMode) Triplet {
	p := m.Perm()
	return Triplet{
		Owner: uint8(p>>6) & 7,
		Group: uint8(p>>3) & 7,
		Other: uint8(p) & 7,
	}
}

// Parse reads a three-digit octal string such as "755".
func Parse(s string) (Triplet, error) {
	if len(s) != 3 {
		return Triplet{}, fmt.Errorf("%w: %q: want three octal digits", ErrInvalidTriplet, s)
	}
	var d [3]uint8
	for i := range 3 {
		c := s[i]
		if c < '0' || c > '7' {
			return Triplet{}, fmt.Errorf("%w: %q: %q is not an octal digit", ErrInvalidTriplet, s, c)
		}
		d[i] = c - '0'
	}
	return Triplet{Owner: d[0], Group: d[1], Other: d[2]}, nil
}

// Mode converts t back to permission bits.
func (t Triplet) Mode() fs.FileMode {
	return fs.FileMode(t.Owner&7)<<6 | fs.FileMode(t.Group&7)<<3 | fs.FileMode(t.Other&7)
}

// Digits returns the triplet as an array, owner first.
func (t Triplet) Digits() [3]int {
	return [3]int{int(t.Owner), int(t.Group), int(t.Other)}
}

// String renders t as three octal digits, e.g. "644".
func (t Triplet) String() string {
	return fmt.Sprintf("%d%d%d", t.Owner, t.Group, t.Other)
}
