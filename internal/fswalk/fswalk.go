// SPDX-License-Identifier: MPL-2.0

// Package fswalk enumerates every file and directory beneath a root.
package fswalk

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// ErrBadExcludePattern is returned when an exclude glob cannot be parsed.
var ErrBadExcludePattern = errors.New("bad exclude pattern")

// errStop aborts afero.Walk when the consumer stops ranging.
var errStop = errors.New("fswalk: stop")

type (
	// Option configures a walk.
	Option func(*options)

	options struct {
		exclude []string
	}
)

// WithExclude skips entries whose slash-separated path relative to the walk
// root matches any of the doublestar patterns. A matching directory is pruned
// together with everything beneath it.
//
//	WithExclude("**/.git", "build/**", "**/*.tmp")
func WithExclude(patterns ...string) Option {
	return func(o *options) {
		o.exclude = append(o.exclude, patterns...)
	}
}

func (o *options) validate() error {
	for _, p := range o.exclude {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: %q", ErrBadExcludePattern, p)
		}
	}
	return nil
}

func (o *options) excluded(rel string) bool {
	for _, p := range o.exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Walk returns a lazy sequence of the absolute path of every directory and
// file beneath root. The root itself is not yielded. Directories are yielded
// before their contents, in lexical order; symbolic links are yielded but not
// followed.
//
// A traversal error is yielded once, with an empty path, and ends the
// sequence.
func Walk(fsys afero.Fs, root string, opts ...Option) iter.Seq2[string, error] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return func(yield func(string, error) bool) {
		if err := o.validate(); err != nil {
			yield("", err)
			return
		}

		abs, err := filepath.Abs(root)
		if err != nil {
			yield("", fmt.Errorf("resolving walk root: %w", err))
			return
		}

		err = afero.Walk(fsys, abs, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if path == abs {
				return nil
			}

			if len(o.exclude) > 0 {
				rel, relErr := filepath.Rel(abs, path)
				if relErr != nil {
					return relErr
				}
				if o.excluded(filepath.ToSlash(rel)) {
					if info.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
			}

			if !yield(path, nil) {
				return errStop
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStop) {
			yield("", fmt.Errorf("walking %s: %w", abs, err))
		}
	}
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq iter.Seq2[string, error]) ([]string, error) {
	var paths []string
	for path, err := range seq {
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// SortDeepestFirst orders paths by descending length so that every entry
// precedes its ancestors. Equal lengths fall back to lexical order.
func SortDeepestFirst(paths []string) {
	slices.SortStableFunc(paths, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
}

// Candidates walks root, materializes the result and sorts it deepest-first.
func Candidates(fsys afero.Fs, root string, opts ...Option) ([]string, error) {
	paths, err := Collect(Walk(fsys, root, opts...))
	if err != nil {
		return nil, err
	}
	SortDeepestFirst(paths)
	return paths, nil
}
