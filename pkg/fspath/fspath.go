// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath functions that
// accept and return types.FilesystemPath, plus the raw fragment joiner used by
// callers that assemble paths from pre-split pieces.
package fspath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidyfs/tidyfs/pkg/types"
)

// MakePath joins fragments with the platform path separator. Fragments are
// expected to carry no leading or trailing separator; the result is not
// cleaned, so "a", "", "b" yields "a//b" on POSIX.
func MakePath(fragments ...string) string {
	return strings.Join(fragments, string(os.PathSeparator))
}

// Join wraps filepath.Join, accepting and returning types.FilesystemPath.
func Join(elem ...types.FilesystemPath) types.FilesystemPath {
	strs := make([]string, len(elem))
	for i, e := range elem {
		strs[i] = string(e)
	}
	return types.FilesystemPath(filepath.Join(strs...))
}

// JoinStr wraps filepath.Join, accepting a typed base path and raw string
// segments (e.g. names returned by a directory listing).
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Dir wraps filepath.Dir for FilesystemPath.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// Abs wraps filepath.Abs for FilesystemPath. Returns an error if the
// underlying OS call fails.
func Abs(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

// Rel wraps filepath.Rel for FilesystemPath.
func Rel(base, target types.FilesystemPath) (types.FilesystemPath, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", fmt.Errorf("relativizing path: %w", err)
	}
	return types.FilesystemPath(rel), nil
}

// Clean wraps filepath.Clean for FilesystemPath.
func Clean(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Clean(string(p)))
}

// FromSlash wraps filepath.FromSlash for FilesystemPath. Converts forward
// slashes to the OS-specific path separator.
func FromSlash(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.FromSlash(string(p)))
}

// ToSlash wraps filepath.ToSlash for FilesystemPath.
func ToSlash(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.ToSlash(string(p)))
}

// IsAbs wraps filepath.IsAbs for FilesystemPath.
func IsAbs(p types.FilesystemPath) bool {
	return filepath.IsAbs(string(p))
}

// HasStrictPrefix reports whether path lies strictly beneath root, i.e. root
// followed by a separator is a prefix of path. Both are compared as given;
// callers clean them first. A root that already ends in a separator (the
// filesystem root "/") is matched without appending another.
func HasStrictPrefix(path, root types.FilesystemPath) bool {
	r := string(root)
	if !strings.HasSuffix(r, string(os.PathSeparator)) {
		r += string(os.PathSeparator)
	}
	return len(path) > len(r) && strings.HasPrefix(string(path), r)
}

// Suffix returns the part of path beyond root, starting with the separator.
// It reports false when path is not strictly beneath root.
func Suffix(path, root types.FilesystemPath) (string, bool) {
	if !HasStrictPrefix(path, root) {
		return "", false
	}
	r := strings.TrimSuffix(string(root), string(os.PathSeparator))
	return string(path)[len(r):], true
}
