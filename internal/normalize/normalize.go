// SPDX-License-Identifier: MPL-2.0

package normalize

import (
	"strings"
	"unicode/utf8"
)

// Allowed lists the punctuation kept verbatim; lowercase ASCII letters and
// digits are allowed as well.
const Allowed = "/_-."

// IsAllowed reports whether r may appear in normalized output.
func IsAllowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	default:
		return strings.ContainsRune(Allowed, r)
	}
}

// IsNormalized reports whether s consists only of allowed characters.
// Normalize returns such strings unchanged.
func IsNormalized(s string) bool {
	for _, r := range s {
		if !IsAllowed(r) {
			return false
		}
	}
	return true
}

// Normalize applies the normalization rule to s.
//
// It fails with *UnnamedRuneError when s contains a character the Unicode
// database has no name for, with *InvalidUTF8Error when s is not valid
// UTF-8, and with *ConsistencyError if the produced string is not fully
// normalized (which indicates a defect in this package).
func Normalize(s string) (string, error) {
	out, err := normalize(s)
	if err != nil {
		return "", err
	}
	if err := Validate(out); err != nil {
		return "", err
	}
	return out, nil
}

// MustNormalize is like Normalize but panics on error.
func MustNormalize(s string) string {
	out, err := Normalize(s)
	if err != nil {
		panic(err)
	}
	return out
}

// Validate returns a *ConsistencyError for the first disallowed character in s.
func Validate(s string) error {
	for i, r := range s {
		if !IsAllowed(r) {
			return &ConsistencyError{Output: s, Rune: r, Offset: i}
		}
	}
	return nil
}

func normalize(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", &InvalidUTF8Error{Input: s, Offset: invalidOffset(s)}
	}

	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if IsAllowed(r) {
			sb.WriteRune(r)
			continue
		}
		escaped, err := escape(r)
		if err != nil {
			return "", err
		}
		sb.WriteString(escaped)
	}
	return sb.String(), nil
}

// escape renders r as "_<normalized name>_". Names only contain uppercase
// letters, digits, spaces and hyphens, so the recursion ends after one level.
func escape(r rune) (string, error) {
	name, ok := runeName(r)
	if !ok {
		return "", &UnnamedRuneError{Rune: r}
	}
	inner, err := normalize(name)
	if err != nil {
		return "", err
	}
	return "_" + inner + "_", nil
}

func invalidOffset(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
