// SPDX-License-Identifier: MPL-2.0

// Package normalize implements the path-name normalization rule.
//
// Normalize maps an arbitrary string onto the alphabet [a-z0-9/_.-]:
// the input is lowercased, spaces become underscores, allowed characters
// pass through, and every other character is replaced by its Unicode name,
// itself normalized and wrapped in underscores:
//
//	"Café Menu.PDF" -> "caf_latin_small_letter_e_with_acute__menu.pdf"
//
// The rule operates on whole path suffixes, so "/" is kept literally and a
// directory layout survives normalization. Every allowed character maps to
// itself, which makes the rule idempotent on its own output.
package normalize
