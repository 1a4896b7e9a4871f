// SPDX-License-Identifier: MPL-2.0

package normalize

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/runenames"
)

// Hangul syllable composition constants (Unicode 3.12).
const (
	hangulBase   = 0xAC00
	hangulLast   = 0xD7A3
	hangulVCount = 21
	hangulTCount = 28
	hangulNCount = hangulVCount * hangulTCount
)

var (
	jamoL = [...]string{
		"G", "GG", "N", "D", "DD", "R", "M", "B", "BB", "S", "SS", "", "J", "JJ", "C", "K", "T", "P", "H",
	}
	jamoV = [...]string{
		"A", "AE", "YA", "YAE", "EO", "E", "YEO", "YE", "O", "WA", "WAE", "OE", "YO", "U", "WEO", "WE", "WI",
		"YU", "EU", "YI", "I",
	}
	jamoT = [...]string{
		"", "G", "GG", "GS", "N", "NJ", "NH", "D", "L", "LG", "LM", "LB", "LS", "LT", "LP", "LH", "M", "B",
		"BS", "S", "SS", "NG", "J", "C", "K", "T", "P", "H",
	}

	// ideographLabels maps the range labels of the name table to the prefix
	// of the derived name, which ends in the code point in hex.
	ideographLabels = []struct {
		label  string
		prefix string
	}{
		{"<CJK Ideograph", "CJK UNIFIED IDEOGRAPH-"},
		{"<Tangut Ideograph", "TANGUT IDEOGRAPH-"},
	}
)

// runeName returns the Unicode character name of r. Ranges the name table
// only labels ("<CJK Ideograph>", "<Hangul Syllable>") get their derived
// names. Any other label (control, private use, surrogate) or a missing
// entry yields ok == false.
func runeName(r rune) (name string, ok bool) {
	name = runenames.Name(r)
	if name == "" {
		return "", false
	}
	if !strings.HasPrefix(name, "<") {
		return name, true
	}
	if r >= hangulBase && r <= hangulLast {
		return hangulName(r), true
	}
	for _, l := range ideographLabels {
		if strings.HasPrefix(name, l.label) {
			return fmt.Sprintf("%s%04X", l.prefix, r), true
		}
	}
	return "", false
}

func hangulName(r rune) string {
	s := int(r - hangulBase)
	l := s / hangulNCount
	v := (s % hangulNCount) / hangulTCount
	t := s % hangulTCount
	return "HANGUL SYLLABLE " + jamoL[l] + jamoV[v] + jamoT[t]
}
