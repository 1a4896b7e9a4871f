// SPDX-License-Identifier: MPL-2.0

package normalize

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "space becomes underscore", input: "A B", want: "a_b"},
		{name: "already normalized", input: "/docs/2024_report-v2.txt", want: "/docs/2024_report-v2.txt"},
		{name: "uppercase ascii", input: "README.MD", want: "readme.md"},
		{name: "accented lowercase", input: "é", want: "_latin_small_letter_e_with_acute_"},
		{name: "accented uppercase is lowered first", input: "É", want: "_latin_small_letter_e_with_acute_"},
		{name: "plus sign", input: "a+b", want: "a_plus_sign_b"},
		{name: "parentheses", input: "(x)", want: "_left_parenthesis_x_right_parenthesis_"},
		{
			name:  "separators preserved",
			input: "/Music/Björk/Homogenic",
			want:  "/music/bj_latin_small_letter_o_with_diaeresis_rk/homogenic",
		},
		{
			name:  "mixed path",
			input: "/Café Menu.PDF",
			want:  "/caf_latin_small_letter_e_with_acute__menu.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"A B",
		"Ünïcödé Fïlé.TXT",
		"/a/b c/d&e/f#g",
		"Ωmega ∑ sums",
		"emoji 🎉 party",
		"tildes~and^carets",
	}

	for _, in := range inputs {
		once, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", in, err)
		}
		twice, err := Normalize(once)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", once, err)
		}
		if once != twice {
			t.Errorf("Normalize is not idempotent for %q: %q then %q", in, once, twice)
		}
		if !IsNormalized(once) {
			t.Errorf("Normalize(%q) = %q contains disallowed characters", in, once)
		}
	}
}

func TestNormalize_AllowedIdentity(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	for r := 'a'; r <= 'z'; r++ {
		sb.WriteRune(r)
	}
	for r := '0'; r <= '9'; r++ {
		sb.WriteRune(r)
	}
	sb.WriteString(Allowed)
	all := sb.String()

	got, err := Normalize(all)
	if err != nil {
		t.Fatalf("Normalize() returned error: %v", err)
	}
	if got != all {
		t.Errorf("Normalize(%q) = %q, want identity", all, got)
	}
}

func TestNormalize_EscapeShape(t *testing.T) {
	t.Parallel()

	for _, r := range []rune{'é', 'ß', '&', '#', '~', '∑', '🎉', 'Ω'} {
		got, err := Normalize(string(r))
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", r, err)
		}
		if len(got) < 3 {
			t.Errorf("Normalize(%q) = %q, want non-empty escape", r, got)
		}
		if !strings.HasPrefix(got, "_") || !strings.HasSuffix(got, "_") {
			t.Errorf("Normalize(%q) = %q, want escape wrapped in underscores", r, got)
		}
		if !IsNormalized(got) {
			t.Errorf("Normalize(%q) = %q contains disallowed characters", r, got)
		}
	}
}

func TestNormalize_UnnamedRune(t *testing.T) {
	t.Parallel()

	// U+0378 is unassigned.
	_, err := Normalize("a\u0378b")
	if err == nil {
		t.Fatal("Normalize() should fail for an unassigned code point")
	}
	if !errors.Is(err, ErrUnnamedRune) {
		t.Errorf("error should wrap ErrUnnamedRune, got: %v", err)
	}
	var unnamed *UnnamedRuneError
	if !errors.As(err, &unnamed) {
		t.Fatalf("error should be *UnnamedRuneError, got: %T", err)
	}
	if unnamed.Rune != 0x378 {
		t.Errorf("UnnamedRuneError.Rune = %U, want U+0378", unnamed.Rune)
	}
}

func TestNormalize_DerivedNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "cjk unified", input: "中", want: "_cjk_unified_ideograph-4e2d_"},
		{name: "cjk unified other", input: "文", want: "_cjk_unified_ideograph-6587_"},
		{name: "cjk extension a", input: "\u3400", want: "_cjk_unified_ideograph-3400_"},
		{name: "cjk extension b", input: "\U00020000", want: "_cjk_unified_ideograph-20000_"},
		{name: "cjk compatibility", input: "\uF900", want: "_cjk_compatibility_ideograph-f900_"},
		{name: "tangut", input: "\U00017000", want: "_tangut_ideograph-17000_"},
		{name: "nushu", input: "\U0001B170", want: "_nushu_character-1b170_"},
		{name: "hangul ga", input: "가", want: "_hangul_syllable_ga_"},
		{name: "hangul with final", input: "한", want: "_hangul_syllable_han_"},
		{name: "hangul silent initial", input: "\uC544", want: "_hangul_syllable_a_"},
		{name: "hangul last", input: "\uD7A3", want: "_hangul_syllable_hih_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_DistinctIdeographs(t *testing.T) {
	t.Parallel()

	a := MustNormalize("中.txt")
	b := MustNormalize("文.txt")
	if a == b {
		t.Errorf("distinct ideographs normalized to the same name %q", a)
	}
}

func TestNormalize_LabelledRunes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    rune
	}{
		{name: "tab", r: '\t'},
		{name: "delete", r: 0x7f},
		{name: "c1 control", r: 0x85},
		{name: "private use", r: 0xE000},
		{name: "plane 15 private use", r: 0xF0000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Normalize("a" + string(tt.r) + "b")
			if !errors.Is(err, ErrUnnamedRune) {
				t.Fatalf("Normalize(%U) error = %v, want ErrUnnamedRune", tt.r, err)
			}
			var unnamed *UnnamedRuneError
			if !errors.As(err, &unnamed) || unnamed.Rune != tt.r {
				t.Errorf("UnnamedRuneError.Rune = %v, want %U", unnamed, tt.r)
			}
		})
	}
}

func TestNormalize_InvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := Normalize("ok\xffbad")
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("error should wrap ErrInvalidUTF8, got: %v", err)
	}
	var invalid *InvalidUTF8Error
	if !errors.As(err, &invalid) {
		t.Fatalf("error should be *InvalidUTF8Error, got: %T", err)
	}
	if invalid.Offset != 2 {
		t.Errorf("InvalidUTF8Error.Offset = %d, want 2", invalid.Offset)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := Validate("abc/def_1-2.txt"); err != nil {
		t.Errorf("Validate() returned error for normalized input: %v", err)
	}

	err := Validate("abc D")
	if !errors.Is(err, ErrInconsistent) {
		t.Fatalf("error should wrap ErrInconsistent, got: %v", err)
	}
	var ce *ConsistencyError
	if !errors.As(err, &ce) {
		t.Fatalf("error should be *ConsistencyError, got: %T", err)
	}
	if ce.Rune != ' ' || ce.Offset != 3 {
		t.Errorf("ConsistencyError = {%q, %d}, want {' ', 3}", ce.Rune, ce.Offset)
	}
}

func TestMustNormalize_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("MustNormalize() should panic on invalid input")
		}
	}()
	MustNormalize("\xff")
}

func TestIsAllowed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		r    rune
		want bool
	}{
		{'a', true},
		{'z', true},
		{'0', true},
		{'9', true},
		{'/', true},
		{'_', true},
		{'-', true},
		{'.', true},
		{'A', false},
		{' ', false},
		{'é', false},
		{'\\', false},
	}

	for _, tt := range tests {
		if got := IsAllowed(tt.r); got != tt.want {
			t.Errorf("IsAllowed(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func FuzzNormalize(f *testing.F) {
	for _, seed := range []string{"", "A B", "/x/Ÿ/z", "a+b=c", "naïve café"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		out, err := Normalize(s)
		if err != nil {
			if errors.Is(err, ErrInconsistent) {
				t.Fatalf("Normalize(%q) produced inconsistent output: %v", s, err)
			}
			return
		}
		if !IsNormalized(out) {
			t.Fatalf("Normalize(%q) = %q contains disallowed characters", s, out)
		}
		again, err := Normalize(out)
		if err != nil || again != out {
			t.Fatalf("Normalize(%q) = %q, %v; want %q", out, again, err, out)
		}
	})
}
