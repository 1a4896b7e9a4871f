// SPDX-License-Identifier: MPL-2.0

package perm

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
)

func TestUnix(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("Unix permission bits are not preserved on Windows")
	}

	tests := []struct {
		name string
		mode fs.FileMode
		want [3]int
	}{
		{"0644", 0o644, [3]int{6, 4, 4}},
		{"0755", 0o755, [3]int{7, 5, 5}},
		{"0600", 0o600, [3]int{6, 0, 0}},
		{"0777", 0o777, [3]int{7, 7, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "file")
			if err := os.WriteFile(path, nil, 0o600); err != nil {
				t.Fatalf("failed to create file: %v", err)
			}
			// Chmod sidesteps the process umask.
			if err := os.Chmod(path, tt.mode); err != nil {
				t.Fatalf("failed to chmod: %v", err)
			}

			got, err := Unix(afero.NewOsFs(), path)
			if err != nil {
				t.Fatalf("Unix() returned error: %v", err)
			}
			if got.Digits() != tt.want {
				t.Errorf("Unix() = %v, want %v", got.Digits(), tt.want)
			}
		})
	}
}

func TestUnix_Missing(t *testing.T) {
	t.Parallel()

	_, err := Unix(afero.NewOsFs(), filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error should wrap os.ErrNotExist, got: %v", err)
	}
}

func TestFromMode_IgnoresSpecialBits(t *testing.T) {
	t.Parallel()

	m := fs.ModeDir | fs.ModeSetuid | fs.ModeSticky | 0o751
	got := FromMode(m)
	if got.String() != "751" {
		t.Errorf("FromMode(%v) = %s, want 751", m, got)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Triplet
		wantErr bool
	}{
		{in: "644", want: Triplet{6, 4, 4}},
		{in: "000", want: Triplet{0, 0, 0}},
		{in: "777", want: Triplet{7, 7, 7}},
		{in: "64", wantErr: true},
		{in: "7777", wantErr: true},
		{in: "648", wantErr: true},
		{in: "rwx", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTriplet) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidTriplet", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.String() != tt.in {
			t.Errorf("Parse(%q).String() = %q", tt.in, got.String())
		}
	}
}

func TestTriplet_ModeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, m := range []fs.FileMode{0o644, 0o755, 0o640, 0o001} {
		if got := FromMode(m).Mode(); got != m {
			t.Errorf("FromMode(%o).Mode() = %o", m, got)
		}
	}
}
