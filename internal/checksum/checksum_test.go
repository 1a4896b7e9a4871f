// SPDX-License-Identifier: MPL-2.0

package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const fox = "The quick brown fox jumps over the lazy dog"

func writeFile(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestFile_KnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		algo    Algorithm
		content string
		want    string
	}{
		{MD5, "", "d41d8cd98f00b204e9800998ecf8427e"},
		{SHA1, "", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{SHA256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{SHA512, "", "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"},
		{XXH64, "", "ef46db3751d8e999"},
		{MD5, fox, "9e107d9d372bb6826bd81d3542a419d6"},
		{SHA256, fox, "d7a8fbb307d7809469ca9abcb0082e4f8d5651e46d3cdb762d02d0bf37c9e592"},
	}

	for _, tt := range tests {
		t.Run(string(tt.algo)+"/"+tt.content, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, []byte(tt.content))
			got, err := File(afero.NewOsFs(), path, tt.algo)
			if err != nil {
				t.Fatalf("File() returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("File(%s) = %s, want %s", tt.algo, got, tt.want)
			}
		})
	}
}

func TestFile_StableAcrossCalls(t *testing.T) {
	t.Parallel()

	path := writeFile(t, bytes.Repeat([]byte("tidyfs"), 10_000))
	fsys := afero.NewOsFs()

	first, err := File(fsys, path, MD5)
	if err != nil {
		t.Fatalf("File() returned error: %v", err)
	}
	second, err := File(fsys, path, MD5)
	if err != nil {
		t.Fatalf("File() returned error: %v", err)
	}
	if first != second {
		t.Errorf("checksum changed between calls: %s vs %s", first, second)
	}
}

func TestFile_MultiBlockMatchesOneShot(t *testing.T) {
	t.Parallel()

	// Several read blocks plus a partial tail.
	data := bytes.Repeat([]byte{0xA5, 0x5A, 0x00, 0xFF}, 100_003)
	path := writeFile(t, data)

	got, err := File(afero.NewOsFs(), path, SHA256)
	if err != nil {
		t.Fatalf("File() returned error: %v", err)
	}
	sum := sha256.Sum256(data)
	if want := hex.EncodeToString(sum[:]); got != want {
		t.Errorf("File() = %s, want %s", got, want)
	}
}

func TestFile_CorruptionChangesDigest(t *testing.T) {
	t.Parallel()

	data := []byte(strings.Repeat("stable content ", 1000))
	fsys := afero.NewOsFs()

	for _, algo := range Algorithms() {
		original, err := File(fsys, writeFile(t, data), algo)
		if err != nil {
			t.Fatalf("File(%s) returned error: %v", algo, err)
		}

		corrupted := bytes.Clone(data)
		corrupted[len(corrupted)/2] ^= 0x01
		changed, err := File(fsys, writeFile(t, corrupted), algo)
		if err != nil {
			t.Fatalf("File(%s) returned error: %v", algo, err)
		}
		if original == changed {
			t.Errorf("%s digest unchanged after flipping one bit", algo)
		}
	}
}

func TestFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := File(afero.NewOsFs(), filepath.Join(t.TempDir(), "missing"), MD5)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error should wrap os.ErrNotExist, got: %v", err)
	}
}

func TestFile_MemMapFs(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "fox.txt", []byte(fox), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	got, err := File(fsys, "fox.txt", MD5)
	if err != nil {
		t.Fatalf("File() returned error: %v", err)
	}
	if got != "9e107d9d372bb6826bd81d3542a419d6" {
		t.Errorf("File() = %s", got)
	}
}

func TestReader(t *testing.T) {
	t.Parallel()

	got, err := Reader(strings.NewReader(fox), MD5)
	if err != nil {
		t.Fatalf("Reader() returned error: %v", err)
	}
	if got != "9e107d9d372bb6826bd81d3542a419d6" {
		t.Errorf("Reader() = %s", got)
	}
}

func TestParseAlgorithm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{in: "", want: MD5},
		{in: "md5", want: MD5},
		{in: "SHA256", want: SHA256},
		{in: " sha512 ", want: SHA512},
		{in: "xxh64", want: XXH64},
		{in: "crc32", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownAlgorithm) {
				t.Errorf("ParseAlgorithm(%q) error = %v, want ErrUnknownAlgorithm", tt.in, err)
			}
			var uae *UnknownAlgorithmError
			if !errors.As(err, &uae) {
				t.Errorf("ParseAlgorithm(%q) error should be *UnknownAlgorithmError, got %T", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAlgorithm(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
