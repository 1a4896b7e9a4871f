// SPDX-License-Identifier: MPL-2.0

// Package checksum computes streaming content digests of files.
//
// Files are read in fixed-size blocks (128 times the digest's internal block
// size) so memory use does not depend on file size. MD5 is the default to
// stay compatible with existing manifests; SHA-256 or SHA-512 should be
// preferred for anything security relevant.
package checksum

import (
	"crypto/md5" //nolint:gosec // legacy default, stronger digests are selectable
	"crypto/sha1" //nolint:gosec // kept for interoperability
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
)

const (
	// MD5 is the legacy default digest.
	MD5 Algorithm = "md5"
	// SHA1 is provided for interoperability only.
	SHA1 Algorithm = "sha1"
	// SHA256 is the recommended cryptographic digest.
	SHA256 Algorithm = "sha256"
	// SHA512 is the strongest digest offered.
	SHA512 Algorithm = "sha512"
	// XXH64 is a fast non-cryptographic digest for change detection.
	XXH64 Algorithm = "xxh64"

	// Default is used when no algorithm is configured.
	Default = MD5

	// blockFactor multiplies the digest's block size to get the read size.
	blockFactor = 128
)

// ErrUnknownAlgorithm is the sentinel error wrapped by UnknownAlgorithmError.
var ErrUnknownAlgorithm = errors.New("unknown checksum algorithm")

type (
	// Algorithm names a supported digest.
	Algorithm string

	// UnknownAlgorithmError is returned for an unsupported algorithm name.
	UnknownAlgorithmError struct {
		Value Algorithm
	}
)

// Error implements the error interface.
func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("unknown checksum algorithm %q (valid: %s)", e.Value, strings.Join(Names(), ", "))
}

// Unwrap returns ErrUnknownAlgorithm for errors.Is() compatibility.
func (e *UnknownAlgorithmError) Unwrap() error { return ErrUnknownAlgorithm }

// Algorithms lists the supported digests, default first.
func Algorithms() []Algorithm {
	return []Algorithm{MD5, SHA1, SHA256, SHA512, XXH64}
}

// Names returns the supported digest names as strings.
func Names() []string {
	algos := Algorithms()
	names := make([]string, len(algos))
	for i, a := range algos {
		names[i] = string(a)
	}
	return names
}

// ParseAlgorithm resolves a case-insensitive algorithm name. The empty
// string selects Default.
func ParseAlgorithm(s string) (Algorithm, error) {
	if s == "" {
		return Default, nil
	}
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

// Validate returns an error if a is not a supported digest.
func (a Algorithm) Validate() error {
	switch a {
	case MD5, SHA1, SHA256, SHA512, XXH64:
		return nil
	default:
		return &UnknownAlgorithmError{Value: a}
	}
}

// String returns the algorithm name.
func (a Algorithm) String() string { return string(a) }

// New returns a fresh hash.Hash for a.
func (a Algorithm) New() (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil //nolint:gosec // see package doc
	case SHA1:
		return sha1.New(), nil //nolint:gosec // see package doc
	case SHA256:
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	case XXH64:
		return xxhash.New(), nil
	default:
		return nil, &UnknownAlgorithmError{Value: a}
	}
}

// File returns the lowercase hex digest of the file at path.
func File(fsys afero.Fs, path string, algo Algorithm) (sum string, err error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	sum, err = Reader(f, algo)
	if err != nil {
		return "", fmt.Errorf("checksum %s: %w", path, err)
	}
	return sum, nil
}

// Reader returns the lowercase hex digest of everything read from r.
func Reader(r io.Reader, algo Algorithm) (string, error) {
	h, err := algo.New()
	if err != nil {
		return "", err
	}

	buf := make([]byte, blockFactor*h.BlockSize())
	if _, err := io.CopyBuffer(h, readerOnly{r}, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// readerOnly hides WriterTo/ReaderFrom so io.CopyBuffer really uses the
// fixed-size buffer instead of delegating to an unbounded fast path.
type readerOnly struct {
	io.Reader
}
