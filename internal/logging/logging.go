// SPDX-License-Identifier: MPL-2.0

// Package logging builds the structured logger shared by every command.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// FormatText is the human-readable, colorized format.
	FormatText Format = "text"
	// FormatJSON emits one JSON object per line.
	FormatJSON Format = "json"
	// FormatLogfmt emits key=value pairs.
	FormatLogfmt Format = "logfmt"

	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	prefix            = "tidyfs"
)

var (
	// ErrInvalidFormat is returned for an unknown log format.
	ErrInvalidFormat = errors.New("invalid log format")
	// ErrInvalidLevel is returned for an unknown log level.
	ErrInvalidLevel = errors.New("invalid log level")
)

type (
	// Format names a log line encoding.
	Format string

	// Options configures New.
	Options struct {
		// Level is one of debug, info, warn, error, fatal. Empty means warn.
		Level string
		// Format is text, json or logfmt. Empty means text.
		Format Format
		// File, when set, receives logs instead of the console writer and is
		// rotated by size.
		File       string
		MaxSizeMB  int
		MaxBackups int
		Compress   bool
	}

	nopCloser struct{}
)

func (nopCloser) Close() error { return nil }

// New returns a logger writing to console, or to a rotated file when
// opts.File is set. The returned closer releases the file.
func New(console io.Writer, opts Options) (*log.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	formatter, err := formatterFor(opts.Format)
	if err != nil {
		return nil, nil, err
	}

	var (
		w      = console
		closer io.Closer = nopCloser{}
	)
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, defaultMaxSizeMB),
			MaxBackups: orDefault(opts.MaxBackups, defaultMaxBackups),
			Compress:   opts.Compress,
		}
		w, closer = lj, lj
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: opts.File != "" || formatter != log.TextFormatter,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel resolves a level name. The empty string selects warn.
func ParseLevel(s string) (log.Level, error) {
	if strings.TrimSpace(s) == "" {
		return log.WarnLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return 0, fmt.Errorf("%w %q (valid: debug, info, warn, error, fatal)", ErrInvalidLevel, s)
	}
	return level, nil
}

// ParseFormat resolves a format name. The empty string selects FormatText.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatText, nil
	}
	if _, err := formatterFor(f); err != nil {
		return "", err
	}
	return f, nil
}

func formatterFor(f Format) (log.Formatter, error) {
	switch f {
	case FormatText, "":
		return log.TextFormatter, nil
	case FormatJSON:
		return log.JSONFormatter, nil
	case FormatLogfmt:
		return log.LogfmtFormatter, nil
	default:
		return 0, fmt.Errorf("%w %q (valid: text, json, logfmt)", ErrInvalidFormat, f)
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
