// SPDX-License-Identifier: MPL-2.0

package normpath

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// FormatText prints one "SRC --> DST" line per move.
	FormatText Format = "text"
	// FormatJSON prints the plan as a JSON document.
	FormatJSON Format = "json"
	// FormatYAML prints the plan as a YAML document.
	FormatYAML Format = "yaml"
	// FormatTOML prints the plan as a TOML document.
	FormatTOML Format = "toml"

	arrow = " --> "
)

// ErrInvalidFormat is returned for an unknown report format.
var ErrInvalidFormat = errors.New("invalid report format")

type (
	// Format names a plan report encoding.
	Format string

	// Reporter receives each move as soon as it is planned.
	Reporter interface {
		Report(Move) error
	}

	// ReporterFunc adapts a function to the Reporter interface.
	ReporterFunc func(Move) error

	textReporter struct {
		w io.Writer
	}
)

// Report calls f(m).
func (f ReporterFunc) Report(m Move) error { return f(m) }

// TextReporter writes "SRC --> DST" lines to w.
func TextReporter(w io.Writer) Reporter {
	return &textReporter{w: w}
}

func (r *textReporter) Report(m Move) error {
	_, err := fmt.Fprintln(r.w, FormatMove(m))
	return err
}

// FormatMove renders a move as a single report line.
func FormatMove(m Move) string {
	return m.Source + arrow + m.Destination
}

// ParseFormat resolves a format name. The empty string selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q (valid: text, json, yaml, toml)", ErrInvalidFormat, s)
	}
}

// WritePlan encodes the whole plan to w.
func WritePlan(w io.Writer, plan *Plan, format Format) error {
	switch format {
	case FormatText, "":
		for _, m := range plan.Moves {
			if _, err := fmt.Fprintln(w, FormatMove(m)); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(plan)
	default:
		return fmt.Errorf("%w %q", ErrInvalidFormat, format)
	}
}
