// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "apply plan"},
			expected: "failed to apply plan",
		},
		{
			name:     "with resource",
			err:      &ActionableError{Operation: "checksum file", Resource: "./a.iso"},
			expected: "failed to checksum file: ./a.iso",
		},
		{
			name: "with resource and cause",
			err: &ActionableError{
				Operation: "checksum file",
				Resource:  "./a.iso",
				Cause:     errors.New("file not found"),
			},
			expected: "failed to checksum file: ./a.iso: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := WrapWithContext(fmt.Errorf("layer: %w", sentinel), "run", "x")

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should find the sentinel through the cause")
	}
	if WrapWithContext(nil, "run", "x") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	err := &ActionableError{
		Operation:   "load configuration",
		Resource:    "./config.cue",
		Suggestions: []string{"Run 'tidyfs config init'", "Check file permissions"},
		Cause:       fmt.Errorf("outer: %w", errors.New("inner")),
	}

	short := err.Format(false)
	for _, want := range []string{
		"failed to load configuration",
		"./config.cue",
		"• Run 'tidyfs config init'",
		"• Check file permissions",
	} {
		if !strings.Contains(short, want) {
			t.Errorf("Format(false) missing %q:\n%s", want, short)
		}
	}
	if strings.Contains(short, "Error chain") {
		t.Errorf("Format(false) should not include the error chain:\n%s", short)
	}

	verbose := err.Format(true)
	for _, want := range []string{"Error chain:", "1. outer: inner", "2. inner"} {
		if !strings.Contains(verbose, want) {
			t.Errorf("Format(true) missing %q:\n%s", want, verbose)
		}
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	ae := NewErrorContext().
		WithOperation("apply plan").
		WithResource("/srv").
		WithSuggestion("first").
		WithSuggestion("second").
		WithIssue(PreconditionViolatedId).
		Wrap(cause).
		Build()

	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if ae.Operation != "apply plan" || ae.Resource != "/srv" || ae.Issue != PreconditionViolatedId {
		t.Errorf("Build() = %+v", ae)
	}
	if len(ae.Suggestions) != 2 || ae.Cause != cause {
		t.Errorf("Build() = %+v", ae)
	}

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
}

func TestIssueOf(t *testing.T) {
	t.Parallel()

	inner := NewErrorContext().WithOperation("inner").WithIssue(ProcessFailedId).BuildError()
	outer := NewErrorContext().WithOperation("outer").Wrap(inner).BuildError()

	tests := []struct {
		name   string
		err    error
		want   Id
		wantOK bool
	}{
		{"nil", nil, 0, false},
		{"plain error", errors.New("x"), 0, false},
		{"direct", inner, ProcessFailedId, true},
		{"nested", fmt.Errorf("wrapped: %w", outer), ProcessFailedId, true},
		{"no issue", NewErrorContext().WithOperation("x").BuildError(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := IssueOf(tt.err)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("IssueOf() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
