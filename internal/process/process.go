// SPDX-License-Identifier: MPL-2.0

package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/tidyfs/tidyfs/pkg/types"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

const (
	// separatorWidth is the width of the '#' rule framing diagnostic output.
	separatorWidth = 80
	// signalExitBase is added to the signal number of a killed process,
	// matching the status a POSIX shell reports.
	signalExitBase = 128
)

var (
	// ErrEmptyCommand is returned when the argument vector is empty.
	ErrEmptyCommand = errors.New("empty command")
	// ErrProcessFailed is the sentinel error wrapped by FailureError.
	ErrProcessFailed = errors.New("process exited with non-zero status")
)

type (
	// Result holds the captured output and exit status of a finished process.
	Result struct {
		Stdout   string
		Stderr   string
		ExitCode types.ExitCode
		// Signal names the signal that terminated the process, if any. The
		// ExitCode is then 128 plus the signal number.
		Signal string
	}

	// FailureError is returned by CarefulCall when the process exits non-zero
	// or is killed by a signal.
	FailureError struct {
		Args   []string
		Code   types.ExitCode
		Signal string
		Stderr string
	}

	// waitStatus is the part of syscall.WaitStatus needed to detect a
	// process terminated by a signal.
	waitStatus interface {
		Signaled() bool
		Signal() syscall.Signal
	}

	// Runner executes processes. The zero value runs in the current working
	// directory with the inherited environment, logs nowhere and writes
	// diagnostics to os.Stderr.
	Runner struct {
		// Dir is the working directory of started processes.
		Dir string
		// Env, when non-nil, replaces the inherited environment.
		Env []string
		// Diag receives the framed stderr of failed careful calls.
		Diag io.Writer
		// Logger, when set, receives a debug entry per invocation.
		Logger *log.Logger
	}
)

// Error implements the error interface.
func (e *FailureError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("return code: %d (%s): %s", e.Code, e.Signal, QuoteArgs(e.Args))
	}
	return fmt.Sprintf("return code: %d: %s", e.Code, QuoteArgs(e.Args))
}

// Unwrap returns ErrProcessFailed for errors.Is() compatibility.
func (e *FailureError) Unwrap() error { return ErrProcessFailed }

// Call runs args with the zero Runner. See Runner.Call.
func Call(ctx context.Context, args []string) (*Result, error) {
	return (&Runner{}).Call(ctx, args)
}

// CarefulCall runs args with a Runner writing diagnostics to diag. See
// Runner.CarefulCall.
func CarefulCall(ctx context.Context, args []string, diag io.Writer) (*Result, error) {
	return (&Runner{Diag: diag}).CarefulCall(ctx, args)
}

// Call starts args[0] with args[1:], waits for it to exit and returns its
// captured stdout, stderr and exit code. A non-zero exit, including death by
// a signal, is not an error; failing to start the program or a canceled
// context is.
func (r *Runner) Call(ctx context.Context, args []string) (*Result, error) {
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}

	if r.Logger != nil {
		r.Logger.Debug("running", "argv", QuoteArgs(args), "dir", r.Dir)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = r.Dir
	if r.Env != nil {
		cmd.Env = r.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runErr != nil && ctx.Err() != nil {
		return &Result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: 1},
			fmt.Errorf("running %s: %w", args[0], ctx.Err())
	}

	result, err := extractExitCode(runErr, &stdout, &stderr)
	if err != nil {
		return result, fmt.Errorf("running %s: %w", args[0], err)
	}

	if r.Logger != nil {
		r.Logger.Debug("exited", "argv0", args[0], "code", result.ExitCode, "signal", result.Signal)
	}
	return result, nil
}

// CarefulCall is like Call but turns a non-zero exit into a *FailureError,
// after writing the captured stderr, framed by separator lines, to the
// Runner's diagnostic writer.
func (r *Runner) CarefulCall(ctx context.Context, args []string) (*Result, error) {
	result, err := r.Call(ctx, args)
	if err != nil {
		return result, err
	}
	if result.ExitCode.IsSuccess() {
		return result, nil
	}

	diag := r.Diag
	if diag == nil {
		diag = os.Stderr
	}
	writeFramed(diag, result.Stderr)

	return result, &FailureError{
		Args:   append([]string(nil), args...),
		Code:   result.ExitCode,
		Signal: result.Signal,
		Stderr: result.Stderr,
	}
}

// writeFramed writes text between two separator lines. Write errors are
// ignored: the diagnostic stream is best effort and the caller is already
// failing.
func writeFramed(w io.Writer, text string) {
	rule := strings.Repeat("#", separatorWidth)
	_, _ = fmt.Fprintf(w, "%s\n%s\n%s\n", rule, text, rule)
}

// extractExitCode determines the result of a finished command from the error
// returned by exec.Cmd.Run.
func extractExitCode(err error, stdout, stderr *bytes.Buffer) (*Result, error) {
	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(waitStatus); ok && ws.Signaled() {
			result.ExitCode = types.ExitCode(signalExitBase + int(ws.Signal()))
			result.Signal = ws.Signal().String()
			return result, nil
		}
		code := types.ExitCode(exitErr.ExitCode())
		if validateErr := code.Validate(); validateErr != nil {
			result.ExitCode = 1
			return result, fmt.Errorf("%w: %s", validateErr, exitErr)
		}
		result.ExitCode = code
		return result, nil
	}

	// Command not found, permission denied and the like.
	result.ExitCode = 1
	return result, err
}

// QuoteArgs renders an argument vector the way a POSIX shell would need it
// typed, for logs and error messages.
func QuoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		q, err := syntax.Quote(a, syntax.LangPOSIX)
		if err != nil {
			q = fmt.Sprintf("%q", a)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}
