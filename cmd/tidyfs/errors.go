// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"

	"github.com/tidyfs/tidyfs/internal/checksum"
	"github.com/tidyfs/tidyfs/internal/issue"
	"github.com/tidyfs/tidyfs/internal/normalize"
	"github.com/tidyfs/tidyfs/internal/normpath"
	"github.com/tidyfs/tidyfs/internal/process"
)

// guideStyle lets glamour pick a style for the terminal, or plain text when
// stderr is not one.
const guideStyle = "auto"

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// classify maps an error to the guide that helps with it, or zero.
func classify(err error) issue.Id {
	if id, ok := issue.IssueOf(err); ok {
		return id
	}

	switch {
	case errors.Is(err, normalize.ErrInconsistent):
		return issue.InternalConsistencyId
	case errors.Is(err, normpath.ErrPrecondition),
		errors.Is(err, normalize.ErrUnnamedRune),
		errors.Is(err, normalize.ErrInvalidUTF8):
		return issue.PreconditionViolatedId
	case errors.Is(err, checksum.ErrUnknownAlgorithm):
		return issue.UnknownAlgorithmId
	case errors.Is(err, exec.ErrNotFound):
		return issue.ProgramNotFoundId
	case errors.Is(err, process.ErrProcessFailed):
		return issue.ProcessFailedId
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId
	case errors.Is(err, fs.ErrNotExist):
		return issue.FileNotFoundId
	default:
		return 0
	}
}

// reportError prints err and, in verbose mode, the matching guide. An
// ExitError without a cause was already reported by the command.
func (a *App) reportError(w io.Writer, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))

	id := classify(err)
	if id == 0 {
		return
	}
	if !a.verbose {
		fmt.Fprintln(w, SubtitleStyle.Render("Run with --verbose for troubleshooting steps."))
		return
	}
	if guide := issue.Get(id); guide != nil {
		if rendered, renderErr := guide.Render(guideStyle); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
}
