// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/tidyfs/tidyfs/internal/process"

	"github.com/spf13/cobra"
)

func newExecCommand(app *App) *cobra.Command {
	var careful bool

	cmd := &cobra.Command{
		Use:   "exec [--careful] -- PROGRAM [ARG...]",
		Short: "Run a program and relay its output and exit code",
		Long: `Run PROGRAM with ARGs directly, without a shell, and relay its captured
output and exit code.

With --careful a non-zero exit is reported as an error and the program's
stderr is printed between two rows of 80 "#" characters.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &process.Runner{Diag: app.stderr, Logger: app.logger}

			call := runner.Call
			if careful {
				call = runner.CarefulCall
			}

			result, err := call(cmd.Context(), args)
			if result != nil {
				fmt.Fprint(app.stdout, result.Stdout)
			}

			var failure *process.FailureError
			switch {
			case errors.As(err, &failure):
				return &ExitError{Code: failure.Code, Err: err}
			case err != nil:
				return err
			}

			fmt.Fprint(app.stderr, result.Stderr)
			if !result.ExitCode.IsSuccess() {
				return &ExitError{Code: result.ExitCode}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&careful, "careful", false, "treat a non-zero exit as an error and frame its stderr")
	// Flags after PROGRAM belong to PROGRAM.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
