// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/tidyfs/tidyfs/internal/fswalk"

	"github.com/spf13/cobra"
)

func newWalkCommand(app *App) *cobra.Command {
	var (
		sorted  bool
		exclude []string
	)

	cmd := &cobra.Command{
		Use:   "walk ROOT",
		Short: "List every file and directory under ROOT",
		Long: `List the absolute path of every file and directory under ROOT, the root
itself excluded. With --sort entries are printed deepest first, the order
normpath processes them in.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := fswalk.WithExclude(exclude...)

			if sorted {
				paths, err := fswalk.Candidates(app.fs, args[0], opts)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintln(app.stdout, p)
				}
				return nil
			}

			for p, err := range fswalk.Walk(app.fs, args[0], opts) {
				if err != nil {
					return err
				}
				fmt.Fprintln(app.stdout, p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&sorted, "sort", false, "print deepest entries first")
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "doublestar glob of root-relative paths to skip (repeatable)")
	return cmd
}
