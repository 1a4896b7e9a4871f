// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/tidyfs/tidyfs/internal/perm"

	"github.com/spf13/cobra"
)

func newPermCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "perm PATH...",
		Short: "Print owner, group and other permission digits",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				t, err := perm.Unix(app.fs, p)
				if err != nil {
					return err
				}
				fmt.Fprintf(app.stdout, "%s  %s\n", t, p)
			}
			return nil
		},
	}
}
