// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/tidyfs/tidyfs/internal/normalize"

	"github.com/spf13/cobra"
)

func newNormalizeCommand(app *App) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "normalize STRING...",
		Short: "Print the normalized form of each argument",
		Long: `Print the normalized form of each argument on its own line.

Letters are lowercased, spaces become "_", and every character outside
a-z, 0-9 and "/_-." is replaced by its Unicode name wrapped in "_":

  'Café'  ->  caf_latin_small_letter_e_with_acute_`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unchanged := true
			for _, s := range args {
				out, err := normalize.Normalize(s)
				if err != nil {
					return err
				}
				unchanged = unchanged && out == s
				if !check {
					fmt.Fprintln(app.stdout, out)
				}
			}
			if check && !unchanged {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "print nothing; exit 1 unless every argument is already normalized")
	return cmd
}
