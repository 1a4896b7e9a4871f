// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/tidyfs/tidyfs/internal/checksum"
	"github.com/tidyfs/tidyfs/internal/issue"

	"github.com/spf13/cobra"
)

// stdinName selects standard input as the file to checksum.
const stdinName = "-"

func newSumCommand(app *App) *cobra.Command {
	var algo string

	cmd := &cobra.Command{
		Use:   "sum [-a ALGO] FILE...",
		Short: "Print file checksums",
		Long: `Print "DIGEST  FILE" for each file, in the format of md5sum and friends.
Use "-" to read standard input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.cfg.Checksum.Algorithm
			if algo != "" {
				parsed, err := checksum.ParseAlgorithm(algo)
				if err != nil {
					return err
				}
				a = parsed
			}

			for _, name := range args {
				var (
					sum string
					err error
				)
				if name == stdinName {
					sum, err = checksum.Reader(app.stdin, a)
				} else {
					sum, err = checksum.File(app.fs, name, a)
				}
				if err != nil {
					return issue.NewErrorContext().
						WithOperation("checksum file").
						WithResource(name).
						WithIssue(classify(err)).
						Wrap(err).
						BuildError()
				}
				fmt.Fprintf(app.stdout, "%s  %s\n", sum, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&algo, "algorithm", "a", "", "digest: md5, sha1, sha256, sha512, xxh64 (default from config, md5)")
	return cmd
}
