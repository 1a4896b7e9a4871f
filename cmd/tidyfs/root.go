// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tidyfs",
		Short: "Normalize, inspect and checksum file trees",
		Long: TitleStyle.Render("tidyfs") + SubtitleStyle.Render(" - normalize, inspect and checksum file trees") + `

tidyfs relocates directory trees under portable names built only from
lowercase letters, digits and "/_-.", spelling out every other character
by its Unicode name. It also bundles the small helpers such jobs need:
checksums, tree listings, permission digits and careful process calls.

` + SubtitleStyle.Render("Examples:") + `
  tidyfs normpath ~/Inbox /srv/archive            Show the planned renames
  tidyfs normpath --apply ~/Inbox /srv/archive    Perform them
  tidyfs normalize 'Café Menu.PDF'                Normalize a single name
  tidyfs sum -a sha256 disk.img                   Checksum a file
  tidyfs config show                              Show current configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
	}

	root.SetIn(app.stdin)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	flags := root.PersistentFlags()
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&app.cfgFile, "config", "", "config file (default is $HOME/.config/tidyfs/config.cue)")
	flags.StringVar(&app.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&app.logFormat, "log-format", "", "log format: text, json, logfmt")

	root.AddCommand(
		newNormpathCommand(app),
		newNormalizeCommand(app),
		newSumCommand(app),
		newWalkCommand(app),
		newPermCommand(app),
		newExecCommand(app),
		newQueryCommand(app),
		newConfigCommand(app),
		newVersionCommand(app),
	)

	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI with the process streams and exits with its status.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	root := NewRootCommand(app)

	err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			app.reportError(w, err)
		}),
	)
	app.close()
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
