// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"slices"

	"github.com/tidyfs/tidyfs/internal/issue"
	"github.com/tidyfs/tidyfs/internal/normpath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type normpathFlags struct {
	apply    bool
	exclude  []string
	format   string
	progress bool
}

func newNormpathCommand(app *App) *cobra.Command {
	var flags normpathFlags

	cmd := &cobra.Command{
		Use:   "normpath ROOT DEST",
		Short: "Relocate a tree under normalized names",
		Long: `Map every file and directory under ROOT to DEST plus its normalized path.

By default the mapping is only printed, one "SRC --> DST" line per entry,
deepest entries first. With --apply the files are moved, destination
directories are created and emptied source directories are removed.
Sockets, pipes and devices abort the run, as do two entries normalizing to
the same file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runNormpath(cmd.Context(), args[0], args[1], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.apply, "apply", false, "move entries instead of only printing the plan")
	cmd.Flags().StringArrayVar(&flags.exclude, "exclude", nil, "doublestar glob of root-relative paths to skip (repeatable)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "plan output format: text, json, yaml, toml")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "show a progress bar while applying")

	return cmd
}

func (a *App) runNormpath(ctx context.Context, root, dest string, flags normpathFlags) error {
	format, err := normpath.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	mode := a.cfg.Normpath.Mode
	if flags.apply {
		mode = normpath.ModeApply
	}

	cfg := normpath.Config{
		Fs:      a.fs,
		Mode:    mode,
		Exclude: slices.Concat(a.cfg.Normpath.Exclude, flags.exclude),
		Logger:  a.logger,
	}
	if format == normpath.FormatText {
		// Text lines stream while planning; other formats need the whole plan.
		cfg.Reporter = normpath.TextReporter(a.stdout)
	}

	var bar *progressbar.ProgressBar
	if flags.progress && mode == normpath.ModeApply {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(a.stderr),
			progressbar.OptionSetDescription("applying"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		cfg.OnApplied = func(done, total int) {
			bar.ChangeMax(total)
			_ = bar.Set(done)
		}
	}

	n, err := normpath.New(cfg)
	if err != nil {
		return err
	}

	plan, err := n.Run(ctx, root, dest)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return issue.NewErrorContext().
			WithOperation(string(mode) + " normalized paths").
			WithResource(root).
			WithSuggestion("Review the plan without --apply first").
			WithSuggestion("Use --exclude to skip entries that cannot be moved").
			WithIssue(classify(err)).
			Wrap(err).
			BuildError()
	}

	if format != normpath.FormatText {
		if err := normpath.WritePlan(a.stdout, plan, format); err != nil {
			return err
		}
	}

	a.logger.Info("normpath finished", "mode", mode, "moves", len(plan.Moves), "collisions", len(plan.Collisions))
	return nil
}
