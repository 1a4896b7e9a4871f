// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tidyfs/tidyfs/internal/config"
	"github.com/tidyfs/tidyfs/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Fs     afero.Fs
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// App is the composition root of the CLI: every command handler receives
	// it and reads configuration, the logger and the I/O streams from it.
	App struct {
		Config ConfigProvider
		fs     afero.Fs
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		// Set from persistent flags.
		cfgFile   string
		verbose   bool
		logLevel  string
		logFormat string

		// Resolved by load before a subcommand runs.
		cfg       *config.Config
		logger    *log.Logger
		logCloser io.Closer
	}
)

// NewApp builds an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	return &App{
		Config: deps.Config,
		fs:     deps.Fs,
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		cfg:    config.DefaultConfig(),
		logger: logging.Discard(),
	}
}

// load resolves configuration and builds the logger. A broken config file is
// reported as a warning and the defaults are used instead.
func (a *App) load(ctx context.Context) error {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.cfgFile})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg

	if !a.verbose {
		a.verbose = cfg.UI.Verbose
	}

	opts := logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}
	switch {
	case a.logLevel != "":
		opts.Level = a.logLevel
	case a.verbose:
		opts.Level = "debug"
	}
	if a.logFormat != "" {
		opts.Format = logging.Format(a.logFormat)
	}

	logger, closer, err := logging.New(a.stderr, opts)
	if err != nil {
		return err
	}
	a.logger, a.logCloser = logger, closer
	a.logger.Debug("configuration loaded", "verbose", a.verbose)
	return nil
}

func (a *App) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
}
