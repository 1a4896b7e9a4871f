// SPDX-License-Identifier: MPL-2.0

package normpath

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidyfs/tidyfs/internal/fswalk"
	"github.com/tidyfs/tidyfs/internal/normalize"
	"github.com/tidyfs/tidyfs/pkg/fspath"
	"github.com/tidyfs/tidyfs/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

const (
	// ModePlan only computes and reports the mapping.
	ModePlan Mode = "plan"
	// ModeApply also moves every entry to its normalized destination.
	ModeApply Mode = "apply"
)

type (
	// Mode selects between planning and applying.
	Mode string

	// Move maps one source entry to its normalized destination.
	Move struct {
		Source      string `json:"source" yaml:"source" toml:"source"`
		Destination string `json:"destination" yaml:"destination" toml:"destination"`
		IsDir       bool   `json:"is_dir" yaml:"is_dir" toml:"is_dir"`
	}

	// Collision lists sources that normalize to the same destination where at
	// least one of them is not a directory.
	Collision struct {
		Destination string   `json:"destination" yaml:"destination" toml:"destination"`
		Sources     []string `json:"sources" yaml:"sources" toml:"sources"`
	}

	// Plan is the ordered list of moves for one root, deepest entries first.
	Plan struct {
		Root       string      `json:"root" yaml:"root" toml:"root"`
		Dest       string      `json:"dest" yaml:"dest" toml:"dest"`
		Moves      []Move      `json:"moves" yaml:"moves" toml:"moves"`
		Collisions []Collision `json:"collisions,omitempty" yaml:"collisions,omitempty" toml:"collisions,omitempty"`
	}

	// Config configures a Normalizer. Zero values select the OS filesystem,
	// plan mode, no excludes, no reporter and a discarding logger.
	Config struct {
		Fs       afero.Fs
		Mode     Mode
		Exclude  []string
		Reporter Reporter
		Logger   *log.Logger
		// OnApplied, when set, is called after each move in apply mode.
		OnApplied func(done, total int)
	}

	// Normalizer plans and applies normalized relocations.
	Normalizer struct {
		fs        afero.Fs
		mode      Mode
		exclude   []string
		reporter  Reporter
		logger    *log.Logger
		onApplied func(done, total int)
	}
)

// ParseMode resolves a mode name. The empty string selects ModePlan.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModePlan, nil
	}
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate returns an error if m is not a known mode.
func (m Mode) Validate() error {
	switch m {
	case ModePlan, ModeApply:
		return nil
	default:
		return &InvalidModeError{Value: m}
	}
}

// String returns the mode name.
func (m Mode) String() string { return string(m) }

// New creates a Normalizer.
func New(cfg Config) (*Normalizer, error) {
	if cfg.Mode == "" {
		cfg.Mode = ModePlan
	}
	if err := cfg.Mode.Validate(); err != nil {
		return nil, err
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Normalizer{
		fs:        cfg.Fs,
		mode:      cfg.Mode,
		exclude:   cfg.Exclude,
		reporter:  cfg.Reporter,
		logger:    cfg.Logger,
		onApplied: cfg.OnApplied,
	}, nil
}

// Mode returns the configured mode.
func (n *Normalizer) Mode() Mode { return n.mode }

// Run plans the relocation of root into dest and, in apply mode, performs it.
// The plan is returned even when applying fails part way.
func (n *Normalizer) Run(ctx context.Context, root, dest string) (*Plan, error) {
	plan, err := n.Plan(ctx, root, dest)
	if err != nil {
		return plan, err
	}

	if n.mode != ModeApply {
		for _, c := range plan.Collisions {
			n.logger.Warn("normalized names collide", "destination", c.Destination, "sources", c.Sources)
		}
		return plan, nil
	}
	return plan, n.Apply(ctx, plan)
}

// Plan computes the destination of every entry under root and reports each
// move as it is computed. It does not modify the file system.
func (n *Normalizer) Plan(ctx context.Context, root, dest string) (*Plan, error) {
	absRoot, err := n.requireDir(root, ErrRootNotDir)
	if err != nil {
		return nil, err
	}
	absDest, err := n.requireDir(dest, ErrDestNotDir)
	if err != nil {
		return nil, err
	}

	candidates, err := fswalk.Candidates(n.fs, absRoot, fswalk.WithExclude(n.exclude...))
	if err != nil {
		return nil, err
	}
	n.logger.Debug("enumerated entries", "root", absRoot, "count", len(candidates))

	plan := &Plan{Root: absRoot, Dest: absDest, Moves: make([]Move, 0, len(candidates))}
	byDest := make(map[string][]int, len(candidates))

	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return plan, err
		}

		move, err := n.planEntry(absRoot, absDest, path)
		if err != nil {
			return plan, err
		}

		byDest[move.Destination] = append(byDest[move.Destination], len(plan.Moves))
		plan.Moves = append(plan.Moves, move)

		if n.reporter != nil {
			if err := n.reporter.Report(move); err != nil {
				return plan, fmt.Errorf("reporting %s: %w", move.Source, err)
			}
		}
	}

	plan.Collisions = collisions(plan.Moves, byDest)
	return plan, nil
}

func (n *Normalizer) planEntry(root, dest, path string) (Move, error) {
	info, err := n.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Move{}, precondition(path, ErrVanished)
		}
		return Move{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() && !info.IsDir() {
		return Move{}, precondition(path, ErrSpecialFile)
	}

	suffix, ok := fspath.Suffix(types.FilesystemPath(path), types.FilesystemPath(root))
	if !ok {
		return Move{}, precondition(path, ErrOutsideRoot)
	}

	normalized, err := normalize.Normalize(filepath.ToSlash(suffix))
	if err != nil {
		return Move{}, fmt.Errorf("normalizing %s: %w", path, err)
	}

	isDir := info.IsDir()
	if isDir && n.isSymlink(path) {
		// A link to a directory is relocated as the link itself.
		isDir = false
	}

	return Move{
		Source:      path,
		Destination: strings.TrimSuffix(dest, string(os.PathSeparator)) + filepath.FromSlash(normalized),
		IsDir:       isDir,
	}, nil
}

// requireDir absolutizes p and checks that it is an existing directory. A
// blank p is rejected rather than resolved to the working directory.
func (n *Normalizer) requireDir(p string, reason error) (string, error) {
	if err := types.FilesystemPath(p).Validate(); err != nil {
		return "", precondition(p, fmt.Errorf("%w: %w", reason, err))
	}
	abs, err := fspath.Abs(types.FilesystemPath(p))
	if err != nil {
		return "", err
	}
	clean := string(fspath.Clean(abs))

	info, err := n.fs.Stat(clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", precondition(clean, reason)
		}
		return "", fmt.Errorf("stat %s: %w", clean, err)
	}
	if !info.IsDir() {
		return "", precondition(clean, reason)
	}
	return clean, nil
}

func (n *Normalizer) isSymlink(path string) bool {
	lst, ok := n.fs.(afero.Lstater)
	if !ok {
		return false
	}
	info, lstatCalled, err := lst.LstatIfPossible(path)
	return err == nil && lstatCalled && info.Mode()&fs.ModeSymlink != 0
}

// collisions returns destinations claimed by more than one move, unless all
// claimants are directories (which simply merge).
func collisions(moves []Move, byDest map[string][]int) []Collision {
	var out []Collision
	for i, m := range moves {
		idx := byDest[m.Destination]
		if len(idx) < 2 || idx[0] != i {
			continue
		}
		allDirs := true
		sources := make([]string, 0, len(idx))
		for _, i := range idx {
			sources = append(sources, moves[i].Source)
			allDirs = allDirs && moves[i].IsDir
		}
		if !allDirs {
			out = append(out, Collision{Destination: m.Destination, Sources: sources})
		}
	}
	return out
}
