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
	"syscall"

	"github.com/tidyfs/tidyfs/pkg/fspath"
	"github.com/tidyfs/tidyfs/pkg/types"

	"github.com/spf13/afero"
)

const (
	dirPerm         = 0o755
	createExclusive = os.O_WRONLY | os.O_CREATE | os.O_EXCL
)

// Apply performs the moves of plan in order. It refuses to start when the plan
// has collisions or when the destination lies inside the root. A failure part
// way leaves the moves already made in place.
func (n *Normalizer) Apply(ctx context.Context, plan *Plan) error {
	if len(plan.Collisions) > 0 {
		c := plan.Collisions[0]
		return precondition(c.Destination, fmt.Errorf("%w: %d sources", ErrCollision, len(c.Sources)))
	}
	root, dest := types.FilesystemPath(plan.Root), types.FilesystemPath(plan.Dest)
	if dest == root || fspath.HasStrictPrefix(dest, root) {
		return precondition(plan.Dest, ErrDestInsideRoot)
	}

	total := len(plan.Moves)
	for i, m := range plan.Moves {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		if m.IsDir {
			err = n.moveDir(m)
		} else {
			err = n.moveFile(m)
		}
		if err != nil {
			return err
		}

		n.logger.Debug("moved", "source", m.Source, "destination", m.Destination)
		if n.onApplied != nil {
			n.onApplied(i+1, total)
		}
	}
	return nil
}

func (n *Normalizer) moveDir(m Move) error {
	if err := n.fs.MkdirAll(m.Destination, dirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", m.Destination, err)
	}

	empty, err := afero.IsEmpty(n.fs, m.Source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return precondition(m.Source, ErrVanished)
		}
		return fmt.Errorf("reading %s: %w", m.Source, err)
	}
	if !empty {
		// Excluded entries stay behind.
		n.logger.Warn("source directory not empty, leaving it in place", "path", m.Source)
		return nil
	}
	if err := n.fs.Remove(m.Source); err != nil {
		return fmt.Errorf("removing %s: %w", m.Source, err)
	}
	return nil
}

func (n *Normalizer) moveFile(m Move) error {
	parent := filepath.Dir(m.Destination)
	if err := n.fs.MkdirAll(parent, dirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", parent, err)
	}

	exists, err := afero.Exists(n.fs, m.Destination)
	if err != nil {
		return fmt.Errorf("stat %s: %w", m.Destination, err)
	}
	if exists {
		return precondition(m.Destination, ErrDestExists)
	}

	err = n.fs.Rename(m.Source, m.Destination)
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.EXDEV) {
		return n.copyAndRemove(m)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return precondition(m.Source, ErrVanished)
	}
	return fmt.Errorf("renaming %s: %w", m.Source, err)
}

// copyAndRemove moves a file across devices.
func (n *Normalizer) copyAndRemove(m Move) (err error) {
	src, err := n.fs.Open(m.Source)
	if err != nil {
		return fmt.Errorf("opening %s: %w", m.Source, err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", m.Source, closeErr)
		}
	}()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", m.Source, err)
	}

	dst, err := n.fs.OpenFile(m.Destination, createExclusive, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", m.Destination, err)
	}
	if _, err = io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("copying %s: %w", m.Source, err)
	}
	if err = dst.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", m.Destination, err)
	}

	if err = n.fs.Remove(m.Source); err != nil {
		return fmt.Errorf("removing %s: %w", m.Source, err)
	}
	return nil
}
