// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"tidyfs": Execute,
	})
}

// TestScripts runs the CLI scripts in testdata against the tidyfs command.
func TestScripts(t *testing.T) {
	t.Parallel()

	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			// Keep scripts away from the user's real configuration.
			env.Setenv("TIDYFS_CONFIG_DIR", filepath.Join(env.WorkDir, ".config", "tidyfs"))
			return nil
		},
		ContinueOnError: true,
	})
}
