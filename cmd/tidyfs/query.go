// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tidyfs/tidyfs/internal/config"
	"github.com/tidyfs/tidyfs/internal/issue"
	"github.com/tidyfs/tidyfs/internal/mysqlcli"
	"github.com/tidyfs/tidyfs/internal/process"

	"github.com/spf13/cobra"
)

// passwordEnv holds the database password; it is never a flag or config key.
const passwordEnv = config.EnvPrefix + "_DATABASE_PASSWORD"

func newQueryCommand(app *App) *cobra.Command {
	var params mysqlcli.Params

	cmd := &cobra.Command{
		Use:   "query SQL",
		Short: "Run SQL through the mysql client",
		Long: `Run SQL through the mysql command-line client and print the rows
tab-separated. Connection flags default to the database section of the
config file; the password is read from ` + passwordEnv + `.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db := app.cfg.Database
			params.Binary = firstNonEmpty(params.Binary, db.Binary)
			params.Host = firstNonEmpty(params.Host, db.Host)
			params.Database = firstNonEmpty(params.Database, db.Name)
			params.User = firstNonEmpty(params.User, db.User)
			if params.Port == "" && db.Port != 0 {
				params.Port = strconv.Itoa(db.Port)
			}
			params.Password = os.Getenv(passwordEnv)

			client, err := mysqlcli.New(params, &process.Runner{Diag: app.stderr, Logger: app.logger})
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("connect to database").
					WithSuggestion("Pass --host, --db and --user, or set them in the database section of config.cue").
					WithIssue(issue.DatabaseQueryFailedId).
					Wrap(err).
					BuildError()
			}

			rows, stderr, err := client.Query(cmd.Context(), args[0])
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("run query").
					WithResource(params.Host + "/" + params.Database).
					WithIssue(issue.DatabaseQueryFailedId).
					Wrap(err).
					BuildError()
			}
			if stderr != "" {
				app.logger.Debug("mysql client stderr", "text", strings.TrimSpace(stderr))
			}

			for _, row := range rows {
				fmt.Fprintln(app.stdout, strings.Join(row, "\t"))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.Host, "host", "", "server host")
	f.StringVar(&params.Port, "port", "", "server TCP port")
	f.StringVar(&params.Database, "db", "", "database name")
	f.StringVar(&params.User, "user", "", "user name")
	f.StringVar(&params.Binary, "client", "", "mysql client program")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
