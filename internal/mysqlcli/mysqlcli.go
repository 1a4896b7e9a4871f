// SPDX-License-Identifier: MPL-2.0

// Package mysqlcli runs SQL through the mysql command-line client.
//
// It exists for scripts that already depend on the client being installed
// and only need tab-separated rows back; it is not a database abstraction.
package mysqlcli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tidyfs/tidyfs/internal/process"
)

// DefaultBinary is the client program used when Params.Binary is empty.
const DefaultBinary = "mysql"

// ErrMissingParam is the sentinel error wrapped by MissingParamError.
var ErrMissingParam = errors.New("missing connection parameter")

type (
	// Params are the explicit connection parameters of a Client.
	Params struct {
		// Binary is the client program; defaults to DefaultBinary.
		Binary string
		// Host is the server host name or address.
		Host string
		// Port is optional; when set the client is forced onto TCP.
		Port string
		// Database is the default schema for queries.
		Database string
		// User is the account name.
		User string
		// Password is passed via --password; an empty value is sent as is.
		Password string
	}

	// MissingParamError names a required connection parameter that was empty.
	MissingParamError struct {
		Name string
	}

	// Client executes queries with fixed connection parameters.
	Client struct {
		params Params
		runner *process.Runner
	}
)

// Error implements the error interface.
func (e *MissingParamError) Error() string {
	return fmt.Sprintf("missing connection parameter %q", e.Name)
}

// Unwrap returns ErrMissingParam for errors.Is() compatibility.
func (e *MissingParamError) Unwrap() error { return ErrMissingParam }

// Validate checks that host, database and user are set.
func (p Params) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Host) == "" {
		errs = append(errs, &MissingParamError{Name: "host"})
	}
	if strings.TrimSpace(p.Database) == "" {
		errs = append(errs, &MissingParamError{Name: "database"})
	}
	if strings.TrimSpace(p.User) == "" {
		errs = append(errs, &MissingParamError{Name: "user"})
	}
	return errors.Join(errs...)
}

// New creates a Client. runner may be nil to use a default process.Runner.
func New(params Params, runner *process.Runner) (*Client, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.Binary == "" {
		params.Binary = DefaultBinary
	}
	if runner == nil {
		runner = &process.Runner{}
	}
	return &Client{params: params, runner: runner}, nil
}

// Args returns the client argument vector for sql.
func (c *Client) Args(sql string) []string {
	args := []string{
		c.params.Binary,
		"-u", c.params.User,
		"-h" + c.params.Host,
	}
	if c.params.Port != "" {
		args = append(args, "-P"+c.params.Port, "--protocol=TCP")
	}
	return append(args,
		"--password="+c.params.Password,
		"-D"+c.params.Database,
		"--skip-column-names",
		"-e", sql,
	)
}

// Query runs sql and returns the result rows split on tabs, along with the
// client's stderr (warnings such as the insecure-password notice). A
// non-zero client exit yields a *process.FailureError.
func (c *Client) Query(ctx context.Context, sql string) (rows [][]string, stderr string, err error) {
	result, err := c.runner.CarefulCall(ctx, c.Args(sql))
	if err != nil {
		return nil, "", fmt.Errorf("mysql query on %s/%s: %w", c.params.Host, c.params.Database, err)
	}
	return ParseRows(result.Stdout), result.Stderr, nil
}

// ParseRows splits batch-mode client output into rows and columns.
func ParseRows(out string) [][]string {
	out = strings.TrimRight(out, "\r\n")
	if out == "" {
		return nil
	}
	lines := strings.Split(out, "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.Split(strings.TrimSuffix(line, "\r"), "\t"))
	}
	return rows
}
