// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for tidyfs.
//
// The root command loads configuration and the shared logger before any
// subcommand runs; subcommands are thin adapters over the internal packages
// and report failures through issue.ActionableError.
package cmd
