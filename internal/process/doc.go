// SPDX-License-Identifier: MPL-2.0

// Package process runs external programs and captures their output.
//
// Programs are started directly from an argument vector; no shell is
// involved, so arguments are never re-split or expanded. Call reports the
// exit code as data. CarefulCall treats a non-zero exit as a failure: the
// captured stderr is written to a diagnostic stream between two lines of 80
// '#' characters and a *FailureError carrying the exit code is returned.
//
// Calls block until the child exits. No timeout is applied; the context only
// lets a caller cancel a call it started.
package process
