// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and the Markdown guides shown
// with them when a command fails.
package issue
