// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Values are layered as built-in defaults, then config.cue, then TIDYFS_*
// environment variables (TIDYFS_LOG_LEVEL overrides log.level). The file is
// looked up in the platform config directory (~/.config/tidyfs on Linux,
// ~/Library/Application Support/tidyfs on macOS, %APPDATA%\tidyfs on
// Windows) and then in the working directory, unless an explicit path is
// given. Files are validated against the embedded schema in config_schema.cue.
package config
