// SPDX-License-Identifier: MPL-2.0

// Package config handles user-level lxdock configuration using Viper with CUE
// as the file format.
//
// Configuration is loaded from ~/.config/lxdock/config.cue (or XDG equivalent
// on Linux, ~/Library/Application Support/lxdock/config.cue on macOS,
// %APPDATA%\lxdock\config.cue on Windows). These are machine-wide defaults:
// the image server to pull from, the LXD socket path, UI verbosity and color
// scheme. Per-project settings live in the project's .lxdock.yml instead
// (see pkg/lxdockfile).
//
// Configuration validation is performed against a CUE schema
// (config_schema.cue) to ensure type safety and provide clear error messages
// for invalid configurations.
package config
