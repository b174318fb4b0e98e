// SPDX-License-Identifier: MPL-2.0

// Package config handles build configuration using Viper with TOML as the file format.
//
// Settings are layered, lowest precedence first: built-in defaults, the user
// configuration file (~/.config/meow/config.toml or the platform equivalent),
// the [tool.meow] table of the project's pyproject.toml, an explicit --config
// file, and finally MEOW_* environment variables (plus SOURCE_DATE_EPOCH).
//
// Every file layer is validated against a CUE schema (config_schema.cue)
// before it is merged, so type errors point at the offending key.
package config
