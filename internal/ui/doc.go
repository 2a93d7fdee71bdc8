// Package ui provides terminal UI components for the areacfg CLI.
//
// This package uses Lipgloss to render polished terminal output for the
// generate command. Unlike the interactive wizard, these components follow
// a "run once and exit" pattern - they render output compellingly but don't
// require user interaction.
//
// # Architecture
//
// The UI package provides three main component types:
//
//   - Header: Command banner showing the area being generated and its parameters
//   - Result: Success/failure boxes with styled information
//   - ConfirmOverwrite: Warning box and prompt shown before replacing an
//     existing generated file
//
// Details and parameters are ordered slices rather than maps, so rendered
// output is identical run to run.
//
// # Logging Integration
//
// This package expects logging to be controlled via the AREACFG_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly. Set AREACFG_LOG_LEVEL to
// "debug", "info", "warn", or "error" to enable logging output.
package ui
