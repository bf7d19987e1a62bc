// Package cli constructs the issueboard command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives around the import command.
package cli
