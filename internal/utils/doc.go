// Package utils exposes reusable helpers consumed by the importer commands.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, and zap logging, plus small output
// and path utilities shared across the CLI.
package utils
