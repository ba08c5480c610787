// Package cli provides command-line interface setup and configuration
// for ws. It handles flag parsing, command creation, credential lookup
// and turning viper configuration into runtime settings.
package cli
