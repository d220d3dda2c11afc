// Package application provides the application interface for mirror commands.
//
// The Application interface is the contract between the CLI's App and the
// command packages. Commands accept it instead of the concrete App so they
// can be tested with Mock.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    settings := app.Comparison()
//	    cmd := &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            m, err := comparison.Run(cmd.Context(), settings, app.Logger())
//	            if err != nil {
//	                return err
//	            }
//	            // ... render m
//	            return nil
//	        },
//	    }
//	    settings.AddFlags(cmd.Flags())
//	    return cmd
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/mirror/internal/cmd/comparison"
)

// Application provides what commands need from the running CLI.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json,
	// yaml, wide, text, markdown) or "" to auto-detect.
	OutputFormat() string

	// Comparison returns the comparison settings of the loaded profile.
	// The value is a copy; commands bind their flags to it.
	Comparison() comparison.Settings

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
