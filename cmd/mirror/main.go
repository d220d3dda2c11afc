// Package main provides the entry point for the mirror CLI tool.
package main

import (
	"context"
	"os"

	_ "modernc.org/sqlite"

	"github.com/agentstation/mirror/cmd/mirror/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		application.Logger().Debug().Err(err).Msg("command failed")
		cancel()
		app.ExitOnError(err)
	}
}
