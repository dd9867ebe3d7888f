// Package main is the entry point for the opnix conversion tool.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.opnix.dev/opnix/cmd/opnix/commands"
	"go.opnix.dev/opnix/internal/app"
	_ "go.opnix.dev/opnix/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, app.ErrConversionFailed) {
			// Per-package failures are already logged with context.
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
