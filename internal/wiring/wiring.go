// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.opnix.dev/opnix/internal/adapters/cache"
	_ "go.opnix.dev/opnix/internal/adapters/fetch"
	_ "go.opnix.dev/opnix/internal/adapters/logger"
	_ "go.opnix.dev/opnix/internal/adapters/repo"
	_ "go.opnix.dev/opnix/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.opnix.dev/opnix/internal/app"
	_ "go.opnix.dev/opnix/internal/engine/convert"
)
