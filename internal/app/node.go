package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opnix.dev/opnix/internal/adapters/cache"              //nolint:depguard // Wired in app layer
	"go.opnix.dev/opnix/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.opnix.dev/opnix/internal/adapters/repo"               //nolint:depguard // Wired in app layer
	"go.opnix.dev/opnix/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.opnix.dev/opnix/internal/core/ports"
	"go.opnix.dev/opnix/internal/engine/convert"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			repo.NodeID,
			convert.NodeID,
			cache.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}

			synth, err := graft.Dep[*convert.Synthesizer](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.HashVerifier](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, synth, verifier, telemetry, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}
