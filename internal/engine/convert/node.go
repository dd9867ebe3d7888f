package convert

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opnix.dev/opnix/internal/adapters/cache"  //nolint:depguard // Wired in engine wiring
	"go.opnix.dev/opnix/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.opnix.dev/opnix/internal/core/domain"
	"go.opnix.dev/opnix/internal/core/ports"
)

// NodeID is the unique identifier for the synthesizer Graft node.
const NodeID graft.ID = "engine.synthesizer"

func init() {
	graft.Register(graft.Node[*Synthesizer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cache.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Synthesizer, error) {
			verifier, err := graft.Dep[ports.HashVerifier](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			classifier := NewClassifier(domain.DefaultTargetEnv(), log)
			return NewSynthesizer(classifier, verifier, NewDependencyMap(), log), nil
		},
	})
}
