package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opnix.dev/opnix/internal/adapters/fetch"
	"go.opnix.dev/opnix/internal/adapters/logger"
	"go.opnix.dev/opnix/internal/core/ports"
)

// NodeID is the unique identifier for the checksum cache Graft node.
const NodeID graft.ID = "adapter.hash_verifier"

const defaultDir = ".opnix/checksums"

func init() {
	graft.Register(graft.Node[ports.HashVerifier]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fetch.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.HashVerifier, error) {
			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(defaultDir, false, fetcher, log), nil
		},
	})
}
