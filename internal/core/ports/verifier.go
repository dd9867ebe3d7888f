package ports

import (
	"context"

	"go.opnix.dev/opnix/internal/core/domain"
)

// HashVerifier resolves a (address, declared checksum) pair to a
// verified strong hash, consulting a persisted cache.
//
// In online mode a cache miss triggers a fetch and hash computation; in
// offline mode a miss is terminal (domain.ErrNotCached). A declared
// checksum that disagrees with the fetched content yields
// domain.ErrChecksumMismatch and must never be silently substituted.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type HashVerifier interface {
	// Verify returns the verified sha256 hash (hex) for the content at
	// address with the given declared checksum.
	Verify(ctx context.Context, address string, declared domain.Checksum) (string, error)
}
