package ports

import (
	"context"
	"io"
)

// Fetcher retrieves the content behind a source address. It is consulted
// only by the checksum cache's online-mode miss path.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch opens the content at the given address for reading.
	// The caller owns the returned reader and must close it.
	Fetch(ctx context.Context, address string) (io.ReadCloser, error)
}
