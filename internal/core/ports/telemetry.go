package ports

import "context"

// Telemetry records progress of package conversions as vertices.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts recording a new vertex for the named unit of work.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded unit of work.
type Vertex interface {
	// Log records a progress message associated with this vertex.
	Log(msg string)

	// Complete marks the vertex as finished, successfully or with an
	// error.
	Complete(err error)
}
