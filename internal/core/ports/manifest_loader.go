package ports

import "go.opnix.dev/opnix/internal/core/domain"

// ManifestLoader loads the structured conversion input for one package
// from the pipeline's staging area.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load returns the conversion input for the given package.
	// Returns an error wrapping domain.ErrInvalidManifest when the
	// manifest is missing or unparseable.
	Load(id domain.PackageID) (*domain.ConversionInput, error)
}
