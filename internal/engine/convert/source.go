package convert

import (
	"strings"

	"go.opnix.dev/opnix/internal/core/domain"
	"go.trai.ch/zerr"
)

// ResolveSource classifies a raw fetch descriptor into a supported
// source shape. Resolution is deterministic: identical input always
// yields the identical descriptor or the identical error kind.
func ResolveSource(rec *domain.URLRecord) (domain.SourceDescriptor, error) {
	// Version-control backends are never representable, whatever the
	// other fields say.
	switch rec.Backend {
	case "git", "hg", "darcs":
		return nil, zerr.With(domain.ErrUnsupportedSource, "reason", rec.Backend)
	}

	if rec.Fragment != "" {
		return nil, zerr.With(
			zerr.With(domain.ErrUnsupportedSource, "reason", "fragment not supported"),
			"fragment", rec.Fragment)
	}

	switch rec.Backend {
	case "file", "local", "":
		return domain.LocalPath{Path: strings.TrimPrefix(rec.Address, "file://")}, nil
	default:
		if len(rec.Checksums) == 0 {
			return nil, zerr.With(
				zerr.With(domain.ErrUnsupportedSource, "reason", "checksum required"),
				"address", rec.Address)
		}
		return domain.RemoteArchive{
			Address:   stripBackendPrefix(rec.Address, rec.Backend),
			Checksums: rec.Checksums,
		}, nil
	}
}

// stripBackendPrefix removes a "<backend>+" transport prefix from the
// address, e.g. "http+https://host/x" becomes "https://host/x".
func stripBackendPrefix(address, backend string) string {
	return strings.TrimPrefix(address, backend+"+")
}
