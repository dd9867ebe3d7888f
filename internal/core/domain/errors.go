package domain

import "go.trai.ch/zerr"

var (
	// ErrUnsupportedSource is returned when a fetch descriptor cannot be
	// converted (VCS backend, fragment, or missing checksum).
	ErrUnsupportedSource = zerr.New("unsupported source")

	// ErrInvalidManifest is returned when a package manifest is missing
	// or could not be loaded.
	ErrInvalidManifest = zerr.New("invalid package manifest")

	// ErrChecksumMismatch is returned when the declared and computed
	// checksums of a fetched archive disagree. It must never be
	// silently accepted or substituted.
	ErrChecksumMismatch = zerr.New("checksum mismatch")

	// ErrNotCached is returned in offline mode when no verified hash is
	// on record for an address.
	ErrNotCached = zerr.New("hash not cached")

	// ErrFilterEval is returned when a depext environment filter cannot
	// be evaluated. Callers treat it as a non-match.
	ErrFilterEval = zerr.New("filter evaluation failed")

	// ErrUnknownDependency guards exhaustive dependency dispatch against
	// a newly added kind.
	ErrUnknownDependency = zerr.New("unknown dependency kind")
)
