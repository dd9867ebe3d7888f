package domain

// ConversionInput bundles everything the synthesizer needs for one
// package: the manifest, the optional raw fetch descriptor, and whether
// an auxiliary extra-files payload is present next to the manifest.
type ConversionInput struct {
	Manifest *Manifest

	// URL is nil when the package declares no source.
	URL *URLRecord

	// ManifestPath is the on-disk location of the manifest, embedded in
	// the generated expression's metadata payload.
	ManifestPath string

	// ExtraFilesPath is the path of the extra-files payload directory,
	// empty when none is present.
	ExtraFilesPath string
}

// HasExtraFiles reports whether an extra-files payload accompanies the
// manifest.
func (in *ConversionInput) HasExtraFiles() bool {
	return in.ExtraFilesPath != ""
}
