package domain

// Command is one build or install step: an argument vector, possibly
// containing %{...}% interpolation templates resolved at build time.
type Command []string

// Manifest is the structured package metadata this core consumes.
// Parsing opam syntax into this shape is a prior pipeline step.
type Manifest struct {
	Name    string
	Version string

	// Depends and DepOpts are the hard and optional dependency formulas.
	Depends Formula[PackageAtom]
	DepOpts Formula[PackageAtom]

	// OS is the OS constraint formula, recorded for diagnostics only.
	OS Formula[OsTest]

	// DepExts lists external system dependencies with their filters.
	DepExts []DepExt

	// Build and Install are the command templates executed when the
	// generated expression is evaluated.
	Build   []Command
	Install []Command
}

// ID returns the package identity declared by the manifest.
func (m *Manifest) ID() PackageID {
	return PackageID{Name: m.Name, Version: m.Version}
}
