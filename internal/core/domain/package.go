// Package domain contains the core domain model for manifest conversion.
package domain

import "fmt"

// PackageID identifies a package by name and version.
// Both fields are opaque strings; equality is exact string match.
type PackageID struct {
	Name    string
	Version string
}

// NewPackageID creates a PackageID from a name and version.
func NewPackageID(name, version string) PackageID {
	return PackageID{Name: name, Version: version}
}

// String returns the "<name>-<version>" form used for derivation names.
func (id PackageID) String() string {
	return fmt.Sprintf("%s-%s", id.Name, id.Version)
}
