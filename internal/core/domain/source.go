package domain

import "strings"

// URLRecord is the raw fetch descriptor attached to a manifest, before
// classification into a supported source shape.
type URLRecord struct {
	// Backend is the fetch backend tag (http, rsync, file, local, git,
	// hg, darcs).
	Backend string

	// Address is the fetch address, possibly carrying a "<backend>+"
	// prefix (e.g. "http+https://...").
	Address string

	// Fragment is the optional sub-resource fragment. Any non-empty
	// fragment makes the record unconvertible.
	Fragment string

	// Checksums are the declared checksums, strongest first as listed.
	Checksums []Checksum
}

// Checksum is one declared checksum in "algo=value" form.
type Checksum struct {
	Algo  string
	Value string
}

// ParseChecksum splits an "algo=value" declaration. A bare value with no
// algo tag is an md5 checksum, matching the opam default.
func ParseChecksum(s string) Checksum {
	if algo, value, ok := strings.Cut(s, "="); ok {
		return Checksum{Algo: algo, Value: value}
	}
	return Checksum{Algo: "md5", Value: s}
}

// String returns the "algo=value" form.
func (c Checksum) String() string {
	return c.Algo + "=" + c.Value
}

// SourceDescriptor is a classified fetch descriptor: either a local path
// or a remote archive with at least one declared checksum.
// Version-control backends and fragment-carrying addresses are not
// representable; resolution fails on them instead.
type SourceDescriptor interface {
	isSource()
}

// LocalPath points at a source tree on the local filesystem.
type LocalPath struct {
	Path string
}

// RemoteArchive points at a fetchable archive. Checksums is never empty.
type RemoteArchive struct {
	Address   string
	Checksums []Checksum
}

func (LocalPath) isSource()     {}
func (RemoteArchive) isSource() {}
