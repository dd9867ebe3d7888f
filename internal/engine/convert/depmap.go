package convert

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.opnix.dev/opnix/internal/core/domain"
)

// DependencyMap is the process-wide, append-only registry of every
// package's resolved requirement list. It exists for diagnostics only.
// The batch driver converts packages concurrently, so access is
// serialized with a mutex.
type DependencyMap struct {
	mu      sync.Mutex
	entries map[domain.PackageID][]domain.Requirement
}

// NewDependencyMap returns an empty dependency map.
func NewDependencyMap() *DependencyMap {
	return &DependencyMap{entries: make(map[domain.PackageID][]domain.Requirement)}
}

// InitPackage seeds an empty entry for the package if absent. It is
// idempotent and never overwrites an existing entry, so a conversion
// that fails later still leaves a (possibly partial) record.
func (d *DependencyMap) InitPackage(id domain.PackageID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.entries[id]; !ok {
		d.entries[id] = nil
	}
}

// Record prepends a requirement to the package's list.
func (d *DependencyMap) Record(id domain.PackageID, req domain.Requirement) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[id] = append([]domain.Requirement{req}, d.entries[id]...)
}

// Requirements returns a copy of the recorded list for a package and
// whether the package has an entry at all.
func (d *DependencyMap) Requirements(id domain.PackageID) ([]domain.Requirement, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	reqs, ok := d.entries[id]
	out := make([]domain.Requirement, len(reqs))
	copy(out, reqs)
	return out, ok
}

// Render produces a diagnostic dump of every recorded package. Packages
// are sorted by identity; within a package the most recent requirement
// comes first.
func (d *DependencyMap) Render() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]domain.PackageID, 0, len(d.entries))
	for id := range d.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Name != ids[j].Name {
			return ids[i].Name < ids[j].Name
		}
		return ids[i].Version < ids[j].Version
	})

	var b strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&b, "%s:\n", id)
		for _, req := range d.entries[id] {
			fmt.Fprintf(&b, "  %s %s\n", req.Importance, describeDependency(req.Dependency))
		}
	}
	return b.String()
}

func describeDependency(dep domain.Dependency) string {
	switch v := dep.(type) {
	case domain.NativeDependency:
		return "native:" + v.Name
	case domain.OpamPackageDependency:
		return "package:" + v.Name
	case domain.OsConditionDependency:
		return "os-condition"
	case domain.ExternalSystemDependencies:
		return fmt.Sprintf("depexts(%d entries)", len(v.Entries))
	case domain.PackageFormulaDependency:
		return "package-formula"
	default:
		return fmt.Sprintf("unknown(%T)", dep)
	}
}
