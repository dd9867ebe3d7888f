// Package convert implements the manifest-to-build-expression engine:
// dependency classification, per-package input accumulation, source
// descriptor resolution and expression synthesis.
package convert

import (
	"sort"

	"go.opnix.dev/opnix/internal/core/domain"
)

// InputMap accumulates requirement edges for a single package
// conversion, merging duplicate names by importance. It is created
// empty per package, consumed once by the synthesizer, then discarded.
type InputMap struct {
	entries map[string]domain.Importance
}

// NewInputMap returns an empty input map.
func NewInputMap() *InputMap {
	return &InputMap{entries: make(map[string]domain.Importance)}
}

// Add merges an importance for a name. An existing Required entry is
// never downgraded, whatever the new importance; otherwise the new
// entry replaces the old one. First Required wins.
func (m *InputMap) Add(name string, imp domain.Importance) {
	if existing, ok := m.entries[name]; ok && existing == domain.Required {
		return
	}
	m.entries[name] = imp
}

// Importance returns the merged importance for a name.
func (m *InputMap) Importance(name string) (domain.Importance, bool) {
	imp, ok := m.entries[name]
	return imp, ok
}

// Names returns all accumulated names in sorted order.
func (m *InputMap) Names() []string {
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of distinct names accumulated.
func (m *InputMap) Len() int {
	return len(m.entries)
}
