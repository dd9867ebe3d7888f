package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opnix.dev/opnix/internal/core/domain"
)

func TestDependencyMap_InitPackage(t *testing.T) {
	d := NewDependencyMap()
	id := domain.NewPackageID("foo", "1.0")

	_, ok := d.Requirements(id)
	assert.False(t, ok)

	d.InitPackage(id)
	reqs, ok := d.Requirements(id)
	assert.True(t, ok)
	assert.Empty(t, reqs)

	// Re-initializing must not clear recorded requirements.
	d.Record(id, domain.Requirement{Importance: domain.Required, Dependency: domain.OpamPackageDependency{Name: "bar"}})
	d.InitPackage(id)
	reqs, ok = d.Requirements(id)
	require.True(t, ok)
	assert.Len(t, reqs, 1)
}

func TestDependencyMap_RecordPrepends(t *testing.T) {
	d := NewDependencyMap()
	id := domain.NewPackageID("foo", "1.0")
	d.InitPackage(id)

	d.Record(id, domain.Requirement{Importance: domain.Required, Dependency: domain.OpamPackageDependency{Name: "first"}})
	d.Record(id, domain.Requirement{Importance: domain.Optional, Dependency: domain.OpamPackageDependency{Name: "second"}})

	reqs, ok := d.Requirements(id)
	require.True(t, ok)
	require.Len(t, reqs, 2)
	assert.Equal(t, domain.OpamPackageDependency{Name: "second"}, reqs[0].Dependency)
	assert.Equal(t, domain.OpamPackageDependency{Name: "first"}, reqs[1].Dependency)
}

func TestDependencyMap_Render(t *testing.T) {
	d := NewDependencyMap()
	foo := domain.NewPackageID("foo", "1.0")
	bar := domain.NewPackageID("bar", "2.0")
	d.InitPackage(foo)
	d.InitPackage(bar)
	d.Record(foo, domain.Requirement{Importance: domain.Required, Dependency: domain.NativeDependency{Name: "unzip"}})

	out := d.Render()
	// Sorted by identity: bar before foo.
	assert.Regexp(t, `(?s)bar-2\.0:.*foo-1\.0:`, out)
	assert.Contains(t, out, "required native:unzip")
}
