package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opnix.dev/opnix/internal/core/domain"
	"go.opnix.dev/opnix/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type edge struct {
	imp  domain.Importance
	name string
}

func collectSink(edges *[]edge) Sink {
	return func(imp domain.Importance, name string) {
		*edges = append(*edges, edge{imp: imp, name: name})
	}
}

func newClassifierForTest(t *testing.T) *Classifier {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return NewClassifier(domain.DefaultTargetEnv(), log)
}

func TestClassifier_SimpleKinds(t *testing.T) {
	c := newClassifierForTest(t)

	t.Run("native goes to the native sink", func(t *testing.T) {
		var native, pkgs []edge
		err := c.Classify(domain.Required, domain.NativeDependency{Name: "gmp"}, collectSink(&native), collectSink(&pkgs))
		require.NoError(t, err)
		assert.Equal(t, []edge{{domain.Required, "gmp"}}, native)
		assert.Empty(t, pkgs)
	})

	t.Run("opam package goes to the package sink", func(t *testing.T) {
		var native, pkgs []edge
		err := c.Classify(domain.Optional, domain.OpamPackageDependency{Name: "lwt"}, collectSink(&native), collectSink(&pkgs))
		require.NoError(t, err)
		assert.Empty(t, native)
		assert.Equal(t, []edge{{domain.Optional, "lwt"}}, pkgs)
	})

	t.Run("os condition produces no edges", func(t *testing.T) {
		var native, pkgs []edge
		dep := domain.OsConditionDependency{Formula: domain.AtomFormula(domain.OsTest{Name: "linux"})}
		err := c.Classify(domain.Required, dep, collectSink(&native), collectSink(&pkgs))
		require.NoError(t, err)
		assert.Empty(t, native)
		assert.Empty(t, pkgs)
	})
}

func TestClassifier_DepExts(t *testing.T) {
	c := newClassifierForTest(t)

	t.Run("matching filter includes its names at the incoming importance", func(t *testing.T) {
		var native []edge
		dep := domain.ExternalSystemDependencies{Entries: []domain.DepExt{
			{Names: []string{"gmp"}, Filter: domain.AtomFormula(domain.EnvTest{Var: "os-family", Value: "nixos"})},
			{Names: []string{"libgmp-dev"}, Filter: domain.AtomFormula(domain.EnvTest{Var: "os-family", Value: "debian"})},
		}}
		err := c.Classify(domain.Required, dep, collectSink(&native), nil)
		require.NoError(t, err)
		assert.Equal(t, []edge{{domain.Required, "gmp"}}, native)
	})

	t.Run("no match falls back to all names at optional", func(t *testing.T) {
		var native []edge
		dep := domain.ExternalSystemDependencies{Entries: []domain.DepExt{
			{Names: []string{"gmp-devel"}, Filter: domain.AtomFormula(domain.EnvTest{Var: "os-family", Value: "fedora"})},
			{Names: []string{"libgmp-dev"}, Filter: domain.AtomFormula(domain.EnvTest{Var: "os-family", Value: "debian"})},
		}}
		err := c.Classify(domain.Required, dep, collectSink(&native), nil)
		require.NoError(t, err)
		assert.Equal(t, []edge{
			{domain.Optional, "gmp-devel"},
			{domain.Optional, "libgmp-dev"},
		}, native)
	})

	t.Run("filter error counts as non-match", func(t *testing.T) {
		var native []edge
		dep := domain.ExternalSystemDependencies{Entries: []domain.DepExt{
			{Names: []string{"always"}, Filter: domain.EmptyFormula[domain.EnvTest]()},
			{Names: []string{"broken"}, Filter: domain.AtomFormula(domain.EnvTest{Var: "no-such-var", Value: "x"})},
		}}
		err := c.Classify(domain.Required, dep, collectSink(&native), nil)
		require.NoError(t, err)
		// The empty filter matches, so the fallback does not trigger.
		assert.Equal(t, []edge{{domain.Required, "always"}}, native)
	})
}

func TestClassifier_PackageFormula(t *testing.T) {
	c := newClassifierForTest(t)

	t.Run("or branches relax to optional", func(t *testing.T) {
		var pkgs []edge
		f := domain.AndFormula(
			domain.AtomFormula(domain.PackageAtom{Name: "bar"}),
			domain.OrFormula(
				domain.AtomFormula(domain.PackageAtom{Name: "zlib"}),
				domain.AtomFormula(domain.PackageAtom{Name: "zlib-ng"}),
			),
		)
		err := c.Classify(domain.Required, domain.PackageFormulaDependency{Formula: f}, nil, collectSink(&pkgs))
		require.NoError(t, err)
		assert.Equal(t, []edge{
			{domain.Required, "bar"},
			{domain.Optional, "zlib"},
			{domain.Optional, "zlib-ng"},
		}, pkgs)
	})

	t.Run("test-only atoms surface at optional", func(t *testing.T) {
		var pkgs []edge
		f := domain.AndFormula(
			domain.AtomFormula(domain.PackageAtom{Name: "bar"}),
			domain.AtomFormula(domain.PackageAtom{Name: "alcotest", Flags: []domain.Flag{domain.FlagWithTest}}),
		)
		err := c.Classify(domain.Required, domain.PackageFormulaDependency{Formula: f}, nil, collectSink(&pkgs))
		require.NoError(t, err)
		assert.Equal(t, []edge{
			{domain.Required, "bar"},
			{domain.Optional, "alcotest"},
		}, pkgs)
	})

	t.Run("post atoms never surface", func(t *testing.T) {
		var pkgs []edge
		f := domain.AtomFormula(domain.PackageAtom{Name: "later", Flags: []domain.Flag{domain.FlagPost}})
		err := c.Classify(domain.Required, domain.PackageFormulaDependency{Formula: f}, nil, collectSink(&pkgs))
		require.NoError(t, err)
		assert.Empty(t, pkgs)
	})

	t.Run("constraints do not affect classification", func(t *testing.T) {
		var pkgs []edge
		f := domain.AtomFormula(domain.PackageAtom{Name: "bar", Constraint: ">= 2.0"})
		err := c.Classify(domain.Required, domain.PackageFormulaDependency{Formula: f}, nil, collectSink(&pkgs))
		require.NoError(t, err)
		assert.Equal(t, []edge{{domain.Required, "bar"}}, pkgs)
	})
}
