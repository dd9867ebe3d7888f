package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opnix.dev/opnix/internal/adapters/cache"
	"go.opnix.dev/opnix/internal/adapters/fetch"
	"go.opnix.dev/opnix/internal/adapters/logger"
	"go.opnix.dev/opnix/internal/adapters/repo"
	"go.opnix.dev/opnix/internal/adapters/telemetry"
	"go.opnix.dev/opnix/internal/app"
	"go.opnix.dev/opnix/internal/core/domain"
	"go.opnix.dev/opnix/internal/engine/convert"
)

func newCLIForTest(t *testing.T) *CLI {
	t.Helper()
	log := logger.New()
	loader := repo.NewLoader(".", log)
	store := cache.NewStore(t.TempDir(), false, fetch.NewClient(), log)
	classifier := convert.NewClassifier(domain.DefaultTargetEnv(), log)
	synth := convert.NewSynthesizer(classifier, store, convert.NewDependencyMap(), log)
	a := app.New(loader, synth, store, telemetry.NewNoOp(), log)
	return New(a)
}

func stageLocalPackage(t *testing.T, root string) {
	t.Helper()
	dir := filepath.Join(root, "foo.1.0")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	manifest := "name: foo\nversion: \"1.0\"\ndepends:\n  atom: {name: bar}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(manifest), 0o600))
}

func TestConvertCommand(t *testing.T) {
	t.Run("converts a staged package", func(t *testing.T) {
		repoDir := t.TempDir()
		outDir := t.TempDir()
		stageLocalPackage(t, repoDir)

		cli := newCLIForTest(t)
		cli.SetArgs([]string{"convert", "foo.1.0", "--repo", repoDir, "--out", outDir})
		require.NoError(t, cli.Execute(context.Background()))

		data, err := os.ReadFile(filepath.Join(outDir, "foo-1.0.nix"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "world.selection.bar")
	})

	t.Run("fails on a malformed package spec", func(t *testing.T) {
		cli := newCLIForTest(t)
		cli.SetArgs([]string{"convert", "nodot"})
		require.Error(t, cli.Execute(context.Background()))
	})

	t.Run("reports batch failure for a missing package", func(t *testing.T) {
		repoDir := t.TempDir()
		cli := newCLIForTest(t)
		cli.SetArgs([]string{"convert", "ghost.1.0", "--repo", repoDir, "--out", t.TempDir()})
		err := cli.Execute(context.Background())
		require.ErrorIs(t, err, app.ErrConversionFailed)
	})

	t.Run("shows help without arguments", func(t *testing.T) {
		cli := newCLIForTest(t)
		cli.SetArgs([]string{"convert"})
		assert.NoError(t, cli.Execute(context.Background()))
	})
}

func TestVersionCommand(t *testing.T) {
	cli := newCLIForTest(t)
	cli.SetArgs([]string{"version"})
	assert.NoError(t, cli.Execute(context.Background()))
}
