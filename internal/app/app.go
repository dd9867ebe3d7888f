// Package app implements the application layer for opnix.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.opnix.dev/opnix/internal/adapters/nixexpr"
	"go.opnix.dev/opnix/internal/core/domain"
	"go.opnix.dev/opnix/internal/core/ports"
	"go.opnix.dev/opnix/internal/engine/convert"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ErrNoPackagesSpecified is returned when a conversion run names no
// packages.
var ErrNoPackagesSpecified = zerr.New("no packages specified")

// ErrConversionFailed is returned when at least one package in a batch
// failed to convert. The successful packages' output is still written.
var ErrConversionFailed = zerr.New("conversion failed")

const depsDumpFile = "dependencies.txt"

// RunRequest carries one batch conversion invocation.
type RunRequest struct {
	Packages []domain.PackageID
	RepoRoot string
	OutDir   string
	CacheDir string
	Offline  bool
	Jobs     int
}

// repoConfigurer is implemented by manifest loaders whose repository
// root can be pointed somewhere else.
type repoConfigurer interface {
	SetRoot(root string)
}

// cacheConfigurer is implemented by verifiers whose cache location and
// offline mode are runtime-configurable.
type cacheConfigurer interface {
	SetDir(dir string)
	SetOffline(offline bool)
}

// App represents the main application logic.
type App struct {
	loader      ports.ManifestLoader
	synthesizer *convert.Synthesizer
	verifier    ports.HashVerifier
	telemetry   ports.Telemetry
	log         ports.Logger
}

// New creates a new App instance.
func New(loader ports.ManifestLoader, synth *convert.Synthesizer, verifier ports.HashVerifier, telemetry ports.Telemetry, log ports.Logger) *App {
	return &App{
		loader:      loader,
		synthesizer: synth,
		verifier:    verifier,
		telemetry:   telemetry,
		log:         log,
	}
}

// Run converts the requested packages concurrently and writes one
// expression file per package plus a dependency dump into the output
// directory. A single package's failure aborts only that package;
// the batch reports failure at the end when any package failed.
func (a *App) Run(ctx context.Context, req RunRequest) error {
	if len(req.Packages) == 0 {
		return ErrNoPackagesSpecified
	}

	a.configure(req)

	if err := os.MkdirAll(req.OutDir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create output directory")
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var (
		mu       sync.Mutex
		failures []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, id := range req.Packages {
		g.Go(func() error {
			if err := a.convertOne(gctx, id, req.OutDir); err != nil {
				a.log.Error(zerr.With(err, "package", id.String()))
				mu.Lock()
				failures = append(failures, id.String())
				mu.Unlock()
			}
			return nil
		})
	}
	// Workers never return errors; Wait only propagates ctx cancellation.
	if err := g.Wait(); err != nil {
		return zerr.Wrap(err, "conversion batch interrupted")
	}

	if err := a.writeDepsDump(req.OutDir); err != nil {
		return err
	}

	if err := a.telemetry.Close(); err != nil {
		a.log.Warn(fmt.Sprintf("failed to close telemetry: %v", err))
	}

	if len(failures) > 0 {
		return zerr.With(ErrConversionFailed, "packages", strings.Join(failures, ", "))
	}
	return nil
}

func (a *App) configure(req RunRequest) {
	if c, ok := a.loader.(repoConfigurer); ok && req.RepoRoot != "" {
		c.SetRoot(req.RepoRoot)
	}
	if c, ok := a.verifier.(cacheConfigurer); ok {
		if req.CacheDir != "" {
			c.SetDir(req.CacheDir)
		}
		c.SetOffline(req.Offline)
	}
}

func (a *App) convertOne(ctx context.Context, id domain.PackageID, outDir string) error {
	_, vertex := a.telemetry.Record(ctx, "convert "+id.String())

	in, err := a.loader.Load(id)
	if err != nil {
		vertex.Complete(err)
		return err
	}
	vertex.Log("manifest loaded")

	node, err := a.synthesizer.Synthesize(ctx, in)
	if err != nil {
		vertex.Complete(err)
		return err
	}
	vertex.Log("expression synthesized")

	path := filepath.Join(outDir, id.String()+".nix")
	if err := os.WriteFile(path, []byte(nixexpr.Render(node)+"\n"), 0o600); err != nil {
		err = zerr.Wrap(err, "failed to write expression file")
		vertex.Complete(err)
		return err
	}

	vertex.Complete(nil)
	return nil
}

func (a *App) writeDepsDump(outDir string) error {
	dump := a.synthesizer.DepMap().Render()
	path := filepath.Join(outDir, depsDumpFile)
	if err := os.WriteFile(path, []byte(dump), 0o600); err != nil {
		return zerr.Wrap(err, "failed to write dependency dump")
	}
	return nil
}

// ParsePackageSpec splits a "name.version" argument into a package
// identity. The name runs up to the first dot; opam package names do
// not contain dots.
func ParsePackageSpec(s string) (domain.PackageID, error) {
	name, version, ok := strings.Cut(s, ".")
	if !ok || name == "" || version == "" {
		return domain.PackageID{}, zerr.With(zerr.New("invalid package spec, want name.version"), "spec", s)
	}
	return domain.NewPackageID(name, version), nil
}
