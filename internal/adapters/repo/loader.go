// Package repo loads staged package manifests from a repository
// directory.
//
// The staging layout is one directory per package version:
//
//	<root>/<name>.<version>/manifest.yaml
//	<root>/<name>.<version>/url.yaml   (optional)
//	<root>/<name>.<version>/files/     (optional extra files)
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.opnix.dev/opnix/internal/core/domain"
	"go.opnix.dev/opnix/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	manifestFile  = "manifest.yaml"
	urlFile       = "url.yaml"
	extraFilesDir = "files"
)

// Loader implements ports.ManifestLoader over a repository directory.
type Loader struct {
	root string
	log  ports.Logger
}

// NewLoader creates a loader rooted at the given repository directory.
func NewLoader(root string, log ports.Logger) *Loader {
	return &Loader{root: filepath.Clean(root), log: log}
}

// SetRoot changes the repository directory.
func (l *Loader) SetRoot(root string) {
	l.root = filepath.Clean(root)
}

// Load reads the staged manifest and optional url file for one package.
func (l *Loader) Load(id domain.PackageID) (*domain.ConversionInput, error) {
	dir := filepath.Join(l.root, fmt.Sprintf("%s.%s", id.Name, id.Version))
	manifestPath := filepath.Join(dir, manifestFile)

	manifest, err := l.loadManifest(manifestPath, id)
	if err != nil {
		return nil, err
	}

	in := &domain.ConversionInput{
		Manifest:     manifest,
		ManifestPath: manifestPath,
	}

	url, err := loadURL(filepath.Join(dir, urlFile))
	if err != nil {
		return nil, err
	}
	in.URL = url

	filesPath := filepath.Join(dir, extraFilesDir)
	if info, err := os.Stat(filesPath); err == nil && info.IsDir() {
		in.ExtraFilesPath = filesPath
	}

	return in, nil
}

func (l *Loader) loadManifest(path string, id domain.PackageID) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the configured repository root.
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "failed to read manifest"), "path", path)
	}

	var dto manifestDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "failed to parse manifest"), "path", path),
			"parse_error", err.Error())
	}

	if dto.Name == "" || dto.Version == "" {
		l.log.Warn(fmt.Sprintf("manifest %s omits name or version, using staging directory identity", path))
	}
	if dto.Name == "" {
		dto.Name = id.Name
	}
	if dto.Version == "" {
		dto.Version = id.Version
	}
	if dto.Name != id.Name || dto.Version != id.Version {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "manifest identity mismatch"), "expected", id.String()),
			"declared", dto.Name+"-"+dto.Version)
	}

	m := &domain.Manifest{
		Name:    dto.Name,
		Version: dto.Version,
		Depends: toFormula(dto.Depends, toPackageAtom),
		DepOpts: toFormula(dto.DepOpts, toPackageAtom),
		OS:      toFormula(dto.OS, toOsTest),
		Build:   toCommands(dto.Build),
		Install: toCommands(dto.Install),
	}
	for _, d := range dto.DepExts {
		m.DepExts = append(m.DepExts, domain.DepExt{
			Names:  d.Names,
			Filter: toFormula(d.Filter, toEnvTest),
		})
	}
	return m, nil
}

func loadURL(path string) (*domain.URLRecord, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the configured repository root.
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read url file"), "path", path)
	}

	var dto urlDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "failed to parse url file"), "path", path),
			"parse_error", err.Error())
	}

	record := &domain.URLRecord{
		Backend:  dto.Backend,
		Address:  dto.Address,
		Fragment: dto.Fragment,
	}
	for _, c := range dto.Checksums {
		record.Checksums = append(record.Checksums, domain.ParseChecksum(c))
	}
	return record, nil
}

// toFormula converts a DTO tree into a domain formula. A nil pointer
// or an all-empty node is the empty formula.
func toFormula[A, T any](dto *formulaDTO[A], atom func(A) T) domain.Formula[T] {
	if dto == nil {
		return domain.EmptyFormula[T]()
	}
	switch {
	case dto.Atom != nil:
		return domain.AtomFormula(atom(*dto.Atom))
	case dto.Block != nil:
		return domain.BlockFormula(toFormula(dto.Block, atom))
	case len(dto.And) > 0:
		return domain.AndAll(toFormulas(dto.And, atom))
	case len(dto.Or) > 0:
		return domain.OrAll(toFormulas(dto.Or, atom))
	default:
		return domain.EmptyFormula[T]()
	}
}

func toFormulas[A, T any](dtos []formulaDTO[A], atom func(A) T) []domain.Formula[T] {
	fs := make([]domain.Formula[T], len(dtos))
	for i := range dtos {
		fs[i] = toFormula(&dtos[i], atom)
	}
	return fs
}

func toPackageAtom(dto pkgAtomDTO) domain.PackageAtom {
	a := domain.PackageAtom{Name: dto.Name, Constraint: dto.Constraint}
	for _, f := range dto.Flags {
		a.Flags = append(a.Flags, domain.Flag(f))
	}
	return a
}

func toOsTest(dto osTestDTO) domain.OsTest {
	return domain.OsTest{Name: dto.Name, Negate: dto.Negate}
}

func toEnvTest(dto envTestDTO) domain.EnvTest {
	return domain.EnvTest{Var: dto.Var, Value: dto.Value, Negate: dto.Negate}
}

func toCommands(raw [][]string) []domain.Command {
	if len(raw) == 0 {
		return nil
	}
	cmds := make([]domain.Command, len(raw))
	for i, c := range raw {
		cmds[i] = domain.Command(c)
	}
	return cmds
}

var _ ports.ManifestLoader = (*Loader)(nil)
