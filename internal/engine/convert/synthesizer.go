package convert

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.opnix.dev/opnix/internal/adapters/nixexpr"
	"go.opnix.dev/opnix/internal/core/domain"
	"go.opnix.dev/opnix/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// worldParam is the single context parameter of every generated
	// expression, exposing the sibling-package selection, the system
	// package set, the toolchain version and this tool itself.
	worldParam = "world"

	// indexToolPackage is the package manager's own index tool,
	// registered as an optional baseline input.
	indexToolPackage = "ocamlfind"

	// toolchainPackage is the language toolchain, registered as a
	// required baseline input through the ordinary sibling-package
	// path so install layout stays consistent across packages.
	toolchainPackage = "ocaml"

	// archiveTool is the native extraction tool required for .zip
	// sources.
	archiveTool = "unzip"
)

// installedRefPattern matches "<name>:installed" interpolation
// references inside command templates. A command that branches on the
// presence of a package implies an optional dependency on it.
var installedRefPattern = regexp.MustCompile(`([A-Za-z0-9_+.-]+):installed`)

// confOnlyPattern matches virtual, configuration-only package names
// that get no index tool input.
var confOnlyPattern = regexp.MustCompile(`^conf-`)

// Synthesizer assembles the final build expression for one package,
// populating a fresh per-package input context on each call.
type Synthesizer struct {
	classifier *Classifier
	verifier   ports.HashVerifier
	depMap     *DependencyMap
	log        ports.Logger
}

// NewSynthesizer creates a Synthesizer.
func NewSynthesizer(classifier *Classifier, verifier ports.HashVerifier, depMap *DependencyMap, log ports.Logger) *Synthesizer {
	return &Synthesizer{
		classifier: classifier,
		verifier:   verifier,
		depMap:     depMap,
		log:        log,
	}
}

// DepMap exposes the process-wide dependency registry for diagnostics.
func (s *Synthesizer) DepMap() *DependencyMap {
	return s.depMap
}

// packageContext is the per-package accumulator state: two input maps
// and an unpack override. It is constructed fresh for every conversion
// and discarded afterwards, never shared between packages.
type packageContext struct {
	id       domain.PackageID
	native   *InputMap
	packages *InputMap
}

func (s *Synthesizer) newContext(id domain.PackageID) *packageContext {
	return &packageContext{
		id:       id,
		native:   NewInputMap(),
		packages: NewInputMap(),
	}
}

// addNative is the sink for system-level names.
func (s *Synthesizer) addNative(pc *packageContext) Sink {
	return func(imp domain.Importance, name string) {
		pc.native.Add(name, imp)
		s.depMap.Record(pc.id, domain.Requirement{
			Importance: imp,
			Dependency: domain.NativeDependency{Name: name},
		})
	}
}

// addPackage is the sink for sibling-package names.
func (s *Synthesizer) addPackage(pc *packageContext) Sink {
	return func(imp domain.Importance, name string) {
		pc.packages.Add(name, imp)
		s.depMap.Record(pc.id, domain.Requirement{
			Importance: imp,
			Dependency: domain.OpamPackageDependency{Name: name},
		})
	}
}

// Synthesize builds the expression tree for one package. The input's
// manifest must be present; source and checksum failures propagate
// verbatim and abort only this package's conversion.
func (s *Synthesizer) Synthesize(ctx context.Context, in *domain.ConversionInput) (nixexpr.Node, error) {
	if in == nil || in.Manifest == nil {
		return nil, zerr.With(domain.ErrInvalidManifest, "path", manifestPath(in))
	}

	m := in.Manifest
	id := m.ID()
	s.depMap.InitPackage(id)

	pc := s.newContext(id)
	addNative := s.addNative(pc)
	addPackage := s.addPackage(pc)

	s.registerBaseline(m, addPackage)

	if err := s.classifyManifest(m, addNative, addPackage); err != nil {
		return nil, zerr.With(err, "package", id.String())
	}

	src, unpackCmd, err := s.resolveAndInfer(in, addNative)
	if err != nil {
		return nil, zerr.With(err, "package", id.String())
	}

	srcNode, err := s.sourceNode(ctx, src)
	if err != nil {
		return nil, zerr.With(err, "package", id.String())
	}

	return s.assemble(in, pc, srcNode, unpackCmd), nil
}

// registerBaseline adds the inputs every package gets: an optional
// dependency on the index tool (except for the tool itself and for
// configuration-only virtual packages) and a required dependency on
// the language toolchain.
func (s *Synthesizer) registerBaseline(m *domain.Manifest, addPackage Sink) {
	if m.Name != indexToolPackage && !confOnlyPattern.MatchString(m.Name) {
		addPackage(domain.Optional, indexToolPackage)
	}
	if m.Name != toolchainPackage {
		addPackage(domain.Required, toolchainPackage)
	}
}

// classifyManifest pushes the manifest's declared dependencies through
// the classifier. Order matters for the first-Required-wins merge:
// implicit optional deps, depopts, depends, the OS constraint, then
// depexts.
func (s *Synthesizer) classifyManifest(m *domain.Manifest, addNative, addPackage Sink) error {
	for _, name := range s.implicitDeps(m) {
		if err := s.classifier.Classify(domain.Optional, domain.OpamPackageDependency{Name: name}, addNative, addPackage); err != nil {
			return err
		}
	}

	deps := []struct {
		imp domain.Importance
		dep domain.Dependency
	}{
		{domain.Optional, domain.PackageFormulaDependency{Formula: m.DepOpts}},
		{domain.Required, domain.PackageFormulaDependency{Formula: m.Depends}},
		{domain.Required, domain.OsConditionDependency{Formula: m.OS}},
		{domain.Required, domain.ExternalSystemDependencies{Entries: m.DepExts}},
	}
	for _, d := range deps {
		if err := s.classifier.Classify(d.imp, d.dep, addNative, addPackage); err != nil {
			return err
		}
	}
	return nil
}

// implicitDeps scans every build and install command template for
// "<name>:installed" references. Each distinct name becomes an
// optional package dependency, declared or not.
func (s *Synthesizer) implicitDeps(m *domain.Manifest) []string {
	found := make(map[string]bool)
	for _, cmds := range [][]domain.Command{m.Build, m.Install} {
		for _, cmd := range cmds {
			for _, arg := range cmd {
				for _, match := range installedRefPattern.FindAllStringSubmatch(arg, -1) {
					found[match[1]] = true
				}
			}
		}
	}

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveAndInfer resolves the raw fetch descriptor and applies
// suffix-based inference on the resolved address: .zip archives need
// the extraction tool, .tbz archives an explicit unpack override.
// Suffix matching looks at the address string only, never the content.
func (s *Synthesizer) resolveAndInfer(in *domain.ConversionInput, addNative Sink) (domain.SourceDescriptor, string, error) {
	if in.URL == nil {
		return nil, "", nil
	}

	src, err := ResolveSource(in.URL)
	if err != nil {
		return nil, "", err
	}

	unpackCmd := ""
	if remote, ok := src.(domain.RemoteArchive); ok {
		switch {
		case strings.HasSuffix(remote.Address, ".zip"):
			addNative(domain.Required, archiveTool)
		case strings.HasSuffix(remote.Address, ".tbz"):
			unpackCmd = "tar -xjf $curSrc"
		}
	}
	return src, unpackCmd, nil
}

// sourceNode builds the src attribute value: a fetch call carrying the
// verified hash for remote archives, a path literal for local trees,
// or the explicit no-source marker.
func (s *Synthesizer) sourceNode(ctx context.Context, src domain.SourceDescriptor) (nixexpr.Node, error) {
	switch v := src.(type) {
	case nil:
		return nixexpr.Null, nil
	case domain.LocalPath:
		return nixexpr.Str{Value: v.Path}, nil
	case domain.RemoteArchive:
		hash, err := s.verifier.Verify(ctx, v.Address, v.Checksums[0])
		if err != nil {
			return nil, err
		}
		return nixexpr.Call{
			Fn: nixexpr.Select{Target: nixexpr.Ident{Name: worldParam}, Attr: "fetchurl"},
			Args: []nixexpr.Node{nixexpr.Attrs{Fields: []nixexpr.Field{
				{Name: "url", Value: nixexpr.Str{Value: v.Address}},
				{Name: "sha256", Value: nixexpr.Str{Value: hash}},
			}}},
		}, nil
	default:
		return nil, zerr.With(domain.ErrUnsupportedSource, "reason", fmt.Sprintf("unhandled descriptor %T", src))
	}
}

// assemble produces the final expression: a single function over the
// world parameter whose let scope defines the filtered input lists
// feeding one build-unit construction call.
func (s *Synthesizer) assemble(in *domain.ConversionInput, pc *packageContext, srcNode nixexpr.Node, unpackCmd string) nixexpr.Node {
	world := nixexpr.Ident{Name: worldParam}
	selection := nixexpr.Select{Target: world, Attr: "selection"}
	system := nixexpr.Select{Target: world, Attr: "system"}

	fields := []nixexpr.Field{
		{Name: "name", Value: nixexpr.Str{Value: pc.id.String()}},
		{Name: "opnixEnv", Value: s.metadataNode(in, pc)},
		{Name: "buildInputs", Value: nixexpr.Ident{Name: "packageInputs"}},
		{Name: "nativeBuildInputs", Value: nixexpr.Ident{Name: "nativeInputs"}},
		{Name: "buildPhase", Value: invokeStep("build")},
		{Name: "installPhase", Value: invokeStep("install")},
	}
	if in.HasExtraFiles() {
		fields = append(fields, nixexpr.Field{
			Name:  "prePatch",
			Value: nixexpr.Str{Value: fmt.Sprintf("cp -r %s/. .", in.ExtraFilesPath)},
		})
	}
	fields = append(fields, nixexpr.Field{Name: "src", Value: srcNode})
	if unpackCmd != "" {
		fields = append(fields, nixexpr.Field{Name: "unpackCmd", Value: nixexpr.Str{Value: unpackCmd}})
	}

	body := nixexpr.Let{
		Bindings: []nixexpr.Field{
			{Name: "packageInputs", Value: filterMissing(inputList(pc.packages, selection))},
			{Name: "nativeInputs", Value: filterMissing(inputList(pc.native, system))},
		},
		Body: nixexpr.Call{
			Fn:   nixexpr.Select{Target: world, Attr: "buildUnit"},
			Args: []nixexpr.Node{nixexpr.Attrs{Fields: fields}},
		},
	}

	return nixexpr.Func{Param: worldParam, Body: body}
}

// metadataNode serializes the conversion metadata as an environment
// value: manifest path, merged dependency listing, package name,
// extra-files path when present, and the toolchain version.
func (s *Synthesizer) metadataNode(in *domain.ConversionInput, pc *packageContext) nixexpr.Node {
	extraFiles := nixexpr.Node(nixexpr.Null)
	if in.HasExtraFiles() {
		extraFiles = nixexpr.Str{Value: in.ExtraFilesPath}
	}
	return nixexpr.Call{
		Fn: nixexpr.Ident{Name: "builtins.toJSON"},
		Args: []nixexpr.Node{nixexpr.Attrs{Fields: []nixexpr.Field{
			{Name: "package", Value: nixexpr.Str{Value: pc.id.Name}},
			{Name: "manifest", Value: nixexpr.Str{Value: in.ManifestPath}},
			{Name: "deps", Value: nixexpr.Str{Value: depsListing(pc)}},
			{Name: "extraFiles", Value: extraFiles},
			{Name: "toolchainVersion", Value: nixexpr.Select{Target: nixexpr.Ident{Name: worldParam}, Attr: "toolchainVersion"}},
		}}},
	}
}

// inputList renders one input reference per accumulated name: required
// inputs as direct lookups that fail at evaluation time when absent,
// optional inputs as lookups degrading to the missing sentinel.
func inputList(m *InputMap, scope nixexpr.Node) nixexpr.List {
	items := make([]nixexpr.Node, 0, m.Len())
	for _, name := range m.Names() {
		imp, _ := m.Importance(name)
		if imp == domain.Required {
			items = append(items, nixexpr.Select{Target: scope, Attr: name})
		} else {
			items = append(items, nixexpr.SelectOr{Target: scope, Attr: name, Default: nixexpr.Null})
		}
	}
	return nixexpr.List{Items: items}
}

// filterMissing drops entries that degraded to the missing-optional
// sentinel.
func filterMissing(list nixexpr.List) nixexpr.Node {
	return nixexpr.Call{
		Fn: nixexpr.Ident{Name: "builtins.filter"},
		Args: []nixexpr.Node{
			nixexpr.Func{Param: "x", Body: nixexpr.BinOp{Op: "!=", Left: nixexpr.Ident{Name: "x"}, Right: nixexpr.Null}},
			list,
		},
	}
}

// invokeStep re-invokes this tool's own entry point; the actual
// compilation happens outside this core when the expression is built.
func invokeStep(step string) nixexpr.Node {
	return nixexpr.Concat{Parts: []nixexpr.Node{
		nixexpr.Select{Target: nixexpr.Ident{Name: worldParam}, Attr: "opnix"},
		nixexpr.Str{Value: "/bin/opnix invoke " + step},
	}}
}

// depsListing builds the merged dependency listing embedded in the
// metadata payload, deterministic by name.
func depsListing(pc *packageContext) string {
	var parts []string
	for _, name := range pc.packages.Names() {
		imp, _ := pc.packages.Importance(name)
		parts = append(parts, fmt.Sprintf("%s (%s)", name, imp))
	}
	for _, name := range pc.native.Names() {
		imp, _ := pc.native.Importance(name)
		parts = append(parts, fmt.Sprintf("native %s (%s)", name, imp))
	}
	return strings.Join(parts, ", ")
}

func manifestPath(in *domain.ConversionInput) string {
	if in == nil {
		return ""
	}
	return in.ManifestPath
}
