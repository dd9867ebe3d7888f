package domain

// Dependency is the closed set of dependency kinds a manifest can declare.
// Dispatch over the concrete types must be exhaustive; a default branch
// should fail loudly so a newly added kind cannot be silently ignored.
type Dependency interface {
	isDependency()
}

// NativeDependency names a system-level package (resolved outside the
// sibling-package selection, e.g. from the system package set).
type NativeDependency struct {
	Name string
}

// OpamPackageDependency names a sibling package in the same ecosystem.
type OpamPackageDependency struct {
	Name string
}

// OsConditionDependency carries an OS constraint formula. It is recorded
// for diagnostics only and never evaluated into a hard constraint.
type OsConditionDependency struct {
	Formula Formula[OsTest]
}

// ExternalSystemDependencies lists groups of system package names, each
// gated by an environment filter (opam depexts).
type ExternalSystemDependencies struct {
	Entries []DepExt
}

// PackageFormulaDependency is a formula over sibling-package atoms with
// flags and version constraints (opam depends/depopts).
type PackageFormulaDependency struct {
	Formula Formula[PackageAtom]
}

func (NativeDependency) isDependency()           {}
func (OpamPackageDependency) isDependency()      {}
func (OsConditionDependency) isDependency()      {}
func (ExternalSystemDependencies) isDependency() {}
func (PackageFormulaDependency) isDependency()   {}

// Requirement pairs an importance with the dependency it applies to.
type Requirement struct {
	Importance Importance
	Dependency Dependency
}

// DepExt is one depext entry: a group of system package names included
// when the filter matches the target environment.
type DepExt struct {
	Names  []string
	Filter Formula[EnvTest]
}

// OsTest is an atom of an OS constraint formula.
type OsTest struct {
	Name   string
	Negate bool
}

// EnvTest is an atom of a depext environment filter: a test of one
// environment variable against a literal value.
type EnvTest struct {
	Var    string
	Value  string
	Negate bool
}

// PackageAtom is an atom of a package dependency formula.
// Constraint is recorded for diagnostic text only; version selection is
// delegated to the external solver and never enforced here.
type PackageAtom struct {
	Name       string
	Flags      []Flag
	Constraint string
}

// Flag gates a package formula atom on a build phase.
type Flag string

// Known atom flags, matching the opam dependency flag vocabulary.
const (
	FlagBuild    Flag = "build"
	FlagWithTest Flag = "with-test"
	FlagWithDoc  Flag = "with-doc"
	FlagPost     Flag = "post"
	FlagDev      Flag = "dev"
)

// FlagEnv assigns a truth value to each known flag. Unknown flags
// evaluate to Default.
type FlagEnv struct {
	Build   bool
	Test    bool
	Doc     bool
	Post    bool
	Dev     bool
	Default bool
}

// BuildOnlyFlagEnv restricts evaluation to the build phase: only the
// build flag holds, everything else is false.
func BuildOnlyFlagEnv() FlagEnv {
	return FlagEnv{Build: true}
}

// InclusiveFlagEnv enables every phase, exposing atoms only reachable
// through optional flags.
func InclusiveFlagEnv() FlagEnv {
	return FlagEnv{Build: true, Test: true, Doc: true, Default: true}
}

// Holds reports whether the flag is set in the environment.
func (e FlagEnv) Holds(f Flag) bool {
	switch f {
	case FlagBuild:
		return e.Build
	case FlagWithTest:
		return e.Test
	case FlagWithDoc:
		return e.Doc
	case FlagPost:
		return e.Post
	case FlagDev:
		return e.Dev
	default:
		return e.Default
	}
}

// Admits reports whether every flag on the atom holds in the environment.
// An atom with no flags is always admitted.
func (e FlagEnv) Admits(a PackageAtom) bool {
	for _, f := range a.Flags {
		if !e.Holds(f) {
			return false
		}
	}
	return true
}
