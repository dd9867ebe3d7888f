package convert

import (
	"fmt"
	"sort"
	"strings"

	"go.opnix.dev/opnix/internal/core/domain"
	"go.opnix.dev/opnix/internal/core/ports"
	"go.trai.ch/zerr"
)

// Sink receives one classified requirement edge.
type Sink func(imp domain.Importance, name string)

// Classifier maps tagged dependencies to concrete requirement edges,
// evaluating environment filters for depexts and flag environments for
// package formulas against a fixed target environment.
type Classifier struct {
	env domain.TargetEnv
	log ports.Logger
}

// NewClassifier creates a Classifier for the given target environment.
func NewClassifier(env domain.TargetEnv, log ports.Logger) *Classifier {
	return &Classifier{env: env, log: log}
}

// Classify dispatches one dependency to the appropriate sink. addNative
// receives system-level names, addPackage sibling-package names. The
// dependency set is closed; an unknown kind is an error so a newly
// added kind cannot be silently ignored.
func (c *Classifier) Classify(imp domain.Importance, dep domain.Dependency, addNative, addPackage Sink) error {
	switch v := dep.(type) {
	case domain.NativeDependency:
		addNative(imp, v.Name)
	case domain.OpamPackageDependency:
		addPackage(imp, v.Name)
	case domain.OsConditionDependency:
		c.reportOsCondition(v.Formula)
	case domain.ExternalSystemDependencies:
		c.classifyDepExts(imp, v.Entries, addNative)
	case domain.PackageFormulaDependency:
		c.classifyPackageFormula(imp, v.Formula, addPackage)
	default:
		return zerr.With(domain.ErrUnknownDependency, "type", fmt.Sprintf("%T", dep))
	}
	return nil
}

// reportOsCondition walks the OS constraint formula for diagnostics.
// OS constraints are recorded but not enforced at conversion time.
func (c *Classifier) reportOsCondition(f domain.Formula[domain.OsTest]) {
	if f.IsEmpty() {
		return
	}
	var terms []string
	f.Eval(domain.Required, func(_ domain.Importance, t domain.OsTest) {
		if t.Negate {
			terms = append(terms, "!"+t.Name)
		} else {
			terms = append(terms, t.Name)
		}
	})
	c.log.Info(fmt.Sprintf("os constraint recorded, not enforced: %s", strings.Join(terms, " ")))
}

// classifyDepExts includes entries whose filter matches the target
// environment at the original importance. Filter evaluation errors are
// logged and treated as "does not match". When no entry matches at all,
// every listed name across all entries is included at Optional as a
// best-effort fallback.
func (c *Classifier) classifyDepExts(imp domain.Importance, entries []domain.DepExt, addNative Sink) {
	if len(entries) == 0 {
		return
	}

	matched := false
	for _, entry := range entries {
		ok, err := domain.EvalFilter(entry.Filter, c.env)
		if err != nil {
			c.log.Warn(fmt.Sprintf("depext filter evaluation failed, treating as non-match: %v", err))
			continue
		}
		if !ok {
			continue
		}
		matched = true
		for _, name := range entry.Names {
			addNative(imp, name)
		}
	}

	if !matched {
		all := make([]string, 0)
		for _, entry := range entries {
			all = append(all, entry.Names...)
		}
		sort.Strings(all)
		c.log.Warn(fmt.Sprintf("no depext filter matched target environment, including all %d names as optional", len(all)))
		for _, name := range all {
			addNative(domain.Optional, name)
		}
	}
}

// classifyPackageFormula evaluates the formula twice: once restricted
// to the build phase at the incoming importance, once with an inclusive
// flag environment where atoms only reachable through optional flags
// surface at Optional. Version constraints are diagnostic only.
func (c *Classifier) classifyPackageFormula(imp domain.Importance, f domain.Formula[domain.PackageAtom], addPackage Sink) {
	buildEnv := domain.BuildOnlyFlagEnv()
	seen := make(map[string]bool)

	f.Eval(imp, func(eff domain.Importance, atom domain.PackageAtom) {
		if !buildEnv.Admits(atom) {
			return
		}
		c.reportConstraint(atom)
		seen[atom.Name] = true
		addPackage(eff, atom.Name)
	})

	inclusive := domain.InclusiveFlagEnv()
	f.Eval(imp, func(_ domain.Importance, atom domain.PackageAtom) {
		if seen[atom.Name] || !inclusive.Admits(atom) {
			return
		}
		c.reportConstraint(atom)
		seen[atom.Name] = true
		addPackage(domain.Optional, atom.Name)
	})
}

func (c *Classifier) reportConstraint(atom domain.PackageAtom) {
	if atom.Constraint == "" {
		return
	}
	// Version selection belongs to the external solver.
	c.log.Info(fmt.Sprintf("version constraint on %s recorded, not enforced: %s", atom.Name, atom.Constraint))
}
