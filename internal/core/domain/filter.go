package domain

import "go.trai.ch/zerr"

// TargetEnv is the fixed environment depext filters are evaluated
// against. Keys follow the opam variable vocabulary (os, os-family,
// os-distribution, arch).
type TargetEnv map[string]string

// DefaultTargetEnv describes the environment the generated expressions
// are built in.
func DefaultTargetEnv() TargetEnv {
	return TargetEnv{
		"os":              "linux",
		"os-family":       "nixos",
		"os-distribution": "nixos",
		"arch":            "x86_64",
	}
}

// EvalFilter evaluates a depext filter formula against the target
// environment. Empty formulas match. A reference to a variable absent
// from the environment is an evaluation error; per the documented
// degradation, callers treat that as "does not match".
func EvalFilter(f Formula[EnvTest], env TargetEnv) (bool, error) {
	switch f.kind {
	case formulaEmpty:
		return true, nil
	case formulaAtom:
		val, ok := env[f.atom.Var]
		if !ok {
			return false, zerr.With(ErrFilterEval, "variable", f.atom.Var)
		}
		match := val == f.atom.Value
		if f.atom.Negate {
			match = !match
		}
		return match, nil
	case formulaBlock:
		return EvalFilter(*f.left, env)
	case formulaAnd:
		left, err := EvalFilter(*f.left, env)
		if err != nil {
			return false, err
		}
		right, err := EvalFilter(*f.right, env)
		if err != nil {
			return false, err
		}
		return left && right, nil
	case formulaOr:
		left, err := EvalFilter(*f.left, env)
		if err != nil {
			return false, err
		}
		right, err := EvalFilter(*f.right, env)
		if err != nil {
			return false, err
		}
		return left || right, nil
	default:
		return false, zerr.With(ErrFilterEval, "kind", int(f.kind))
	}
}
