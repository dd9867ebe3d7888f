package domain

// Formula is a boolean expression tree over dependency atoms.
// The zero value (kind formulaEmpty) is the empty formula.
type Formula[T any] struct {
	kind  formulaKind
	atom  T
	left  *Formula[T]
	right *Formula[T]
}

type formulaKind int

const (
	formulaEmpty formulaKind = iota
	formulaAtom
	formulaBlock
	formulaAnd
	formulaOr
)

// EmptyFormula returns the formula that contains no atoms.
func EmptyFormula[T any]() Formula[T] {
	return Formula[T]{kind: formulaEmpty}
}

// AtomFormula returns a formula consisting of a single atom.
func AtomFormula[T any](atom T) Formula[T] {
	return Formula[T]{kind: formulaAtom, atom: atom}
}

// BlockFormula wraps a sub-formula in a grouping node.
func BlockFormula[T any](f Formula[T]) Formula[T] {
	return Formula[T]{kind: formulaBlock, left: &f}
}

// AndFormula joins two formulas conjunctively.
func AndFormula[T any](a, b Formula[T]) Formula[T] {
	return Formula[T]{kind: formulaAnd, left: &a, right: &b}
}

// OrFormula joins two formulas disjunctively.
func OrFormula[T any](a, b Formula[T]) Formula[T] {
	return Formula[T]{kind: formulaOr, left: &a, right: &b}
}

// IsEmpty reports whether the formula contains no atoms at the top level.
func (f Formula[T]) IsEmpty() bool {
	return f.kind == formulaEmpty
}

// Eval visits every atom of the formula exactly once, calling fn with the
// effective importance for that atom. And and Block nodes preserve the
// incoming importance. An Or node relaxes both branches to Optional:
// neither side alone is required when either can satisfy the formula.
// The traversal is pure and cannot fail.
func (f Formula[T]) Eval(imp Importance, fn func(Importance, T)) {
	switch f.kind {
	case formulaEmpty:
	case formulaAtom:
		fn(imp, f.atom)
	case formulaBlock:
		f.left.Eval(imp, fn)
	case formulaAnd:
		f.left.Eval(imp, fn)
		f.right.Eval(imp, fn)
	case formulaOr:
		f.left.Eval(Optional, fn)
		f.right.Eval(Optional, fn)
	}
}

// AndAll folds a list of formulas into a right-leaning And chain.
// Empty input yields the empty formula; a single element is returned as is.
func AndAll[T any](fs []Formula[T]) Formula[T] {
	return foldFormulas(fs, AndFormula[T])
}

// OrAll folds a list of formulas into a right-leaning Or chain.
func OrAll[T any](fs []Formula[T]) Formula[T] {
	return foldFormulas(fs, OrFormula[T])
}

func foldFormulas[T any](fs []Formula[T], join func(a, b Formula[T]) Formula[T]) Formula[T] {
	switch len(fs) {
	case 0:
		return EmptyFormula[T]()
	case 1:
		return fs[0]
	default:
		return join(fs[0], foldFormulas(fs[1:], join))
	}
}
