// Package nixexpr models Nix expressions as a small syntax tree and
// renders them deterministically to source text.
package nixexpr

// Node is one node of a build expression. Trees are immutable after
// construction; rendering the same tree always yields the same text.
type Node interface {
	isNode()
}

// Str is a quoted string literal.
type Str struct {
	Value string
}

// Raw is an unquoted literal token (null, true, a number).
type Raw struct {
	Text string
}

// Ident is an identifier reference.
type Ident struct {
	Name string
}

// Select is a property access: target.attr. Evaluation fails if the
// attribute is absent.
type Select struct {
	Target Node
	Attr   string
}

// SelectOr is a property access with a default: target.attr or default.
// Degrades silently when the attribute is absent.
type SelectOr struct {
	Target  Node
	Attr    string
	Default Node
}

// Call applies a function to its arguments.
type Call struct {
	Fn   Node
	Args []Node
}

// Field is one binding of an attribute set or let scope.
type Field struct {
	Name  string
	Value Node
}

// Attrs is an attribute set literal.
type Attrs struct {
	Fields []Field
}

// Let binds names for the scope of its body.
type Let struct {
	Bindings []Field
	Body     Node
}

// Concat joins string parts with the + operator.
type Concat struct {
	Parts []Node
}

// BinOp applies a binary operator.
type BinOp struct {
	Op    string
	Left  Node
	Right Node
}

// List is a list literal.
type List struct {
	Items []Node
}

// Func is a single-parameter function.
type Func struct {
	Param string
	Body  Node
}

func (Str) isNode()      {}
func (Raw) isNode()      {}
func (Ident) isNode()    {}
func (Select) isNode()   {}
func (SelectOr) isNode() {}
func (Call) isNode()     {}
func (Attrs) isNode()    {}
func (Let) isNode()      {}
func (Concat) isNode()   {}
func (BinOp) isNode()    {}
func (List) isNode()     {}
func (Func) isNode()     {}

// Null is the null literal.
var Null = Raw{Text: "null"}

// Bool returns the true or false literal.
func Bool(b bool) Raw {
	if b {
		return Raw{Text: "true"}
	}
	return Raw{Text: "false"}
}
