package nixexpr

import (
	"fmt"
	"strings"
)

// Render produces the Nix source text for a node.
func Render(n Node) string {
	var b strings.Builder
	write(&b, n, 0)
	return b.String()
}

func write(b *strings.Builder, n Node, depth int) {
	switch v := n.(type) {
	case Str:
		b.WriteString(quote(v.Value))
	case Raw:
		b.WriteString(v.Text)
	case Ident:
		b.WriteString(v.Name)
	case Select:
		writeAtom(b, v.Target, depth)
		b.WriteString(".")
		b.WriteString(attrKey(v.Attr))
	case SelectOr:
		b.WriteString("(")
		writeAtom(b, v.Target, depth)
		b.WriteString(".")
		b.WriteString(attrKey(v.Attr))
		b.WriteString(" or ")
		write(b, v.Default, depth)
		b.WriteString(")")
	case Call:
		writeAtom(b, v.Fn, depth)
		for _, arg := range v.Args {
			b.WriteString(" ")
			writeAtom(b, arg, depth)
		}
	case Attrs:
		if len(v.Fields) == 0 {
			b.WriteString("{ }")
			return
		}
		b.WriteString("{\n")
		for _, f := range v.Fields {
			indent(b, depth+1)
			b.WriteString(attrKey(f.Name))
			b.WriteString(" = ")
			write(b, f.Value, depth+1)
			b.WriteString(";\n")
		}
		indent(b, depth)
		b.WriteString("}")
	case Let:
		b.WriteString("let\n")
		for _, f := range v.Bindings {
			indent(b, depth+1)
			b.WriteString(attrKey(f.Name))
			b.WriteString(" = ")
			write(b, f.Value, depth+1)
			b.WriteString(";\n")
		}
		indent(b, depth)
		b.WriteString("in\n")
		indent(b, depth)
		write(b, v.Body, depth)
	case Concat:
		for i, p := range v.Parts {
			if i > 0 {
				b.WriteString(" + ")
			}
			writeAtom(b, p, depth)
		}
	case BinOp:
		b.WriteString("(")
		write(b, v.Left, depth)
		b.WriteString(" ")
		b.WriteString(v.Op)
		b.WriteString(" ")
		write(b, v.Right, depth)
		b.WriteString(")")
	case List:
		if len(v.Items) == 0 {
			b.WriteString("[ ]")
			return
		}
		b.WriteString("[\n")
		for _, item := range v.Items {
			indent(b, depth+1)
			writeAtom(b, item, depth+1)
			b.WriteString("\n")
		}
		indent(b, depth)
		b.WriteString("]")
	case Func:
		b.WriteString(v.Param)
		b.WriteString(":\n")
		indent(b, depth)
		write(b, v.Body, depth)
	default:
		// The node set is closed; a new kind must be handled above.
		panic(fmt.Sprintf("nixexpr: unknown node type %T", n))
	}
}

// writeAtom writes a node, parenthesizing forms that do not parse as a
// single atom in call or select position.
func writeAtom(b *strings.Builder, n Node, depth int) {
	switch n.(type) {
	case Call, Func, Let, Concat:
		b.WriteString("(")
		write(b, n, depth)
		b.WriteString(")")
	default:
		write(b, n, depth)
	}
}

func indent(b *strings.Builder, depth int) {
	for range depth {
		b.WriteString("  ")
	}
}

// quote escapes a string for a Nix double-quoted literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteString(`"`)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '$':
			if i+1 < len(s) && s[i+1] == '{' {
				b.WriteString(`\$`)
			} else {
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}
	b.WriteString(`"`)
	return b.String()
}

// attrKey renders an attribute name, quoting it when it is not a valid
// Nix identifier (package names may contain '+' or '.').
func attrKey(name string) string {
	if isIdent(name) {
		return name
	}
	return quote(name)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case i > 0 && (c >= '0' && c <= '9' || c == '\'' || c == '-'):
		default:
			return false
		}
	}
	return true
}
