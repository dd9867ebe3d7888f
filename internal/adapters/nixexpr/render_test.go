package nixexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderScalars(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{"string", Str{Value: "hello"}, `"hello"`},
		{"string with quote", Str{Value: `a"b`}, `"a\"b"`},
		{"string with interpolation", Str{Value: "a${b}"}, `"a\${b}"`},
		{"string with newline", Str{Value: "a\nb"}, `"a\nb"`},
		{"null", Null, "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"identifier", Ident{Name: "pkgs"}, "pkgs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.node))
		})
	}
}

func TestRenderSelect(t *testing.T) {
	sel := Select{Target: Ident{Name: "world"}, Attr: "selection"}
	assert.Equal(t, "world.selection", Render(sel))

	quoted := Select{Target: Ident{Name: "sel"}, Attr: "conf-gmp.1"}
	assert.Equal(t, `sel."conf-gmp.1"`, Render(quoted))

	orNull := SelectOr{Target: sel, Attr: "baz", Default: Null}
	assert.Equal(t, "(world.selection.baz or null)", Render(orNull))
}

func TestRenderCall(t *testing.T) {
	call := Call{
		Fn:   Select{Target: Ident{Name: "world"}, Attr: "fetchurl"},
		Args: []Node{Str{Value: "https://example/a.tgz"}},
	}
	assert.Equal(t, `world.fetchurl "https://example/a.tgz"`, Render(call))

	nested := Call{Fn: Ident{Name: "f"}, Args: []Node{Call{Fn: Ident{Name: "g"}, Args: []Node{Ident{Name: "x"}}}}}
	assert.Equal(t, "f (g x)", Render(nested))
}

func TestRenderList(t *testing.T) {
	assert.Equal(t, "[ ]", Render(List{}))

	list := List{Items: []Node{Ident{Name: "a"}, SelectOr{Target: Ident{Name: "s"}, Attr: "b", Default: Null}}}
	assert.Equal(t, "[\n  a\n  (s.b or null)\n]", Render(list))
}

func TestRenderAttrs(t *testing.T) {
	attrs := Attrs{Fields: []Field{
		{Name: "name", Value: Str{Value: "foo-1.0"}},
		{Name: "src", Value: Null},
	}}
	expected := "{\n  name = \"foo-1.0\";\n  src = null;\n}"
	assert.Equal(t, expected, Render(attrs))
}

func TestRenderLetFunc(t *testing.T) {
	expr := Func{
		Param: "world",
		Body: Let{
			Bindings: []Field{{Name: "inputs", Value: List{}}},
			Body:     Ident{Name: "inputs"},
		},
	}
	expected := "world:\nlet\n  inputs = [ ];\nin\ninputs"
	assert.Equal(t, expected, Render(expr))
}

func TestRenderConcatAndBinOp(t *testing.T) {
	c := Concat{Parts: []Node{Str{Value: "a"}, Ident{Name: "b"}}}
	assert.Equal(t, `"a" + b`, Render(c))

	op := BinOp{Op: "==", Left: Ident{Name: "x"}, Right: Null}
	assert.Equal(t, "(x == null)", Render(op))
}

func TestRenderDeterministic(t *testing.T) {
	node := Attrs{Fields: []Field{
		{Name: "b", Value: List{Items: []Node{Str{Value: "x"}}}},
		{Name: "a", Value: Raw{Text: "1"}},
	}}
	first := Render(node)
	for range 10 {
		assert.Equal(t, first, Render(node))
	}
}
