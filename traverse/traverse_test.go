package traverse_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/nam-hle/eslint/ast"
	"github.com/nam-hle/eslint/token"
	"github.com/nam-hle/eslint/traverse"
)

func TestWalkOrder(t *testing.T) {
	f := token.NewFile("<input>", []byte("x;"))
	id := &ast.Identifier{Name: "x"}
	expr := &ast.ExpressionStatement{Expression: id}
	prog := &ast.Program{Body: []ast.Node{expr}}
	_ = f

	var events []string
	traverse.Walk(prog, ast.DefaultVisitorKeys, traverse.Visitor{
		Enter: func(n, _ ast.Node, _ *traverse.Controller) { events = append(events, "enter:"+n.Type()) },
		Leave: func(n, _ ast.Node, _ *traverse.Controller) { events = append(events, "leave:"+n.Type()) },
	})

	qt.Assert(t, qt.DeepEquals(events, []string{
		"enter:Program",
		"enter:ExpressionStatement",
		"enter:Identifier",
		"leave:Identifier",
		"leave:ExpressionStatement",
		"leave:Program",
	}))
	qt.Assert(t, qt.Equals(id.Parent(), ast.Node(expr)))
	qt.Assert(t, qt.Equals(expr.Parent(), ast.Node(prog)))
	qt.Assert(t, qt.IsNil(prog.Parent()))
}

func TestSkip(t *testing.T) {
	id := &ast.Identifier{Name: "x"}
	expr := &ast.ExpressionStatement{Expression: id}
	prog := &ast.Program{Body: []ast.Node{expr}}

	var entered []string
	traverse.Walk(prog, ast.DefaultVisitorKeys, traverse.Visitor{
		Enter: func(n, _ ast.Node, ctl *traverse.Controller) {
			entered = append(entered, n.Type())
			if n.Type() == "ExpressionStatement" {
				ctl.Skip()
			}
		},
	})
	qt.Assert(t, qt.DeepEquals(entered, []string{"Program", "ExpressionStatement"}))
}

func TestBreak(t *testing.T) {
	a := &ast.Identifier{Name: "a"}
	b := &ast.Identifier{Name: "b"}
	prog := &ast.Program{Body: []ast.Node{
		&ast.ExpressionStatement{Expression: a},
		&ast.ExpressionStatement{Expression: b},
	}}

	var entered []string
	traverse.Walk(prog, ast.DefaultVisitorKeys, traverse.Visitor{
		Enter: func(n, _ ast.Node, ctl *traverse.Controller) {
			entered = append(entered, n.Type())
			if id, ok := n.(*ast.Identifier); ok && id.Name == "a" {
				ctl.Break()
			}
		},
	})
	qt.Assert(t, qt.DeepEquals(entered, []string{"Program", "ExpressionStatement", "Identifier"}))
}
