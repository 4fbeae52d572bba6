package fixture_test

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/kr/pretty"

	"github.com/nam-hle/eslint/ast"
	"github.com/nam-hle/eslint/fixture"
)

// shape is a pointer-free summary of a node tree, used to diff the
// decoder's output against a hand-built expectation without dragging
// *token.File identity into the comparison.
type shape struct {
	Type       string
	Start, End int
	Name       string
	Kind       string
	Children   []shape
}

func summarize(n ast.Node) shape {
	s := shape{Type: n.Type(), Start: n.Range().Start, End: n.Range().End}
	switch v := n.(type) {
	case *ast.Identifier:
		s.Name = v.Name
	case *ast.Literal:
		s.Name = v.Value
	case *ast.IfStatement:
		s.Children = append(s.Children, summarize(v.Test), summarize(v.Consequent))
		if v.Alternate != nil {
			s.Children = append(s.Children, summarize(v.Alternate))
		}
	case *ast.BlockStatement:
		for _, c := range v.Body {
			s.Children = append(s.Children, summarize(c))
		}
	case *ast.VariableDeclaration:
		s.Kind = []string{"var", "let", "const"}[v.Kind]
		for _, d := range v.Declarations {
			s.Children = append(s.Children, summarize(d))
		}
	case *ast.VariableDeclarator:
		s.Children = append(s.Children, summarize(v.ID), summarize(v.Init))
	}
	return s
}

const sample = `{
	"text": "if (x) { var y = 1; }\n",
	"program": {
		"type": "Program", "start": 0, "end": 23,
		"body": [
			{
				"type": "IfStatement", "start": 0, "end": 22,
				"test": {"type": "Identifier", "start": 4, "end": 5, "name": "x"},
				"consequent": {
					"type": "BlockStatement", "start": 7, "end": 22,
					"body": [
						{
							"type": "VariableDeclaration", "start": 9, "end": 20, "kind": "var",
							"declarations": [
								{
									"type": "VariableDeclarator", "start": 13, "end": 19,
									"id": {"type": "Identifier", "start": 13, "end": 14, "name": "y"},
									"init": {"type": "Literal", "start": 17, "end": 18, "kind": "number", "value": "1"}
								}
							]
						}
					]
				},
				"alternate": null
			}
		]
	}
}`

func TestLoadDecodesNestedProgram(t *testing.T) {
	parsed, err := fixture.Load("<fixture>", []byte(sample))
	qt.Assert(t, qt.IsNil(err))

	program, ok := parsed.Root.(*ast.Program)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(program.Body, 1))

	ifStmt, ok := program.Body[0].(*ast.IfStatement)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsNil(ifStmt.Alternate))

	block := ifStmt.Consequent.(*ast.BlockStatement)
	qt.Assert(t, qt.HasLen(block.Body, 1))

	decl := block.Body[0].(*ast.VariableDeclaration)
	qt.Assert(t, qt.Equals(decl.Kind, ast.Var))
	qt.Assert(t, qt.Equals(decl.Declarations[0].ID.Name, "y"))
}

// TestLoadMatchesHandBuiltShape guards the decoder's tree shape against
// a hand-written expectation, the way internal/encoding/yaml's own
// tests diff a rendered document against a golden one rather than
// asserting field by field.
func TestLoadMatchesHandBuiltShape(t *testing.T) {
	parsed, err := fixture.Load("<fixture>", []byte(sample))
	qt.Assert(t, qt.IsNil(err))

	want := shape{
		Type: "IfStatement", Start: 0, End: 22,
		Children: []shape{
			{Type: "Identifier", Start: 4, End: 5, Name: "x"},
			{
				Type: "BlockStatement", Start: 7, End: 22,
				Children: []shape{
					{
						Type: "VariableDeclaration", Start: 9, End: 20, Kind: "var",
						Children: []shape{
							{
								Type: "VariableDeclarator", Start: 13, End: 19,
								Children: []shape{
									{Type: "Identifier", Start: 13, End: 14, Name: "y"},
									{Type: "Literal", Start: 17, End: 18, Name: "1"},
								},
							},
						},
					},
				},
			},
		},
	}

	program := parsed.Root.(*ast.Program)
	got := summarize(program.Body[0])
	if diff := pretty.Diff(got, want); len(diff) > 0 {
		t.Fatalf("decoded tree differs from hand-built shape:\n%v", diff)
	}
}

func TestLoadRejectsNonProgramRoot(t *testing.T) {
	_, err := fixture.Load("<fixture>", []byte(`{"text":"x","program":{"type":"Identifier","start":0,"end":1,"name":"x"}}`))
	qt.Assert(t, qt.IsNotNil(err))
}
