// Package fixture decodes an already-parsed source document from JSON.
// It stands in for the external parser collaborator (spec.md §6): the
// core itself performs no language parsing (§1 Non-goals), so this
// package, and not a JS grammar, is what lets `cmd/lintcore` and tests
// construct a [lintcore.ParsedSource] from a file on disk.
package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/nam-hle/eslint/ast"
	"github.com/nam-hle/eslint/lintcore"
	"github.com/nam-hle/eslint/source"
	"github.com/nam-hle/eslint/token"
)

// document is the on-disk shape: source text plus its ESTree-like AST,
// keyed by node "type" the way ESLint's own parsers shape their output.
// Tokens and comments are optional siblings of program; a fixture that
// omits them still decodes, with an empty (not nil) Token Store.
type document struct {
	Text     string          `json:"text"`
	Program  json.RawMessage `json:"program"`
	Tokens   []tokenDoc      `json:"tokens"`
	Comments []commentDoc    `json:"comments"`
}

// tokenDoc is the on-disk shape of a single Token Store entry.
type tokenDoc struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// commentDoc is the on-disk shape of a single comment.
type commentDoc struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Load decodes a fixture document into a [lintcore.ParsedSource]. name is
// used only as the resulting token.File's display name.
func Load(name string, data []byte) (*lintcore.ParsedSource, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", name, err)
	}

	file := token.NewFile(name, []byte(doc.Text))
	d := &decoder{file: file}
	root, err := d.node(doc.Program)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", name, err)
	}
	program, ok := root.(*ast.Program)
	if !ok {
		return nil, fmt.Errorf("fixture %s: root node must be a Program", name)
	}

	tokens := make([]source.Token, 0, len(doc.Tokens))
	for _, t := range doc.Tokens {
		tokens = append(tokens, source.Token{
			Kind:  tokenKind(t.Kind),
			Value: t.Value,
			Rng:   ast.Range{Start: t.Start, End: t.End},
			Start: file.Pos(t.Start),
			End:   file.Pos(t.End),
		})
	}

	comments := make([]*ast.Comment, 0, len(doc.Comments))
	for _, c := range doc.Comments {
		comments = append(comments, &ast.Comment{
			Kind:  commentKind(c.Kind),
			Value: c.Value,
			Rng:   ast.Range{Start: c.Start, End: c.End},
			Start: file.Pos(c.Start),
			End:   file.Pos(c.End),
		})
	}

	return &lintcore.ParsedSource{
		Text:        doc.Text,
		Root:        program,
		File:        file,
		VisitorKeys: ast.DefaultVisitorKeys,
		Tokens:      tokens,
		Comments:    comments,
	}, nil
}

func tokenKind(s string) source.Kind {
	switch s {
	case "keyword":
		return source.Keyword
	case "identifier":
		return source.Identifier
	case "numeric":
		return source.NumericLiteral
	case "string":
		return source.StringLiteral
	case "boolean":
		return source.BooleanLiteral
	case "null":
		return source.NullLiteral
	case "template":
		return source.TemplateElement
	case "regex":
		return source.RegularExpression
	default:
		return source.Punctuator
	}
}

func commentKind(s string) ast.CommentKind {
	switch s {
	case "block":
		return ast.Block
	case "shebang":
		return ast.Shebang
	default:
		return ast.Line
	}
}

type decoder struct {
	file *token.File
}

// fields is the generic envelope every node decodes through: "type",
// "start", "end" plus whatever child fields that type carries, looked up
// by name and shape on demand.
type fields struct {
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`

	raw map[string]json.RawMessage
}

func (d *decoder) parse(data json.RawMessage) (fields, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return fields{}, err
	}
	if err := json.Unmarshal(data, &f.raw); err != nil {
		return fields{}, err
	}
	return f, nil
}

func (f fields) span(file *token.File) ast.Span {
	return ast.NewSpan(file, f.Start, f.End)
}

func (f fields) str(key string) string {
	var s string
	if raw, ok := f.raw[key]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

func (f fields) child(key string) json.RawMessage {
	return f.raw[key]
}

func (f fields) children(key string) []json.RawMessage {
	var items []json.RawMessage
	if raw, ok := f.raw[key]; ok {
		_ = json.Unmarshal(raw, &items)
	}
	return items
}

func (d *decoder) node(data json.RawMessage) (ast.Node, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	f, err := d.parse(data)
	if err != nil {
		return nil, err
	}
	span := f.span(d.file)

	switch f.Type {
	case "Program":
		body, err := d.nodeList(f.children("body"))
		if err != nil {
			return nil, err
		}
		return &ast.Program{Span: span, Body: body}, nil

	case "Identifier":
		return &ast.Identifier{Span: span, Name: f.str("name")}, nil

	case "Literal":
		return &ast.Literal{Span: span, Kind: literalKind(f.str("kind")), Value: f.str("value")}, nil

	case "VariableDeclarator":
		id, err := d.identifier(f.child("id"))
		if err != nil {
			return nil, err
		}
		init, err := d.node(f.child("init"))
		if err != nil {
			return nil, err
		}
		return &ast.VariableDeclarator{Span: span, ID: id, Init: init}, nil

	case "VariableDeclaration":
		declrs, err := d.declarators(f.children("declarations"))
		if err != nil {
			return nil, err
		}
		return &ast.VariableDeclaration{Span: span, Kind: varKind(f.str("kind")), Declarations: declrs}, nil

	case "ExpressionStatement":
		expr, err := d.node(f.child("expression"))
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Span: span, Expression: expr}, nil

	case "BlockStatement":
		body, err := d.nodeList(f.children("body"))
		if err != nil {
			return nil, err
		}
		return &ast.BlockStatement{Span: span, Body: body}, nil

	case "IfStatement":
		test, err := d.node(f.child("test"))
		if err != nil {
			return nil, err
		}
		cons, err := d.node(f.child("consequent"))
		if err != nil {
			return nil, err
		}
		alt, err := d.node(f.child("alternate"))
		if err != nil {
			return nil, err
		}
		return &ast.IfStatement{Span: span, Test: test, Consequent: cons, Alternate: alt}, nil

	case "BinaryExpression", "LogicalExpression":
		left, err := d.node(f.child("left"))
		if err != nil {
			return nil, err
		}
		right, err := d.node(f.child("right"))
		if err != nil {
			return nil, err
		}
		op := ast.BinaryOperator(f.str("operator"))
		if f.Type == "LogicalExpression" {
			return &ast.LogicalExpression{Span: span, Operator: op, Left: left, Right: right}, nil
		}
		return &ast.BinaryExpression{Span: span, Operator: op, Left: left, Right: right}, nil

	case "CallExpression":
		callee, err := d.node(f.child("callee"))
		if err != nil {
			return nil, err
		}
		args, err := d.nodeList(f.children("arguments"))
		if err != nil {
			return nil, err
		}
		return &ast.CallExpression{Span: span, Callee: callee, Arguments: args}, nil

	case "FunctionDeclaration":
		id, err := d.identifier(f.child("id"))
		if err != nil {
			return nil, err
		}
		var params []*ast.Identifier
		for _, raw := range f.children("params") {
			p, err := d.identifier(raw)
			if err != nil {
				return nil, err
			}
			params = append(params, p)
		}
		body, err := d.block(f.child("body"))
		if err != nil {
			return nil, err
		}
		return &ast.FunctionDeclaration{Span: span, ID: id, Params: params, Body: body}, nil

	case "ReturnStatement":
		arg, err := d.node(f.child("argument"))
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStatement{Span: span, Argument: arg}, nil

	case "ForStatement":
		init, err := d.node(f.child("init"))
		if err != nil {
			return nil, err
		}
		test, err := d.node(f.child("test"))
		if err != nil {
			return nil, err
		}
		update, err := d.node(f.child("update"))
		if err != nil {
			return nil, err
		}
		body, err := d.node(f.child("body"))
		if err != nil {
			return nil, err
		}
		return &ast.ForStatement{Span: span, Init: init, Test: test, Update: update, Body: body}, nil

	case "WhileStatement":
		test, err := d.node(f.child("test"))
		if err != nil {
			return nil, err
		}
		body, err := d.node(f.child("body"))
		if err != nil {
			return nil, err
		}
		return &ast.WhileStatement{Span: span, Test: test, Body: body}, nil

	case "TryStatement":
		block, err := d.block(f.child("block"))
		if err != nil {
			return nil, err
		}
		param, err := d.identifier(f.child("param"))
		if err != nil {
			return nil, err
		}
		handler, err := d.block(f.child("handler"))
		if err != nil {
			return nil, err
		}
		finalizer, err := d.block(f.child("finalizer"))
		if err != nil {
			return nil, err
		}
		return &ast.TryStatement{Span: span, Block: block, Param: param, Handler: handler, Finalizer: finalizer}, nil

	default:
		return nil, fmt.Errorf("unsupported node type %q", f.Type)
	}
}

func (d *decoder) identifier(data json.RawMessage) (*ast.Identifier, error) {
	n, err := d.node(data)
	if err != nil || n == nil {
		return nil, err
	}
	id, ok := n.(*ast.Identifier)
	if !ok {
		return nil, fmt.Errorf("expected Identifier, got %s", n.Type())
	}
	return id, nil
}

func (d *decoder) block(data json.RawMessage) (*ast.BlockStatement, error) {
	n, err := d.node(data)
	if err != nil || n == nil {
		return nil, err
	}
	b, ok := n.(*ast.BlockStatement)
	if !ok {
		return nil, fmt.Errorf("expected BlockStatement, got %s", n.Type())
	}
	return b, nil
}

func (d *decoder) declarators(items []json.RawMessage) ([]*ast.VariableDeclarator, error) {
	out := make([]*ast.VariableDeclarator, 0, len(items))
	for _, item := range items {
		n, err := d.node(item)
		if err != nil {
			return nil, err
		}
		dd, ok := n.(*ast.VariableDeclarator)
		if !ok {
			return nil, fmt.Errorf("expected VariableDeclarator, got %s", n.Type())
		}
		out = append(out, dd)
	}
	return out, nil
}

func (d *decoder) nodeList(items []json.RawMessage) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(items))
	for _, item := range items {
		n, err := d.node(item)
		if err != nil {
			return nil, err
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

func literalKind(s string) ast.LiteralKind {
	switch s {
	case "string":
		return ast.StringLiteral
	case "boolean":
		return ast.BooleanLiteral
	case "null":
		return ast.NullLiteral
	default:
		return ast.NumberLiteral
	}
}

func varKind(s string) ast.VarKind {
	switch s {
	case "let":
		return ast.Let
	case "const":
		return ast.Const
	default:
		return ast.Var
	}
}
