package ast

import "github.com/nam-hle/eslint/token"

// Span supplies the position half of the Node contract for every
// concrete node type below. Exported so callers assembling a parser
// collaborator's output can construct node literals directly.
type Span struct {
	File *token.File
	Rng  Range
}

func (s Span) Range() Range   { return s.Rng }
func (s Span) Pos() token.Pos { return s.File.Pos(s.Rng.Start) }
func (s Span) End() token.Pos { return s.File.Pos(s.Rng.End) }

// NewSpan builds a Span covering [start, end) of file.
func NewSpan(file *token.File, start, end int) Span {
	return Span{File: file, Rng: Range{Start: start, End: end}}
}

// Program is the root node of a parsed file.
type Program struct {
	base
	Span
	Body []Node
}

func (*Program) Type() string { return "Program" }

// Identifier is a bare name reference.
type Identifier struct {
	base
	Span
	Name string
}

func (*Identifier) Type() string { return "Identifier" }

// LiteralKind distinguishes the handful of literal forms rules care about.
type LiteralKind int

const (
	NumberLiteral LiteralKind = iota
	StringLiteral
	BooleanLiteral
	NullLiteral
)

// Literal is a constant value.
type Literal struct {
	base
	Span
	Kind  LiteralKind
	Value string // source text of the literal
}

func (*Literal) Type() string { return "Literal" }

// VarKind is the declaration keyword used.
type VarKind int

const (
	Var VarKind = iota
	Let
	Const
)

func (k VarKind) String() string {
	return [...]string{"var", "let", "const"}[k]
}

// VariableDeclarator binds one identifier (or destructuring target,
// modeled here as a bare Identifier for simplicity) to an initializer.
type VariableDeclarator struct {
	base
	Span
	ID   *Identifier
	Init Node // nil if uninitialized
}

func (*VariableDeclarator) Type() string { return "VariableDeclarator" }

// VariableDeclaration is `var/let/const a = 1, b = 2;`.
type VariableDeclaration struct {
	base
	Span
	Kind         VarKind
	Declarations []*VariableDeclarator
}

func (*VariableDeclaration) Type() string { return "VariableDeclaration" }

// ExpressionStatement wraps a bare expression used as a statement.
type ExpressionStatement struct {
	base
	Span
	Expression Node
}

func (*ExpressionStatement) Type() string { return "ExpressionStatement" }

// BlockStatement is `{ ...Body }`.
type BlockStatement struct {
	base
	Span
	Body []Node
}

func (*BlockStatement) Type() string { return "BlockStatement" }

// IfStatement is `if (Test) Consequent else Alternate`.
type IfStatement struct {
	base
	Span
	Test       Node
	Consequent Node
	Alternate  Node // nil if absent
}

func (*IfStatement) Type() string { return "IfStatement" }

// BinaryOperator enumerates the operators this fixture AST supports.
type BinaryOperator string

// BinaryExpression is `Left Op Right`.
type BinaryExpression struct {
	base
	Span
	Operator BinaryOperator
	Left     Node
	Right    Node
}

func (*BinaryExpression) Type() string { return "BinaryExpression" }

// LogicalExpression is `Left && Right` / `Left || Right`.
type LogicalExpression struct {
	base
	Span
	Operator BinaryOperator
	Left     Node
	Right    Node
}

func (*LogicalExpression) Type() string { return "LogicalExpression" }

// CallExpression is `Callee(Arguments...)`.
type CallExpression struct {
	base
	Span
	Callee    Node
	Arguments []Node
}

func (*CallExpression) Type() string { return "CallExpression" }

// FunctionDeclaration is `function Id(Params...) Body`.
type FunctionDeclaration struct {
	base
	Span
	ID     *Identifier // nil for anonymous function expressions
	Params []*Identifier
	Body   *BlockStatement
}

func (*FunctionDeclaration) Type() string { return "FunctionDeclaration" }

// ReturnStatement is `return Argument;`.
type ReturnStatement struct {
	base
	Span
	Argument Node // nil for a bare `return;`
}

func (*ReturnStatement) Type() string { return "ReturnStatement" }

// ForStatement is a classic three-clause for loop.
type ForStatement struct {
	base
	Span
	Init   Node
	Test   Node
	Update Node
	Body   Node
}

func (*ForStatement) Type() string { return "ForStatement" }

// WhileStatement is `while (Test) Body`.
type WhileStatement struct {
	base
	Span
	Test Node
	Body Node
}

func (*WhileStatement) Type() string { return "WhileStatement" }

// TryStatement is `try Block catch (Param) Handler finally Finalizer`.
type TryStatement struct {
	base
	Span
	Block     *BlockStatement
	Param     *Identifier // nil if the catch clause omits a binding
	Handler   *BlockStatement
	Finalizer *BlockStatement // nil if absent
}

func (*TryStatement) Type() string { return "TryStatement" }

// DefaultVisitorKeys is the built-in child-key table for the node types
// declared in this file, analogous to the `eslint-visitor-keys` package's
// default export.
var DefaultVisitorKeys = VisitorKeys{
	"Program":              {"Body"},
	"VariableDeclaration":  {"Declarations"},
	"VariableDeclarator":   {"ID", "Init"},
	"ExpressionStatement":  {"Expression"},
	"BlockStatement":       {"Body"},
	"IfStatement":          {"Test", "Consequent", "Alternate"},
	"BinaryExpression":     {"Left", "Right"},
	"LogicalExpression":    {"Left", "Right"},
	"CallExpression":       {"Callee", "Arguments"},
	"FunctionDeclaration":  {"ID", "Params", "Body"},
	"ReturnStatement":      {"Argument"},
	"ForStatement":         {"Init", "Test", "Update", "Body"},
	"WhileStatement":       {"Test", "Body"},
	"TryStatement":         {"Block", "Param", "Handler", "Finalizer"},
	"Identifier":           {},
	"Literal":              {},
}
