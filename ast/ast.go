// Package ast declares the generic syntax-tree contract the linting core
// traverses. The core itself never constructs JavaScript nodes — those are
// produced by the external parser collaborator (spec.md §1, §6) — so this
// package fixes only the shape every node must expose, plus a reflection
// based child-key resolver for node types the core was not compiled
// against.
package ast

import "github.com/nam-hle/eslint/token"

// Range is an ordered half-open [Start, End) byte-offset pair.
type Range struct {
	Start, End int
}

// Node is satisfied by every AST node the parser collaborator produces.
//
// Within this module, the parent back-reference is set only by the
// Traverser (SetParent); no package of this module calls AddComment, so
// comments are attached by whoever builds the tree. Rule code must treat
// nodes as otherwise read-only (spec.md §5).
type Node interface {
	Type() string
	Pos() token.Pos
	End() token.Pos
	Range() Range

	Parent() Node
	SetParent(Node)

	Comments() []*Comment
	AddComment(*Comment)
}

// Comment mirrors a single //-style or /*-style comment, kept out of the
// main AST (it is consumed primarily through the Token Store and the
// Directive Parser) but attachable to nodes for rules that want it.
type Comment struct {
	Kind  CommentKind
	Value string
	Rng   Range
	Start token.Pos
	End   token.Pos
}

// Range reports the comment's byte range.
func (c *Comment) Range() Range { return c.Rng }

// CommentKind distinguishes comment lexical forms.
type CommentKind int

const (
	Line CommentKind = iota
	Block
	Shebang
)

// base is embedded by every concrete node type to supply the Parent and
// Comments bookkeeping, the same way cue/ast's unexported `comments`
// struct is embedded by every CUE node type.
type base struct {
	parent   Node
	comments []*Comment
}

func (b *base) Parent() Node  { return b.parent }
func (b *base) SetParent(n Node) { b.parent = n }

func (b *base) Comments() []*Comment { return b.comments }
func (b *base) AddComment(c *Comment) {
	if c == nil {
		return
	}
	b.comments = append(b.comments, c)
}
