// Package source implements the Token Store: positional queries over the
// union of tokens and comments for a single parsed file (spec.md §4.1).
package source

import (
	"github.com/nam-hle/eslint/ast"
	"github.com/nam-hle/eslint/token"
)

// Kind enumerates the lexical categories a Token can carry. The exact set
// is deliberately small; the parser collaborator is free to use any value,
// rules compare on it structurally.
type Kind int

const (
	Punctuator Kind = iota
	Keyword
	Identifier
	NumericLiteral
	StringLiteral
	BooleanLiteral
	NullLiteral
	TemplateElement
	RegularExpression
)

// Token is a single lexical token, already positioned within a [token.File].
type Token struct {
	Kind  Kind
	Value string
	Rng   ast.Range
	Start token.Pos
	End   token.Pos
}

// Range reports the token's byte range.
func (t Token) Range() ast.Range { return t.Rng }

// Item is a single element of the merged tokens-and-comments stream: it
// wraps exactly one of Token or Comment.
type Item struct {
	Token   *Token
	Comment *ast.Comment
}

// IsComment reports whether this item is a comment rather than a token.
func (it Item) IsComment() bool { return it.Comment != nil }

// Range reports the item's byte range, regardless of which kind it wraps.
func (it Item) Range() ast.Range {
	if it.Comment != nil {
		return it.Comment.Rng
	}
	return it.Token.Rng
}

// Value reports the item's source text.
func (it Item) Value() string {
	if it.Comment != nil {
		return it.Comment.Value
	}
	return it.Token.Value
}
