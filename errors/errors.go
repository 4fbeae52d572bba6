// Package errors defines the shared error type used internally while a lint
// pass is being assembled: configuration failures, directive misuse, and
// fatal parse errors are all represented as [Error] values before they are
// converted to the public Problem shape (spec.md §7).
package errors

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/nam-hle/eslint/token"
)

// Error is the common error shape produced while assembling a lint pass.
type Error interface {
	error
	// Position returns the primary position of the error.
	Position() token.Pos
	// InputPositions reports positions that contributed to the error, in
	// addition to Position, such as the errors of a wrapped cause.
	InputPositions() []token.Pos
	// Path returns the path into the lint configuration or AST where the
	// error occurred. May be nil if the error has no such location.
	Path() []string
	// Msg returns the unformatted message and its arguments.
	Msg() (format string, args []any)
}

type posError struct {
	pos     token.Pos
	format  string
	args    []any
	path    []string
	inputs  []token.Pos
	wrapped error
}

// Newf creates an Error with the associated position and message.
func Newf(p token.Pos, format string, args ...any) Error {
	return &posError{pos: p, format: format, args: args}
}

// Wrapf creates an Error with the associated position and message, with
// err recorded as subordinate context. If err is itself an [Error], its
// position is folded into the new error's InputPositions and its Path is
// carried over.
func Wrapf(err error, p token.Pos, format string, args ...any) Error {
	pe := &posError{pos: p, format: format, args: args, wrapped: err}
	if ee, ok := err.(Error); ok {
		pe.inputs = append([]token.Pos{ee.Position()}, ee.InputPositions()...)
		pe.path = ee.Path()
	}
	return pe
}

func (e *posError) Position() token.Pos        { return e.pos }
func (e *posError) InputPositions() []token.Pos { return e.inputs }
func (e *posError) Path() []string             { return e.path }
func (e *posError) Msg() (string, []any)       { return e.format, e.args }
func (e *posError) Unwrap() error              { return e.wrapped }
func (e *posError) Error() string {
	msg := fmt.Sprintf(e.format, e.args...)
	if e.wrapped != nil {
		return msg + ": " + e.wrapped.Error()
	}
	return msg
}

// List is an accumulator of [Error] values, itself an error.
type List []Error

// AddNewf appends a new Error built from pos, format, and args.
func (p *List) AddNewf(pos token.Pos, format string, args ...any) {
	*p = append(*p, Newf(pos, format, args...))
}

// Add appends err; a nil err is ignored. A List does not implement
// [Error], so Add never receives one to flatten.
func (p *List) Add(err Error) {
	if err == nil {
		return
	}
	*p = append(*p, err)
}

// Err returns nil for an empty list, the single error for a one-element
// list, or the list itself (as an error) otherwise.
func (p List) Err() error {
	switch len(p) {
	case 0:
		return nil
	case 1:
		return p[0]
	default:
		return p
	}
}

// Sort orders the list by position, then by message text.
func (p List) Sort() {
	slices.SortFunc(p, func(a, b Error) int {
		if c := comparePos(a.Position(), b.Position()); c != 0 {
			return c
		}
		return cmp.Compare(a.Error(), b.Error())
	})
}

func comparePos(a, b token.Pos) int {
	if a == b {
		return 0
	} else if a == token.NoPos {
		return -1
	} else if b == token.NoPos {
		return +1
	}
	return a.Compare(b)
}

// RemoveMultiples sorts the list and drops entries that are duplicates of
// the previous one by (position, message).
func (p *List) RemoveMultiples() {
	p.Sort()
	*p = slices.CompactFunc(*p, func(a, b Error) bool {
		return comparePos(a.Position(), b.Position()) == 0 && a.Error() == b.Error()
	})
}

func (p List) Error() string {
	var b strings.Builder
	for i, e := range p {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Error())
	}
	return b.String()
}
