// Package rule defines the external Rule contract and the Rule Runner
// that installs rules against a traversal (spec.md §4.6).
package rule

import (
	"fmt"
	"strings"

	"github.com/nam-hle/eslint/ast"
	"github.com/nam-hle/eslint/codepath"
	"github.com/nam-hle/eslint/selector"
	"github.com/nam-hle/eslint/source"
	"github.com/nam-hle/eslint/token"
	"github.com/nam-hle/eslint/traverse"
)

// Type classifies what kind of problem a rule reports.
type Type string

const (
	TypeProblem    Type = "problem"
	TypeSuggestion Type = "suggestion"
	TypeLayout     Type = "layout"
)

// Meta is a rule's static metadata (spec.md §6, Rule interface contract).
type Meta struct {
	Type           Type
	Docs           any
	Fixable        string // "code", "whitespace", or "" (not fixable)
	HasSuggestions bool
	Messages       map[string]string
	Schema         any
	Deprecated     bool
	ReplacedBy     []string
}

// Fix is a textual edit: replace source[Range[0]:Range[1]] with Text.
type Fix struct {
	Range [2]int
	Text  string
}

// Suggestion is a named, not-auto-applied fix.
type Suggestion struct {
	Desc      string
	MessageID string
	Data      map[string]any
	Fix       func() *Fix
}

// Descriptor is the argument to Context.Report.
type Descriptor struct {
	Node      ast.Node        // either Node or Loc must be set
	Loc       *token.Position
	Message   string
	MessageID string
	Data      map[string]any
	Fix       func() *Fix
	Suggest   []Suggestion
}

// Suppression annotates a problem suppressed by a disable directive
// (spec.md §4.7).
type Suppression struct {
	Kind          string // always "directive"
	Justification string
}

// Reference is one read or write of a name recorded by the external
// scope analyzer, not yet resolved to a Variable in its own Scope
// (spec.md §3, "unresolved-reference list").
type Reference struct {
	Name  string
	Node  ast.Node
	Write bool
}

// Variable is one binding declared inside a Scope (spec.md §3). Used is
// mutated in place by MarkVariableAsUsed; the scope analyzer is expected
// to read it back after a pass to drive unused-variable reporting.
type Variable struct {
	Name       string
	Used       bool
	References []Reference
}

// Scope is consumed read-only from the external scope analyzer (spec.md
// §3, §4.6): global scope -> module/function scopes -> block scopes.
// Block/Children let the Runner align the scope chain with the
// traversal; Upper/Variables/Through are the read surface a rule sees
// through Context.Scope and MarkVariableAsUsed.
type Scope interface {
	// Block is the node that introduced this scope (a Program, function,
	// or block).
	Block() ast.Node
	// Upper is the immediately enclosing scope, nil for the global scope.
	Upper() Scope
	// Children are the scopes nested directly inside this one.
	Children() []Scope
	// Variables is this scope's own name->variable map.
	Variables() map[string]*Variable
	// Through is this scope's unresolved reference list: reads and
	// writes not yet bound to one of Variables.
	Through() []Reference
}

// Problem is the stable lint finding shape (spec.md §6).
type Problem struct {
	RuleID       string
	Severity     int
	Message      string
	Line         int
	Column       int
	EndLine      int
	EndColumn    int
	NodeType     string
	MessageID    string
	Fix          *Fix
	Suggestions  []Suggestion
	Suppressions []Suppression
	Fatal        bool
}

// Listener handles one selector match. It returns an error for a rule
// runtime failure (spec.md §7); the Runner attributes it to the rule id
// and aborts the pass.
type Listener func(n ast.Node) error

// Listeners is what Rule.Create returns: a selector→listener map plus an
// optional code-path hook set (spec.md §6).
type Listeners struct {
	Selectors map[string]Listener
	CodePath  *codepath.Hooks
}

// Rule is the external collaborator contract every lint rule satisfies.
type Rule interface {
	Meta() Meta
	Create(ctx *Context) (Listeners, error)
}

// Context is vended once per rule per file (spec.md §4.6).
type Context struct {
	ID              string
	Options         []any
	Settings        map[string]any
	LanguageOptions any
	ParserServices  any
	Filename        string

	SourceCode *source.Store
	File       *token.File

	meta      Meta
	ancestors *[]ast.Node
	onProblem func(Problem)
	scope     *Scope // points at the Runner's live current-scope cell
}

// Ancestors returns the current ancestor stack, innermost last.
func (c *Context) Ancestors() []ast.Node {
	return *c.ancestors
}

// Scope returns the innermost scope enclosing the node currently being
// visited, or nil if no scope analyzer was wired for this pass (spec.md
// §4.6, "scope accessor").
func (c *Context) Scope() Scope {
	if c.scope == nil {
		return nil
	}
	return *c.scope
}

// DeclaredVariables returns the variables declared directly in the
// current scope (spec.md §4.6, "declared-variables accessor").
func (c *Context) DeclaredVariables() []*Variable {
	s := c.Scope()
	if s == nil {
		return nil
	}
	vars := s.Variables()
	out := make([]*Variable, 0, len(vars))
	for _, v := range vars {
		out = append(out, v)
	}
	return out
}

// MarkVariableAsUsed records name as used, walking upward from the
// current scope through the scope chain until a matching variable is
// found (spec.md §4.6, §5 "markVariableAsUsed walks upward through the
// scope chain starting from the innermost ... scope"). It reports
// whether a variable was found and marked.
func (c *Context) MarkVariableAsUsed(name string) bool {
	for s := c.Scope(); s != nil; s = s.Upper() {
		if v, ok := s.Variables()[name]; ok {
			v.Used = true
			return true
		}
	}
	return false
}

// Report validates and emits a problem. It returns an error (the "fatal
// error" of spec.md §7) for a missing messageId, a fix without
// meta.Fixable, or a suggestion without meta.HasSuggestions.
func (c *Context) Report(d Descriptor) error {
	message := d.Message
	if d.MessageID != "" {
		tmpl, ok := c.meta.Messages[d.MessageID]
		if !ok {
			return fmt.Errorf("rule %q: unknown messageId %q", c.ID, d.MessageID)
		}
		message = interpolate(tmpl, d.Data)
	}
	if d.Fix != nil && c.meta.Fixable == "" {
		return fmt.Errorf("rule %q: returned a fix but meta.fixable is unset", c.ID)
	}
	if len(d.Suggest) > 0 && !c.meta.HasSuggestions {
		return fmt.Errorf("rule %q: returned suggestions but meta.hasSuggestions is false", c.ID)
	}

	p := Problem{
		RuleID:    c.ID,
		Message:   message,
		MessageID: d.MessageID,
		Suggestions: d.Suggest,
	}

	switch {
	case d.Node != nil:
		start := c.File.Position(d.Node.Pos())
		end := c.File.Position(d.Node.End())
		p.Line, p.Column = start.Line, start.Column
		p.EndLine, p.EndColumn = end.Line, end.Column
		p.NodeType = d.Node.Type()
	case d.Loc != nil:
		p.Line, p.Column = d.Loc.Line, d.Loc.Column
	}

	if d.Fix != nil {
		p.Fix = d.Fix()
	}

	c.onProblem(p)
	return nil
}

func interpolate(tmpl string, data map[string]any) string {
	if data == nil {
		return tmpl
	}
	var b strings.Builder
	for {
		start := strings.Index(tmpl, "{{")
		if start < 0 {
			b.WriteString(tmpl)
			break
		}
		end := strings.Index(tmpl[start:], "}}")
		if end < 0 {
			b.WriteString(tmpl)
			break
		}
		end += start
		name := strings.TrimSpace(tmpl[start+2 : end])
		b.WriteString(tmpl[:start])
		if v, ok := data[name]; ok {
			fmt.Fprint(&b, v)
		} else {
			b.WriteString(tmpl[start : end+2])
		}
		tmpl = tmpl[end+2:]
	}
	return b.String()
}

type registration struct {
	id   string
	meta Meta
}

// Runner installs rules against one traversal and collects problems
// (spec.md §4.6).
type Runner struct {
	gen       *selector.Generator
	cpHooks   codepath.Hooks
	useCP     bool
	ancestors []ast.Node
	problems  []Problem

	// scope is the innermost scope enclosing the node currently being
	// visited; every Context's Scope accessor reads through a pointer to
	// this cell, so it tracks Run's traversal without each Context
	// needing its own copy. scopeStack records, for each scope Run has
	// pushed, the node whose Leave should pop it and the scope to
	// restore.
	scope      Scope
	scopeStack []scopeFrame
}

type scopeFrame struct {
	node ast.Node
	prev Scope
}

// NewRunner returns an empty Runner.
func NewRunner() *Runner {
	return &Runner{gen: selector.NewGenerator()}
}

// Register builds a Context for def and invokes Create exactly once,
// subscribing its selector listeners (spec.md §4.6, steps 1-3).
func (r *Runner) Register(id string, def Rule, opts []any, settings map[string]any, languageOptions any, filename string, file *token.File, sourceCode *source.Store) error {
	meta := def.Meta()
	ctx := &Context{
		ID:              id,
		Options:         opts,
		Settings:        settings,
		LanguageOptions: languageOptions,
		Filename:        filename,
		SourceCode:      sourceCode,
		File:            file,
		meta:            meta,
		ancestors:       &r.ancestors,
		onProblem:       func(p Problem) { r.problems = append(r.problems, p) },
		scope:           &r.scope,
	}

	listeners, err := def.Create(ctx)
	if err != nil {
		return fmt.Errorf("rule %q: create failed: %w", id, err)
	}
	for selText, fn := range listeners.Selectors {
		if err := r.gen.Subscribe(selText, id, func(n ast.Node) error { return fn(n) }); err != nil {
			return fmt.Errorf("rule %q: %w", id, err)
		}
	}
	if listeners.CodePath != nil {
		r.mergeCodePathHooks(*listeners.CodePath)
	}
	return nil
}

// mergeCodePathHooks folds a rule's code-path hooks into the shared hook
// set; Run lazily builds a single Analyzer from the accumulated hooks so
// every rule observes the same segment graph.
func (r *Runner) mergeCodePathHooks(h codepath.Hooks) {
	r.useCP = true
	r.cpHooks.PathStart = chain2(r.cpHooks.PathStart, h.PathStart)
	r.cpHooks.PathEnd = chain2(r.cpHooks.PathEnd, h.PathEnd)
	r.cpHooks.SegmentStart = chainSeg(r.cpHooks.SegmentStart, h.SegmentStart)
	r.cpHooks.SegmentEnd = chainSeg(r.cpHooks.SegmentEnd, h.SegmentEnd)
	r.cpHooks.SegmentLoop = chainLoop(r.cpHooks.SegmentLoop, h.SegmentLoop)
}

func chain2(a, b func(*codepath.Path, ast.Node)) func(*codepath.Path, ast.Node) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(p *codepath.Path, n ast.Node) { a(p, n); b(p, n) }
}

func chainSeg(a, b func(*codepath.Segment, ast.Node)) func(*codepath.Segment, ast.Node) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(s *codepath.Segment, n ast.Node) { a(s, n); b(s, n) }
}

func chainLoop(a, b func(*codepath.Segment, *codepath.Segment, ast.Node)) func(*codepath.Segment, *codepath.Segment, ast.Node) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(from, to *codepath.Segment, n ast.Node) { a(from, to, n); b(from, to, n) }
}

// Run performs the single traversal pass, dispatching enter/leave to the
// Node Event Generator (and the Code-Path Analyzer, if any rule used it)
// in lockstep (spec.md §5, ordering guarantees). globalScope is the root
// of the external scope analyzer's chain (spec.md §3); it may be nil if
// no scope analyzer was wired, in which case Context.Scope always
// returns nil.
func (r *Runner) Run(root ast.Node, keys ast.VisitorKeys, globalScope Scope) ([]Problem, error) {
	var cp *codepath.Analyzer
	if r.useCP {
		cp = codepath.NewAnalyzer(r.cpHooks)
	}

	r.scope = globalScope

	var walkErr error
	traverse.Walk(root, keys, traverse.Visitor{
		Enter: func(n, _ ast.Node, ctl *traverse.Controller) {
			r.pushScope(n)
			if cp != nil {
				cp.Enter(n)
			}
			if err := r.gen.Enter(n, r.ancestors); err != nil {
				walkErr = err
				ctl.Break()
				return
			}
			r.ancestors = append(r.ancestors, n)
		},
		Leave: func(n, _ ast.Node, ctl *traverse.Controller) {
			if len(r.ancestors) > 0 {
				r.ancestors = r.ancestors[:len(r.ancestors)-1]
			}
			if err := r.gen.Leave(n, r.ancestors); err != nil {
				walkErr = err
				ctl.Break()
				return
			}
			if cp != nil {
				cp.Leave(n)
			}
			r.popScope(n)
		},
	})
	if walkErr != nil {
		return r.problems, walkErr
	}
	return r.problems, nil
}

// pushScope enters the scope n itself introduces, if any: either n is
// the current scope's own Block (the root node, checked idempotently),
// or n is the Block of one of the current scope's Children.
func (r *Runner) pushScope(n ast.Node) {
	if r.scope == nil {
		return
	}
	if r.scope.Block() == n {
		r.scopeStack = append(r.scopeStack, scopeFrame{node: n, prev: r.scope})
		return
	}
	for _, child := range r.scope.Children() {
		if child.Block() == n {
			r.scopeStack = append(r.scopeStack, scopeFrame{node: n, prev: r.scope})
			r.scope = child
			return
		}
	}
}

// popScope restores the scope pushScope replaced when leaving the node
// that introduced it.
func (r *Runner) popScope(n ast.Node) {
	if len(r.scopeStack) == 0 {
		return
	}
	top := r.scopeStack[len(r.scopeStack)-1]
	if top.node != n {
		return
	}
	r.scopeStack = r.scopeStack[:len(r.scopeStack)-1]
	r.scope = top.prev
}
