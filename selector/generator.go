package selector

import (
	"sort"

	"github.com/nam-hle/eslint/ast"
	"github.com/nam-hle/eslint/event"
)

// Generator is the Node Event Generator (spec.md §4.3): it precompiles
// every selector once, groups them by enter/exit intent, and at each
// traversal step fires the subset matching the current node in
// specificity order, ties broken by registration order.
type Generator struct {
	emitter *event.Emitter

	byText map[string]*Selector
	enter  []*Selector
	exit   []*Selector
	order  int
}

// NewGenerator returns an empty Generator.
func NewGenerator() *Generator {
	return &Generator{emitter: event.New(), byText: make(map[string]*Selector)}
}

// Subscribe compiles selectorText (if not already known) and registers
// listener, tagged with ruleID for error attribution.
func (g *Generator) Subscribe(selectorText, ruleID string, listener func(ast.Node) error) error {
	sel, ok := g.byText[selectorText]
	if !ok {
		compiled, err := Compile(selectorText)
		if err != nil {
			return err
		}
		g.order++
		compiled.order = g.order
		g.byText[selectorText] = compiled
		sel = compiled
		if sel.Exit {
			g.exit = append(g.exit, sel)
		} else {
			g.enter = append(g.enter, sel)
		}
	}
	g.emitter.On(selectorText, ruleID, func(payload any) error {
		return listener(payload.(ast.Node))
	})
	return nil
}

func matching(list []*Selector, n ast.Node, ancestors []ast.Node) []*Selector {
	var out []*Selector
	for _, sel := range list {
		if sel.Matches(n, ancestors) {
			out = append(out, sel)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].specificity(), out[j].specificity()
		if si != sj {
			return si > sj
		}
		return out[i].order < out[j].order
	})
	return out
}

func (g *Generator) fire(list []*Selector, n ast.Node, ancestors []ast.Node) error {
	for _, sel := range matching(list, n, ancestors) {
		if err := g.emitter.Emit(sel.Raw, n); err != nil {
			return err
		}
	}
	return nil
}

// Enter fires every enter-intent selector matching n, in specificity
// order.
func (g *Generator) Enter(n ast.Node, ancestors []ast.Node) error {
	return g.fire(g.enter, n, ancestors)
}

// Leave fires every exit-intent (":exit") selector matching n.
func (g *Generator) Leave(n ast.Node, ancestors []ast.Node) error {
	return g.fire(g.exit, n, ancestors)
}
