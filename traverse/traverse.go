// Package traverse implements the depth-first AST walker (spec.md §4.2).
package traverse

import "github.com/nam-hle/eslint/ast"

// control is returned by a Visitor callback to influence the walk.
type control int

const (
	continueWalk control = iota
	skipWalk
	breakWalk
)

// Controller is passed to Visitor callbacks so they can suppress descent
// into the current node (Skip) or abort the walk entirely (Break).
type Controller struct {
	c control
}

// Skip suppresses descent into the node currently being entered. It has
// no effect once the corresponding Leave call has been made.
func (c *Controller) Skip() { c.c = skipWalk }

// Break aborts the remainder of the walk, including any pending Leave
// calls for ancestors of the current node.
func (c *Controller) Break() { c.c = breakWalk }

// Visitor receives Enter before a node's children are visited and Leave
// after. Both may inspect parent, the node's parent in the tree (nil for
// the root).
type Visitor struct {
	Enter func(n, parent ast.Node, ctl *Controller)
	Leave func(n, parent ast.Node, ctl *Controller)
}

// Walk performs a depth-first traversal of root, calling v.Enter then
// recursing into child keys (resolved via keys, falling back to
// reflection for unknown node types per [ast.Children]) then v.Leave.
//
// Walk is the Traverser's only mutator of the AST: it sets each visited
// node's parent back-reference during Enter (spec.md §4.2, §9).
func Walk(root ast.Node, keys ast.VisitorKeys, v Visitor) {
	ctl := &Controller{}
	walk(root, nil, keys, v, ctl)
}

func walk(n, parent ast.Node, keys ast.VisitorKeys, v Visitor, ctl *Controller) bool {
	if n == nil {
		return true
	}
	n.SetParent(parent)

	ctl.c = continueWalk
	if v.Enter != nil {
		v.Enter(n, parent, ctl)
	}
	switch ctl.c {
	case breakWalk:
		return false
	case skipWalk:
		// Descend no further, but still fire Leave below.
	default:
		for _, child := range ast.Children(n, keys) {
			if !walk(child, n, keys, v, ctl) {
				return false
			}
		}
	}

	ctl.c = continueWalk
	if v.Leave != nil {
		v.Leave(n, parent, ctl)
	}
	return ctl.c != breakWalk
}
