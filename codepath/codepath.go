// Package codepath implements the Code-Path Analyzer (spec.md §4.4): an
// optional wrapper around the node-event walk that also emits synthetic
// control-flow events for Program and function-like roots.
//
// Scope note: branch forking is implemented for if/else and for/while
// loops, which covers the segment/join/back-edge mechanics the testable
// properties in spec.md §8 exercise. try/catch/finally, switch, and
// short-circuit logical operators are walked as straight-line code
// within the enclosing segment rather than forked — see DESIGN.md.
package codepath

import "github.com/nam-hle/eslint/ast"

// Segment is a basic block of a code path.
type Segment struct {
	ID           int
	Predecessors []*Segment
	Reachable    bool
}

func newSegment(id int, preds []*Segment) *Segment {
	reachable := len(preds) == 0
	for _, p := range preds {
		if p.Reachable {
			reachable = true
		}
	}
	return &Segment{ID: id, Predecessors: preds, Reachable: reachable}
}

// Path is the control-flow graph of one function-like node or Program.
type Path struct {
	ID      int
	Node    ast.Node
	Initial *Segment
	Final   []*Segment
}

// Hooks receives the synthetic events. Any may be nil.
type Hooks struct {
	PathStart    func(p *Path, n ast.Node)
	PathEnd      func(p *Path, n ast.Node)
	SegmentStart func(s *Segment, n ast.Node)
	SegmentEnd   func(s *Segment, n ast.Node)
	SegmentLoop  func(from, to *Segment, n ast.Node)
}

type forkState struct {
	before     *Segment
	branchEnds []*Segment
}

type loopState struct {
	test *Segment
}

type frame struct {
	path    *Path
	current *Segment
	forks   map[ast.Node]*forkState
	loops   map[ast.Node]*loopState
}

// Analyzer drives the synthetic event stream. Call Enter/Leave from the
// same traversal that drives the Node Event Generator, in the same
// enter/leave order (spec.md §4.4, ordering contract).
type Analyzer struct {
	hooks       Hooks
	segCounter  int
	pathCounter int
	stack       []*frame
}

// NewAnalyzer returns an Analyzer reporting through hooks.
func NewAnalyzer(hooks Hooks) *Analyzer {
	return &Analyzer{hooks: hooks}
}

func (a *Analyzer) nextSegID() int {
	a.segCounter++
	return a.segCounter
}

func isPathRoot(n ast.Node) bool {
	switch n.Type() {
	case "Program", "FunctionDeclaration":
		return true
	}
	return false
}

func (a *Analyzer) top() *frame {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1]
}

func (a *Analyzer) startSegment(f *frame, n ast.Node, preds []*Segment) *Segment {
	seg := newSegment(a.nextSegID(), preds)
	f.current = seg
	if a.hooks.SegmentStart != nil {
		a.hooks.SegmentStart(seg, n)
	}
	return seg
}

func (a *Analyzer) endSegment(n ast.Node, seg *Segment) {
	if a.hooks.SegmentEnd != nil {
		a.hooks.SegmentEnd(seg, n)
	}
}

// Enter processes a node being entered, in the same order the Traverser
// visits it.
func (a *Analyzer) Enter(n ast.Node) {
	if isPathRoot(n) {
		a.pathCounter++
		f := &frame{
			path:  &Path{ID: a.pathCounter, Node: n},
			forks: make(map[ast.Node]*forkState),
			loops: make(map[ast.Node]*loopState),
		}
		a.stack = append(a.stack, f)
		if a.hooks.PathStart != nil {
			a.hooks.PathStart(f.path, n)
		}
		seg := a.startSegment(f, n, nil)
		f.path.Initial = seg
		return
	}

	f := a.top()
	if f == nil {
		return
	}
	parent := n.Parent()
	if parent == nil {
		return
	}

	switch p := parent.(type) {
	case *ast.IfStatement:
		switch {
		case p.Consequent == n:
			f.forks[p] = &forkState{before: f.current}
			a.endSegment(p, f.current)
			a.startSegment(f, n, []*Segment{f.forks[p].before})
		case p.Alternate == n:
			fork := f.forks[p]
			fork.branchEnds = append(fork.branchEnds, f.current)
			a.endSegment(p, f.current)
			a.startSegment(f, n, []*Segment{fork.before})
		}
	case *ast.ForStatement:
		if p.Body == n {
			loop := f.loops[p]
			a.startSegment(f, n, []*Segment{loop.test})
		}
	case *ast.WhileStatement:
		if p.Body == n {
			loop := f.loops[p]
			a.startSegment(f, n, []*Segment{loop.test})
		}
	}

	switch loop := n.(type) {
	case *ast.ForStatement:
		before := f.current
		a.endSegment(loop, before)
		test := a.startSegment(f, loop, []*Segment{before})
		f.loops[loop] = &loopState{test: test}
	case *ast.WhileStatement:
		before := f.current
		a.endSegment(loop, before)
		test := a.startSegment(f, loop, []*Segment{before})
		f.loops[loop] = &loopState{test: test}
	}
}

// Leave processes a node being left, in the same order the Traverser
// visits it.
func (a *Analyzer) Leave(n ast.Node) {
	f := a.top()
	if f == nil {
		return
	}

	switch loop := n.(type) {
	case *ast.ForStatement:
		ls := f.loops[loop]
		bodyEnd := f.current
		a.endSegment(loop, bodyEnd)
		if a.hooks.SegmentLoop != nil {
			a.hooks.SegmentLoop(bodyEnd, ls.test, loop)
		}
		ls.test.Predecessors = append(ls.test.Predecessors, bodyEnd)
		delete(f.loops, loop)
		a.startSegment(f, loop, []*Segment{ls.test})
	case *ast.WhileStatement:
		ls := f.loops[loop]
		bodyEnd := f.current
		a.endSegment(loop, bodyEnd)
		if a.hooks.SegmentLoop != nil {
			a.hooks.SegmentLoop(bodyEnd, ls.test, loop)
		}
		ls.test.Predecessors = append(ls.test.Predecessors, bodyEnd)
		delete(f.loops, loop)
		a.startSegment(f, loop, []*Segment{ls.test})
	case *ast.IfStatement:
		fork, ok := f.forks[loop]
		if ok {
			ends := append(fork.branchEnds, f.current)
			if loop.Alternate == nil {
				ends = append(ends, fork.before)
			}
			a.endSegment(loop, f.current)
			a.startSegment(f, loop, ends)
			delete(f.forks, loop)
		}
	}

	if isPathRoot(n) {
		a.endSegment(n, f.current)
		f.path.Final = append(f.path.Final, f.current)
		if a.hooks.PathEnd != nil {
			a.hooks.PathEnd(f.path, n)
		}
		a.stack = a.stack[:len(a.stack)-1]
	}
}
