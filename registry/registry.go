// Package registry implements the Rule Registry (spec.md §4.9):
// id→rule lookup across a built-in set, dynamically defined rules, and a
// replacement table for removed ids.
package registry

import "github.com/nam-hle/eslint/rule"

// Registry resolves rule ids to [rule.Rule] implementations.
type Registry struct {
	builtin      map[string]rule.Rule
	dynamic      map[string]rule.Rule
	replacements map[string][]string
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		builtin:      make(map[string]rule.Rule),
		dynamic:      make(map[string]rule.Rule),
		replacements: make(map[string][]string),
	}
}

// DefineBuiltin registers a built-in rule under id.
func (r *Registry) DefineBuiltin(id string, def rule.Rule) {
	r.builtin[id] = def
}

// Define registers (or overrides) a dynamically defined rule under id,
// taking precedence over any built-in of the same id.
func (r *Registry) Define(id string, def rule.Rule) {
	r.dynamic[id] = def
}

// DeprecateWithReplacement records that id was removed in favor of
// replacedBy, so lookups produce a "Rule X was removed; use Y" diagnostic
// instead of silently failing.
func (r *Registry) DeprecateWithReplacement(id string, replacedBy ...string) {
	r.replacements[id] = replacedBy
}

// Result is what Lookup returns: at most one of Def or Diagnostic is set.
type Result struct {
	Def        rule.Rule
	Diagnostic string // non-empty when id could not be resolved to a rule
}

// Lookup resolves id via (a) the dynamic map, (b) the builtin map, (c)
// the replacement table; an id matching none of these produces a
// diagnostic describing an unknown rule (spec.md §4.9, §7).
func (r *Registry) Lookup(id string) Result {
	if def, ok := r.dynamic[id]; ok {
		return Result{Def: def}
	}
	if def, ok := r.builtin[id]; ok {
		return Result{Def: def}
	}
	if replacements, ok := r.replacements[id]; ok {
		if len(replacements) == 0 {
			return Result{Diagnostic: "Rule " + id + " was removed"}
		}
		msg := "Rule " + id + " was removed; use "
		for i, rep := range replacements {
			if i > 0 {
				msg += ", "
			}
			msg += rep
		}
		return Result{Diagnostic: msg}
	}
	return Result{Diagnostic: "Definition for rule '" + id + "' was not found"}
}
