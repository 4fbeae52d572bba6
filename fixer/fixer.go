// Package fixer implements the Fix Arbitrator and the verifyAndFix
// multi-pass driver (spec.md §4.8).
package fixer

import (
	"sort"
	"strings"

	"github.com/nam-hle/eslint/rule"
)

// Result is the outcome of one arbitration pass.
type Result struct {
	Fixed    bool
	Output   string
	Messages []rule.Problem // problems whose fixes were not applied
}

// Arbitrate selects a maximal, pairwise non-conflicting subset of the
// fixes carried by problems and splices them into text in one pass
// (spec.md §4.8). Two fixes conflict if their ranges overlap; touching
// endpoints do not conflict.
func Arbitrate(text string, problems []rule.Problem) Result {
	type candidate struct {
		problem rule.Problem
		fix     *rule.Fix
	}
	var candidates []candidate
	var unfixable []rule.Problem
	for _, p := range problems {
		if p.Fix == nil {
			unfixable = append(unfixable, p)
			continue
		}
		candidates = append(candidates, candidate{problem: p, fix: p.Fix})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].fix.Range[0] != candidates[j].fix.Range[0] {
			return candidates[i].fix.Range[0] < candidates[j].fix.Range[0]
		}
		return candidates[i].fix.Range[1] < candidates[j].fix.Range[1]
	})

	var accepted []candidate
	var rejected []rule.Problem
	lastEnd := -1
	for _, c := range candidates {
		if c.fix.Range[0] >= lastEnd && c.fix.Range[1] <= len(text) {
			accepted = append(accepted, c)
			lastEnd = c.fix.Range[1]
		} else {
			rejected = append(rejected, c.problem)
		}
	}

	var b strings.Builder
	cursor := 0
	for _, c := range accepted {
		if c.fix.Range[0] > len(text) || c.fix.Range[1] > len(text) {
			continue
		}
		b.WriteString(text[cursor:c.fix.Range[0]])
		b.WriteString(c.fix.Text)
		cursor = c.fix.Range[1]
	}
	b.WriteString(text[cursor:])
	output := b.String()

	messages := append(append([]rule.Problem(nil), unfixable...), rejected...)
	return Result{Fixed: len(accepted) > 0, Output: output, Messages: messages}
}

// MaxPasses bounds the driver's parse→lint→fix loop (spec.md §4.8).
const MaxPasses = 10

// Lint performs one parse+lint pass over text, returning problems and an
// error for a fatal parse failure. It is the collaborator boundary the
// Driver iterates through; lintcore supplies the concrete implementation.
type Lint func(text string) (problems []rule.Problem, fatal bool, err error)

// Drive runs Lint, Arbitrate in a loop until no fix applies or MaxPasses
// is reached, then performs one final verify pass so the returned
// messages reflect the final text (spec.md §4.8). A fatal parse error
// aborts immediately with the fatal message and the latest text.
func Drive(text string, lint Lint) Result {
	fixedOverall := false
	for pass := 0; pass < MaxPasses; pass++ {
		problems, fatal, err := lint(text)
		if fatal || err != nil {
			return Result{Fixed: fixedOverall, Output: text, Messages: problems}
		}
		res := Arbitrate(text, problems)
		if !res.Fixed {
			return Result{Fixed: fixedOverall, Output: text, Messages: problems}
		}
		text = res.Output
		fixedOverall = true
	}
	problems, fatal, _ := lint(text)
	if fatal {
		return Result{Fixed: fixedOverall, Output: text, Messages: problems}
	}
	return Result{Fixed: fixedOverall, Output: text, Messages: problems}
}
