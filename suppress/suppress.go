// Package suppress implements the Disable Directive Applier (spec.md
// §4.7): it filters and annotates problems according to parsed disable
// directives, and flags directives that suppressed nothing.
package suppress

import (
	"sort"

	"github.com/nam-hle/eslint/directive"
	"github.com/nam-hle/eslint/rule"
)

// Mode governs unused-directive reporting severity.
type Mode string

const (
	Off   Mode = "off"
	Warn  Mode = "warn"
	Error Mode = "error"
)

// Options configures Apply.
type Options struct {
	Mode         Mode
	DisableFixes bool
}

type lineSupp struct {
	d       *directive.Directive
	ruleIDs []string
	line    int
}

// Apply sorts problems by (line, column), walks directives in source
// order applying their suppression effect, and — unless opts.Mode is Off
// — appends a synthetic problem for every directive that suppressed
// nothing (spec.md §4.7).
//
// Simplification: a wildcard `eslint-disable` region and a same-scope
// per-rule `eslint-enable` are tracked independently rather than as a
// single merged rule-state stack, so re-enabling one rule inside an
// active wildcard region does not narrow the wildcard. See DESIGN.md.
func Apply(problems []rule.Problem, directives []*directive.Directive, opts Options) []rule.Problem {
	sorted := append([]rule.Problem(nil), problems...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Line != sorted[j].Line {
			return sorted[i].Line < sorted[j].Line
		}
		return sorted[i].Column < sorted[j].Column
	})

	var wildcardActive *directive.Directive
	perRuleActive := make(map[string]*directive.Directive)
	var lineSupps []lineSupp
	covered := make(map[*directive.Directive]bool)

	di := 0
	advance := func(line int) {
		for di < len(directives) && directives[di].Line <= line {
			d := directives[di]
			switch d.Kind {
			case directive.Disable:
				if len(d.RuleIDs) == 0 {
					wildcardActive = d
				} else {
					for _, id := range d.RuleIDs {
						perRuleActive[id] = d
					}
				}
			case directive.Enable:
				if len(d.RuleIDs) == 0 {
					wildcardActive = nil
					perRuleActive = make(map[string]*directive.Directive)
				} else {
					for _, id := range d.RuleIDs {
						delete(perRuleActive, id)
					}
				}
			case directive.DisableLine:
				lineSupps = append(lineSupps, lineSupp{d: d, ruleIDs: d.RuleIDs, line: d.Line})
			case directive.DisableNextLine:
				// d.Line anchors to the comment's own line; the code it
				// covers is the line that follows.
				lineSupps = append(lineSupps, lineSupp{d: d, ruleIDs: d.RuleIDs, line: d.Line + 1})
			}
			di++
		}
	}

	out := make([]rule.Problem, 0, len(sorted))
	for _, p := range sorted {
		advance(p.Line)

		if d := matchLine(lineSupps, p); d != nil {
			covered[d] = true
			out = append(out, suppressed(p, d))
			continue
		}
		if d, ok := perRuleActive[p.RuleID]; ok {
			covered[d] = true
			out = append(out, suppressed(p, d))
			continue
		}
		if wildcardActive != nil {
			covered[wildcardActive] = true
			out = append(out, suppressed(p, wildcardActive))
			continue
		}
		out = append(out, p)
	}
	advance(int(^uint(0) >> 1))

	if opts.Mode != Off {
		sev := 1
		if opts.Mode == Error {
			sev = 2
		}
		seen := make(map[*directive.Directive]bool)
		for _, d := range directives {
			switch d.Kind {
			case directive.Disable, directive.DisableLine, directive.DisableNextLine:
			default:
				continue
			}
			if covered[d] || seen[d] {
				continue
			}
			seen[d] = true
			out = append(out, unusedProblem(d, sev, opts.DisableFixes))
		}
	}
	return out
}

func matchLine(supps []lineSupp, p rule.Problem) *directive.Directive {
	for _, s := range supps {
		if s.line != p.Line {
			continue
		}
		if len(s.ruleIDs) == 0 || contains(s.ruleIDs, p.RuleID) {
			return s.d
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func suppressed(p rule.Problem, d *directive.Directive) rule.Problem {
	p.Fatal = false
	p.Suppressions = append(p.Suppressions, rule.Suppression{
		Kind:          "directive",
		Justification: d.Justification,
	})
	return p
}

func unusedProblem(d *directive.Directive, severity int, disableFixes bool) rule.Problem {
	p := rule.Problem{
		Severity: severity,
		Message:  "Unused eslint-disable directive (no problems were reported).",
		Line:     d.Line,
		Column:   d.Column,
	}
	if !disableFixes {
		rng := d.Comment.Range()
		p.Fix = &rule.Fix{Range: [2]int{rng.Start, rng.End}, Text: ""}
	}
	return p
}
