package suppress_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/nam-hle/eslint/ast"
	"github.com/nam-hle/eslint/directive"
	"github.com/nam-hle/eslint/rule"
	"github.com/nam-hle/eslint/suppress"
)

func comment(rng ast.Range) *ast.Comment {
	return &ast.Comment{Kind: ast.Line, Rng: rng}
}

func TestDisableNextLineSuppressesMatchingRule(t *testing.T) {
	d := &directive.Directive{
		Kind:    directive.DisableNextLine,
		RuleIDs: []string{"no-var"},
		Line:    1,
		Comment: comment(ast.Range{Start: 0, End: 35}),
	}
	problems := []rule.Problem{{RuleID: "no-var", Line: 2, Column: 1}}

	out := suppress.Apply(problems, []*directive.Directive{d}, suppress.Options{Mode: suppress.Off})
	qt.Assert(t, qt.HasLen(out, 1))
	qt.Assert(t, qt.HasLen(out[0].Suppressions, 1))
	qt.Assert(t, qt.Equals(out[0].Suppressions[0].Kind, "directive"))
}

func TestDisableEnableRegion(t *testing.T) {
	disable := &directive.Directive{Kind: directive.Disable, Line: 1, Comment: comment(ast.Range{Start: 0, End: 10})}
	enable := &directive.Directive{Kind: directive.Enable, Line: 3, Comment: comment(ast.Range{Start: 20, End: 30})}
	problems := []rule.Problem{
		{RuleID: "no-var", Line: 2, Column: 1},
		{RuleID: "no-var", Line: 4, Column: 1},
	}

	out := suppress.Apply(problems, []*directive.Directive{disable, enable}, suppress.Options{Mode: suppress.Off})
	qt.Assert(t, qt.HasLen(out, 2))
	qt.Assert(t, qt.HasLen(out[0].Suppressions, 1))
	qt.Assert(t, qt.HasLen(out[1].Suppressions, 0))
}

func TestUnusedDirectiveReported(t *testing.T) {
	d := &directive.Directive{
		Kind:    directive.DisableNextLine,
		RuleIDs: []string{"no-var"},
		Line:    1,
		Comment: comment(ast.Range{Start: 0, End: 35}),
	}
	out := suppress.Apply(nil, []*directive.Directive{d}, suppress.Options{Mode: suppress.Error})
	qt.Assert(t, qt.HasLen(out, 1))
	qt.Assert(t, qt.Equals(out[0].Severity, 2))
	qt.Assert(t, qt.IsNotNil(out[0].Fix))
}

func TestUnusedDirectiveNotReportedWhenCovered(t *testing.T) {
	d := &directive.Directive{
		Kind:    directive.DisableNextLine,
		RuleIDs: []string{"no-var"},
		Line:    1,
		Comment: comment(ast.Range{Start: 0, End: 35}),
	}
	problems := []rule.Problem{{RuleID: "no-var", Line: 2, Column: 1}}
	out := suppress.Apply(problems, []*directive.Directive{d}, suppress.Options{Mode: suppress.Error})
	qt.Assert(t, qt.HasLen(out, 1))
	qt.Assert(t, qt.HasLen(out[0].Suppressions, 1))
}
