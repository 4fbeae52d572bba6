package fixer_test

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/nam-hle/eslint/fixer"
	"github.com/nam-hle/eslint/rule"
)

func TestArbitrateNonOverlapping(t *testing.T) {
	text := "var x=1;\nvar y=2;\n"
	problems := []rule.Problem{
		{RuleID: "no-var", Fix: &rule.Fix{Range: [2]int{0, 3}, Text: "let"}},
		{RuleID: "no-var", Fix: &rule.Fix{Range: [2]int{9, 12}, Text: "let"}},
	}
	res := fixer.Arbitrate(text, problems)
	qt.Assert(t, qt.IsTrue(res.Fixed))
	qt.Assert(t, qt.Equals(res.Output, "let x=1;\nlet y=2;\n"))
	qt.Assert(t, qt.HasLen(res.Messages, 0))
}

func TestArbitrateConflictingFixesKeepsOne(t *testing.T) {
	text := "abcde"
	problems := []rule.Problem{
		{RuleID: "r1", Fix: &rule.Fix{Range: [2]int{0, 5}, Text: "X"}},
		{RuleID: "r2", Fix: &rule.Fix{Range: [2]int{0, 5}, Text: "Y"}},
	}
	res := fixer.Arbitrate(text, problems)
	qt.Assert(t, qt.IsTrue(res.Fixed))
	qt.Assert(t, qt.Equals(res.Output, "X"))
	qt.Assert(t, qt.HasLen(res.Messages, 1))
	qt.Assert(t, qt.Equals(res.Messages[0].RuleID, "r2"))
}

func TestDriveConvergesWithinPassCap(t *testing.T) {
	text := "vvv"
	calls := 0
	lint := func(text string) ([]rule.Problem, bool, error) {
		calls++
		idx := strings.IndexByte(text, 'v')
		if idx < 0 {
			return nil, false, nil
		}
		return []rule.Problem{{
			RuleID: "replace-v",
			Fix:    &rule.Fix{Range: [2]int{idx, idx + 1}, Text: "w"},
		}}, false, nil
	}

	res := fixer.Drive(text, lint)
	qt.Assert(t, qt.IsTrue(res.Fixed))
	qt.Assert(t, qt.Equals(res.Output, "www"))
	qt.Assert(t, qt.HasLen(res.Messages, 0))
	qt.Assert(t, qt.IsTrue(calls <= fixer.MaxPasses+1))
}

func TestDriveAbortsOnFatalParseError(t *testing.T) {
	lint := func(text string) ([]rule.Problem, bool, error) {
		return []rule.Problem{{Fatal: true, Message: "unexpected token"}}, true, nil
	}
	res := fixer.Drive("var x =", lint)
	qt.Assert(t, qt.IsFalse(res.Fixed))
	qt.Assert(t, qt.HasLen(res.Messages, 1))
	qt.Assert(t, qt.IsTrue(res.Messages[0].Fatal))
}
