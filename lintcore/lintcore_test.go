package lintcore_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"github.com/nam-hle/eslint/ast"
	"github.com/nam-hle/eslint/lintcore"
	"github.com/nam-hle/eslint/registry"
	"github.com/nam-hle/eslint/rule"
	"github.com/nam-hle/eslint/source"
	"github.com/nam-hle/eslint/token"
)

// noVarRule is a stand-in for the kind of rule the real registry would
// carry; the core never ships rule implementations (they are an external
// collaborator), so this exists only to exercise Verify/VerifyAndFix.
type noVarRule struct{}

func (noVarRule) Meta() rule.Meta {
	return rule.Meta{
		Type:    rule.TypeProblem,
		Fixable: "code",
		Messages: map[string]string{
			"unexpected": "Unexpected var, use let or const instead.",
		},
	}
}

func (noVarRule) Create(ctx *rule.Context) (rule.Listeners, error) {
	return rule.Listeners{Selectors: map[string]rule.Listener{
		"VariableDeclaration": func(n ast.Node) error {
			decl := n.(*ast.VariableDeclaration)
			if decl.Kind != ast.Var {
				return nil
			}
			return ctx.Report(rule.Descriptor{
				Node:      n,
				MessageID: "unexpected",
				Fix: func() *rule.Fix {
					rng := n.Range()
					return &rule.Fix{Range: [2]int{rng.Start, rng.Start + 3}, Text: "let"}
				},
			})
		},
	}}, nil
}

var declLine = regexp.MustCompile(`^(var|let|const) (\w+)=(\d+);$`)

// fakeParser recognizes a tiny subset of JS: one `kind name=number;`
// declaration per line, with `//` comment lines skipped (not recorded as
// comments). It stands in for the real parser collaborator
// (spec.md §6) so these tests can exercise multi-pass convergence
// without a JS grammar.
type fakeParser struct{}

func (fakeParser) Parse(text string, _ lintcore.LanguageOptions) (*lintcore.ParsedSource, error) {
	file := token.NewFile("<input>", []byte(text))
	var body []ast.Node

	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		trimmed := strings.TrimSuffix(line, "\n")
		m := declLine.FindStringSubmatch(trimmed)
		if m == nil {
			if strings.TrimSpace(trimmed) != "" && !strings.HasPrefix(trimmed, "//") {
				return nil, &parseError{offset: offset}
			}
			offset += len(line)
			continue
		}
		kind := ast.Var
		switch m[1] {
		case "let":
			kind = ast.Let
		case "const":
			kind = ast.Const
		}
		nameStart := offset + len(m[1]) + 1
		nameEnd := nameStart + len(m[2])
		valueStart := nameEnd + 1
		valueEnd := valueStart + len(m[3])

		id := &ast.Identifier{Span: ast.NewSpan(file, nameStart, nameEnd), Name: m[2]}
		lit := &ast.Literal{Span: ast.NewSpan(file, valueStart, valueEnd), Kind: ast.NumberLiteral, Value: m[3]}
		declr := &ast.VariableDeclarator{Span: ast.NewSpan(file, nameStart, valueEnd), ID: id, Init: lit}
		decl := &ast.VariableDeclaration{
			Span:         ast.NewSpan(file, offset, offset+len(trimmed)),
			Kind:         kind,
			Declarations: []*ast.VariableDeclarator{declr},
		}
		body = append(body, decl)
		offset += len(line)
	}

	program := &ast.Program{Span: ast.NewSpan(file, 0, len(text)), Body: body}
	return &lintcore.ParsedSource{
		Text:        text,
		Root:        program,
		File:        file,
		VisitorKeys: ast.DefaultVisitorKeys,
		Tokens:      []source.Token{},
		Comments:    []*ast.Comment{},
	}, nil
}

type parseError struct{ offset int }

func (e *parseError) Error() string { return "unexpected token" }

func noVarConfig() lintcore.RuleConfig {
	return lintcore.RuleConfig{Rules: map[string]lintcore.RuleEntry{
		"no-var": {Severity: lintcore.SeverityError},
	}}
}

func noVarRegistry() *registry.Registry {
	reg := registry.New()
	reg.DefineBuiltin("no-var", noVarRule{})
	return reg
}

func TestVerifyPlainLint(t *testing.T) {
	text := "var x=1;\n"
	parsed, err := fakeParser{}.Parse(text, lintcore.LanguageOptions{})
	qt.Assert(t, qt.IsNil(err))

	problems, err := lintcore.Verify(lintcore.Input{Parsed: parsed}, noVarConfig(), lintcore.DefaultOptions(), noVarRegistry())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(problems, 1))
	qt.Assert(t, qt.Equals(problems[0].RuleID, "no-var"))
	qt.Assert(t, qt.Equals(problems[0].Severity, 2))
	qt.Assert(t, qt.Equals(problems[0].Line, 1))
}

// TestVerifyPlainLintProblemShape pins the full reported problem shape
// against a hand-built expectation, rather than re-deriving each field
// with its own assertion.
func TestVerifyPlainLintProblemShape(t *testing.T) {
	text := "var x=1;\n"
	parsed, err := fakeParser{}.Parse(text, lintcore.LanguageOptions{})
	qt.Assert(t, qt.IsNil(err))

	problems, err := lintcore.Verify(lintcore.Input{Parsed: parsed}, noVarConfig(), lintcore.DefaultOptions(), noVarRegistry())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(problems, 1))

	want := rule.Problem{
		RuleID:    "no-var",
		Severity:  2,
		Message:   "Unexpected var, use let or const instead.",
		Line:      1,
		Column:    1,
		EndLine:   1,
		EndColumn: 9,
		NodeType:  "VariableDeclaration",
		MessageID: "unexpected",
		Fix:       &rule.Fix{Range: [2]int{0, 3}, Text: "let"},
	}
	if diff := cmp.Diff(want, problems[0]); diff != "" {
		t.Fatalf("problem shape mismatch (-want +got):\n%s", diff)
	}
}

func TestVerifyAndFixConverges(t *testing.T) {
	text := "var x=1;\nvar y=2;\n"
	config := noVarConfig()
	config.LanguageOptions.Parser = fakeParser{}

	res := lintcore.VerifyAndFix(text, config, lintcore.DefaultOptions(), noVarRegistry())
	qt.Assert(t, qt.IsTrue(res.Fixed))
	qt.Assert(t, qt.Equals(res.Output, "let x=1;\nlet y=2;\n"))
	qt.Assert(t, qt.HasLen(res.Messages, 0))
}

func TestVerifyDisableNextLineSuppresses(t *testing.T) {
	text := "// eslint-disable-next-line no-var\nvar x=1;\n"
	parsed := buildWithComment(t, text)

	problems, err := lintcore.Verify(lintcore.Input{Parsed: parsed}, noVarConfig(), lintcore.DefaultOptions(), noVarRegistry())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(problems, 0))
}

// buildWithComment parses text with fakeParser and attaches the leading
// line comment fakeParser itself does not recognize.
func buildWithComment(t *testing.T, text string) *lintcore.ParsedSource {
	t.Helper()
	lines := strings.SplitN(text, "\n", 2)
	commentLine := lines[0]
	rest := lines[1]

	parsed, err := fakeParser{}.Parse(text, lintcore.LanguageOptions{})
	qt.Assert(t, qt.IsNil(err))
	_ = rest

	value := strings.TrimPrefix(commentLine, "//")
	c := &ast.Comment{
		Kind:  ast.Line,
		Value: value,
		Rng:   ast.Range{Start: 0, End: len(commentLine)},
		Start: parsed.File.Pos(0),
		End:   parsed.File.Pos(len(commentLine)),
	}
	parsed.Comments = []*ast.Comment{c}
	return parsed
}

func TestVerifyFatalParseError(t *testing.T) {
	text := "var x ="
	parsed, perr := fakeParser{}.Parse(text, lintcore.LanguageOptions{})
	qt.Assert(t, qt.IsNotNil(perr))
	qt.Assert(t, qt.IsNil(parsed))

	config := noVarConfig()
	config.LanguageOptions.Parser = fakeParser{}
	problems, err := lintcore.Verify(lintcore.Input{Text: text}, config, lintcore.DefaultOptions(), noVarRegistry())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(problems, 1))
	qt.Assert(t, qt.IsTrue(problems[0].Fatal))
}
