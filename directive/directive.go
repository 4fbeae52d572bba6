// Package directive parses inline `// eslint-*` and `/* eslint* */`
// comment directives (spec.md §4.5). Keyword extraction is a small
// character-at-a-time scanner in the style of cue/scanner rather than a
// regexp cascade, so that malformed directives fail at a precise byte
// offset instead of silently not matching.
package directive

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nam-hle/eslint/ast"
	"github.com/nam-hle/eslint/errors"
	"github.com/nam-hle/eslint/token"
)

// Kind identifies the recognized directive keywords.
type Kind string

const (
	Disable         Kind = "eslint-disable"
	Enable          Kind = "eslint-enable"
	DisableLine     Kind = "eslint-disable-line"
	DisableNextLine Kind = "eslint-disable-next-line"
	Config          Kind = "eslint"
	Global          Kind = "global"
	Exported        Kind = "exported"
	Env             Kind = "eslint-env"
)

var lineCommentKinds = map[Kind]bool{
	DisableLine:     true,
	DisableNextLine: true,
}

// GlobalSpec is one entry of a `global`/`globals` directive.
type GlobalSpec struct {
	Name   string
	Access string // "readonly", "writable", "off"; "" means unspecified (defaults to writable)
}

// Directive is one parsed directive comment.
type Directive struct {
	Kind          Kind
	RuleIDs       []string // empty means "all rules" for Disable/Enable/DisableLine/DisableNextLine
	Justification string
	Comment       *ast.Comment

	Line   int // anchor line, 1-based
	Column int // anchor column, 1-based

	ConfigOverlay map[string]any // decoded overlay for Config
	Globals       []GlobalSpec   // for Global
	Exported      []string       // for Exported
	Envs          []string       // for Env
}

// Parse extracts directives from every non-shebang comment, resolving
// anchors against file. It returns the directives found in comment order
// plus any malformed-directive diagnostics (spec.md §4.5 edge cases);
// comments that are not directives at all are silently skipped.
func Parse(file *token.File, comments []*ast.Comment) ([]*Directive, errors.List) {
	var out []*Directive
	var errs errors.List

	for _, c := range comments {
		if c.Kind == ast.Shebang {
			continue
		}
		d, err := parseOne(file, c)
		if err != nil {
			errs.Add(err)
			continue
		}
		if d != nil {
			out = append(out, d)
		}
	}
	return out, errs
}

func parseOne(file *token.File, c *ast.Comment) (*Directive, errors.Error) {
	body := strings.TrimSpace(c.Value)
	keyword, rest := scanWord(body)
	kind := Kind(keyword)
	if kind == "globals" {
		kind = Global
	}
	if !isKnownKind(kind) {
		return nil, nil
	}

	startPos := file.Position(c.Start)
	endPos := file.Position(c.End)

	if c.Kind == ast.Line && !lineCommentKinds[kind] {
		return nil, nil
	}

	if kind == DisableLine && startPos.Line != endPos.Line {
		return nil, errors.Newf(c.Start, "eslint-disable-line comment must not span multiple lines")
	}

	d := &Directive{Kind: kind, Comment: c}
	if kind == DisableNextLine {
		d.Line, d.Column = endPos.Line, 1
	} else {
		d.Line, d.Column = startPos.Line, startPos.Column
	}

	rest = strings.TrimSpace(rest)
	payload, justification := splitJustification(rest)

	switch kind {
	case Disable, Enable, DisableLine, DisableNextLine:
		d.RuleIDs = splitList(payload)
		d.Justification = justification
	case Config:
		overlay, err := parseConfigOverlay(payload)
		if err != nil {
			return nil, errors.Newf(c.Start, "invalid eslint directive configuration: %v", err)
		}
		d.ConfigOverlay = overlay
		d.Justification = justification
	case Global:
		for _, item := range splitList(payload) {
			name, access, _ := strings.Cut(item, ":")
			d.Globals = append(d.Globals, GlobalSpec{
				Name:   strings.TrimSpace(name),
				Access: strings.TrimSpace(access),
			})
		}
		d.Justification = justification
	case Exported:
		d.Exported = splitList(payload)
		d.Justification = justification
	case Env:
		d.Envs = splitList(payload)
		d.Justification = justification
	}
	return d, nil
}

func isKnownKind(k Kind) bool {
	switch k {
	case Disable, Enable, DisableLine, DisableNextLine, Config, Global, Exported, Env:
		return true
	}
	return false
}

// splitJustification separates a directive's payload from a trailing
// free-text justification, introduced by " -- " (spec.md §4.5).
func splitJustification(s string) (payload, justification string) {
	idx := strings.Index(s, " -- ")
	if idx < 0 {
		return s, ""
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+len(" -- "):])
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseConfigOverlay decodes an `eslint` directive's rule-configuration
// overlay. The body is JSON-ish and usually omits the enclosing braces
// (e.g. `"no-alert": "error"`); yaml.v3 is a JSON superset, so wrapping
// in braces and decoding through it accepts both forms without a
// bespoke JSON-ish grammar.
func parseConfigOverlay(body string) (map[string]any, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return map[string]any{}, nil
	}
	if !strings.HasPrefix(body, "{") {
		body = "{" + body + "}"
	}
	var out map[string]any
	if err := yaml.Unmarshal([]byte(body), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// scanWord reads the leading run of non-space bytes from s as a single
// pass over its bytes, returning the word and the remainder (including
// the separating space, trimmed by the caller).
func scanWord(s string) (word, rest string) {
	i := 0
	for i < len(s) && !isSpace(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
