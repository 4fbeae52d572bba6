// Package lintcore wires the Token Store, Traverser, Rule Runner,
// Disable Directive Applier, and Fix Arbitrator into the two top-level
// operations an embedder calls: Verify and VerifyAndFix (spec.md §6).
package lintcore

import (
	"fmt"

	"github.com/nam-hle/eslint/ast"
	"github.com/nam-hle/eslint/directive"
	"github.com/nam-hle/eslint/errors"
	"github.com/nam-hle/eslint/fixer"
	"github.com/nam-hle/eslint/registry"
	"github.com/nam-hle/eslint/rule"
	"github.com/nam-hle/eslint/source"
	"github.com/nam-hle/eslint/suppress"
	"github.com/nam-hle/eslint/token"
)

// ECMAVersionLatest resolves to "the newest ECMAScript version the
// parser collaborator supports" (spec.md §9, Open Question). The core
// never interprets it itself; it is forwarded to the Parser contract.
const ECMAVersionLatest = "latest"

// SourceType mirrors the parser's module-ness setting.
type SourceType string

const (
	Script   SourceType = "script"
	Module   SourceType = "module"
	CommonJS SourceType = "commonjs"
)

// LanguageOptions configures parsing (spec.md §6).
type LanguageOptions struct {
	ECMAVersion string
	SourceType  SourceType
	Parser      Parser
}

// ParsedSource is the shape an already-parsed source-code object must
// carry (spec.md §6). A [Parser] produces one; a caller may also supply
// one directly instead of raw text.
type ParsedSource struct {
	Text        string
	Root        ast.Node
	File        *token.File
	Tokens      []source.Token
	Comments    []*ast.Comment
	VisitorKeys ast.VisitorKeys
	Scope       Scope
	Services    any
}

// Parser is the external parser collaborator contract (spec.md §6).
type Parser interface {
	Parse(text string, opts LanguageOptions) (*ParsedSource, error)
}

// Scope, Variable, and Reference are consumed read-only from the
// external scope analyzer (spec.md §3): global scope -> module/function
// scopes -> block scopes, each exposing a name->variable map and
// unresolved-reference list. They are defined in package rule, where
// Context.Scope/DeclaredVariables/MarkVariableAsUsed consume them, and
// re-exported here since ParsedSource.Scope is this package's own
// external surface.
type (
	Scope     = rule.Scope
	Variable  = rule.Variable
	Reference = rule.Reference
)

// Severity is a rule's configured reporting level.
type Severity int

const (
	SeverityOff   Severity = 0
	SeverityWarn  Severity = 1
	SeverityError Severity = 2
)

// RuleEntry is one rule's configured severity and options.
type RuleEntry struct {
	Severity Severity
	Options  []any
}

// RuleConfig is the sealed-at-run-start configuration for one lint pass
// (spec.md §3).
type RuleConfig struct {
	Rules           map[string]RuleEntry
	Globals         map[string]string // name -> "readonly"|"writable"|"off"
	Environments    []string
	LanguageOptions LanguageOptions
	Settings        map[string]any
}

// Options recognized by Verify/VerifyAndFix (spec.md §6).
type Options struct {
	Filename                       string
	AllowInlineConfig              bool
	ReportUnusedDisableDirectives  suppress.Mode
	DisableFixes                   bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Filename:                      "<input>",
		AllowInlineConfig:             true,
		ReportUnusedDisableDirectives: suppress.Off,
	}
}

// Input is either raw text (Parser-backed) or an already-parsed source.
type Input struct {
	Text   string
	Parsed *ParsedSource
}

func fatalProblem(pos token.Position, message string) rule.Problem {
	return rule.Problem{
		Fatal:    true,
		Severity: int(SeverityError),
		Message:  message,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}

func unknownRuleProblem(diagnostic string) rule.Problem {
	return rule.Problem{
		Severity: int(SeverityError),
		Message:  diagnostic,
		Line:     1,
		Column:   0,
	}
}

// validateParsedSource enforces spec.md §6's baseline shape for an
// already-parsed source: "the AST must include tokens, comments, loc,
// and range; otherwise the core reports a validation failure." A
// collaborator that omits Tokens/Comments entirely (a nil slice, as
// opposed to one explicitly built empty) or hands back a root node with
// no usable range fails validation rather than silently linting against
// an empty Token Store.
func validateParsedSource(parsed *ParsedSource) error {
	if parsed.Root == nil {
		return fmt.Errorf("parsed source has no root node")
	}
	if parsed.File == nil {
		return fmt.Errorf("parsed source has no position table")
	}
	if parsed.Tokens == nil {
		return fmt.Errorf("parsed source is missing tokens")
	}
	if parsed.Comments == nil {
		return fmt.Errorf("parsed source is missing comments")
	}
	if rng := parsed.Root.Range(); rng.End < rng.Start {
		return fmt.Errorf("parsed source root has an invalid range")
	}
	return nil
}

// Verify runs one lint pass and returns the ordered problem list
// (spec.md §6); problems suppressed by a disable directive are left out.
// A fatal parse error, or a parsed source failing validation,
// short-circuits with a single fatal problem.
func Verify(input Input, config RuleConfig, opts Options, reg *registry.Registry) ([]rule.Problem, error) {
	parsed, fatal, err := resolveInput(input, config.LanguageOptions)
	if fatal != nil {
		return []rule.Problem{*fatal}, nil
	}
	if err != nil {
		return nil, err
	}
	if verr := validateParsedSource(parsed); verr != nil {
		p := fatalProblem(token.Position{Line: 1, Column: 1}, verr.Error())
		return []rule.Problem{p}, nil
	}

	store := source.NewStore(parsed.Tokens, parsed.Comments)

	var directives []*directive.Directive
	var preRun []rule.Problem
	if opts.AllowInlineConfig {
		ds, errs := directive.Parse(parsed.File, parsed.Comments)
		directives = ds
		for _, e := range errs {
			pos := parsed.File.Position(e.Position())
			preRun = append(preRun, rule.Problem{
				Severity: int(SeverityError),
				Message:  e.Error(),
				Line:     pos.Line,
				Column:   pos.Column,
			})
		}
	}

	effective := applyConfigOverlays(config, directives)

	runner := rule.NewRunner()
	severityByID := make(map[string]RuleEntry)
	for id, entry := range effective.Rules {
		if entry.Severity == SeverityOff {
			continue
		}
		res := reg.Lookup(id)
		if res.Def == nil {
			preRun = append(preRun, unknownRuleProblem(res.Diagnostic))
			continue
		}
		severityByID[id] = entry
		if err := runner.Register(id, res.Def, entry.Options, effective.Settings, effective.LanguageOptions, opts.Filename, parsed.File, store); err != nil {
			return nil, fmt.Errorf("rule %q: %w", id, err)
		}
	}

	problems, err := runner.Run(parsed.Root, parsed.VisitorKeys, parsed.Scope)
	if err != nil {
		return nil, err
	}
	for i := range problems {
		if entry, ok := severityByID[problems[i].RuleID]; ok {
			problems[i].Severity = int(entry.Severity)
		}
	}
	problems = append(preRun, problems...)

	if opts.AllowInlineConfig {
		problems = suppress.Apply(problems, directives, suppress.Options{
			Mode:         opts.ReportUnusedDisableDirectives,
			DisableFixes: opts.DisableFixes,
		})
		kept := problems[:0]
		for _, p := range problems {
			if len(p.Suppressions) == 0 {
				kept = append(kept, p)
			}
		}
		problems = kept
	}

	return problems, nil
}

func resolveInput(input Input, langOpts LanguageOptions) (*ParsedSource, *rule.Problem, error) {
	if input.Parsed != nil {
		return input.Parsed, nil, nil
	}
	if langOpts.Parser == nil {
		return nil, nil, fmt.Errorf("lintcore: raw text input requires a LanguageOptions.Parser")
	}
	parsed, err := langOpts.Parser.Parse(input.Text, langOpts)
	if err != nil {
		pos := token.Position{Line: 1, Column: 1}
		if pe, ok := err.(errors.Error); ok {
			if ppos := pe.Position(); ppos.IsValid() {
				pos = ppos.Position()
			}
		}
		p := fatalProblem(pos, err.Error())
		return nil, &p, nil
	}
	return parsed, nil, nil
}

// applyConfigOverlays shadows config with any `eslint` directive overlay
// found in the file, for this file only (spec.md §3).
func applyConfigOverlays(config RuleConfig, directives []*directive.Directive) RuleConfig {
	effective := config
	effective.Rules = make(map[string]RuleEntry, len(config.Rules))
	for k, v := range config.Rules {
		effective.Rules[k] = v
	}
	for _, d := range directives {
		if d.Kind != directive.Config {
			continue
		}
		for id, raw := range d.ConfigOverlay {
			entry, ok := parseOverlayEntry(raw)
			if ok {
				effective.Rules[id] = entry
			}
		}
	}
	return effective
}

func parseOverlayEntry(raw any) (RuleEntry, bool) {
	switch v := raw.(type) {
	case string:
		return RuleEntry{Severity: severityFromName(v)}, true
	case int:
		return RuleEntry{Severity: Severity(v)}, true
	case []any:
		if len(v) == 0 {
			return RuleEntry{}, false
		}
		entry, ok := parseOverlayEntry(v[0])
		if !ok {
			return RuleEntry{}, false
		}
		entry.Options = v[1:]
		return entry, true
	default:
		return RuleEntry{}, false
	}
}

func severityFromName(name string) Severity {
	switch name {
	case "off":
		return SeverityOff
	case "warn":
		return SeverityWarn
	case "error":
		return SeverityError
	default:
		return SeverityOff
	}
}

// VerifyAndFix iterates parse→lint→arbitrate up to [fixer.MaxPasses]
// passes, returning the final text and the remaining messages (spec.md
// §4.8).
func VerifyAndFix(text string, config RuleConfig, opts Options, reg *registry.Registry) fixer.Result {
	return fixer.Drive(text, func(text string) ([]rule.Problem, bool, error) {
		problems, err := Verify(Input{Text: text}, config, opts, reg)
		if err != nil {
			return nil, false, err
		}
		for _, p := range problems {
			if p.Fatal {
				return problems, true, nil
			}
		}
		return problems, false, nil
	})
}
