package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nam-hle/eslint/config"
	"github.com/nam-hle/eslint/fixer"
	"github.com/nam-hle/eslint/fixture"
	"github.com/nam-hle/eslint/lintcore"
	"github.com/nam-hle/eslint/registry"
	"github.com/nam-hle/eslint/rule"
	"github.com/nam-hle/eslint/suppress"
)

type verifyFlags struct {
	fixture      string
	rules        string
	format       string
	fix          bool
	reportUnused string
}

func addVerifyFlags(fs *pflag.FlagSet, f *verifyFlags) {
	fs.StringVar(&f.fixture, "fixture", "", "path to a JSON already-parsed source fixture")
	fs.StringVar(&f.rules, "rules", "", "path to a YAML rule-configuration document")
	fs.StringVar(&f.format, "format", "stylish", "output format: stylish or json")
	fs.BoolVar(&f.fix, "fix", false, "apply fixes and rewrite the fixture's reported source")
	fs.StringVar(&f.reportUnused, "report-unused-disable-directives", "off", "off, warn, or error")
}

func newVerifyCmd() *cobra.Command {
	f := &verifyFlags{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "lint a single already-parsed fixture against a rules document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, f)
		},
	}
	addVerifyFlags(cmd.Flags(), f)
	return cmd
}

func runVerify(cmd *cobra.Command, f *verifyFlags) error {
	if f.fixture == "" || f.rules == "" {
		return fmt.Errorf("verify: --fixture and --rules are both required")
	}

	data, err := os.ReadFile(f.fixture)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	parsed, err := fixture.Load(f.fixture, data)
	if err != nil {
		return err
	}

	ruleConfig, err := config.Load(f.rules)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	mode, err := parseMode(f.reportUnused)
	if err != nil {
		return err
	}

	opts := lintcore.DefaultOptions()
	opts.Filename = f.fixture
	opts.ReportUnusedDisableDirectives = mode

	reg := registry.New()

	problems, err := lintcore.Verify(lintcore.Input{Parsed: parsed}, ruleConfig, opts, reg)
	if err != nil {
		return err
	}

	if f.fix {
		// A fixture carries one fixed AST snapshot with no parser
		// collaborator behind it (spec.md §1 Non-goals: no language
		// parsing here), so --fix runs a single arbitration pass
		// rather than lintcore.VerifyAndFix's iterate-and-reparse
		// loop; the latter is exercised against a real Parser in
		// lintcore's own tests.
		res := fixer.Arbitrate(parsed.Text, problems)
		fmt.Fprintln(cmd.OutOrStdout(), res.Output)
		return printProblems(cmd, f.format, res.Messages)
	}

	return printProblems(cmd, f.format, problems)
}

func parseMode(s string) (suppress.Mode, error) {
	switch s {
	case "off":
		return suppress.Off, nil
	case "warn":
		return suppress.Warn, nil
	case "error":
		return suppress.Error, nil
	default:
		return "", fmt.Errorf("verify: invalid --report-unused-disable-directives value %q", s)
	}
}

func printProblems(cmd *cobra.Command, format string, problems []rule.Problem) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(problems)
	case "stylish", "":
		for _, p := range problems {
			sev := "warning"
			if p.Severity >= 2 {
				sev = "error"
			}
			fmt.Fprintf(out, "%d:%d %s %s", p.Line, p.Column, sev, p.Message)
			if p.RuleID != "" {
				fmt.Fprintf(out, " (%s)", p.RuleID)
			}
			fmt.Fprintln(out)
		}
		return nil
	default:
		return fmt.Errorf("verify: unknown --format %q", format)
	}
}
