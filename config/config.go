// Package config loads a rule-configuration document from disk. It is a
// second, independent call site for gopkg.in/yaml.v3 alongside the
// directive package's inline-overlay decoder (spec.md §3).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nam-hle/eslint/lintcore"
)

// Document is the on-disk shape of a rules file, e.g.:
//
//	rules:
//	  no-var: error
//	  eqeqeq: [warn, smart]
//	globals:
//	  window: readonly
//	environments: [browser]
type Document struct {
	Rules        map[string]yaml.Node `yaml:"rules"`
	Globals      map[string]string    `yaml:"globals"`
	Environments []string             `yaml:"environments"`
}

// Load reads and decodes a rules file at path into a [lintcore.RuleConfig].
func Load(path string) (lintcore.RuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lintcore.RuleConfig{}, err
	}
	return Parse(data)
}

// Parse decodes a rules document from raw YAML (or JSON, which yaml.v3
// accepts as a syntactic subset).
func Parse(data []byte) (lintcore.RuleConfig, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return lintcore.RuleConfig{}, fmt.Errorf("config: %w", err)
	}

	rules := make(map[string]lintcore.RuleEntry, len(doc.Rules))
	for id, node := range doc.Rules {
		entry, err := decodeEntry(node)
		if err != nil {
			return lintcore.RuleConfig{}, fmt.Errorf("config: rule %q: %w", id, err)
		}
		rules[id] = entry
	}

	return lintcore.RuleConfig{
		Rules:        rules,
		Globals:      doc.Globals,
		Environments: doc.Environments,
	}, nil
}

func decodeEntry(node yaml.Node) (lintcore.RuleEntry, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var raw any
		if err := node.Decode(&raw); err != nil {
			return lintcore.RuleEntry{}, err
		}
		return severityEntry(raw)
	case yaml.SequenceNode:
		var items []any
		if err := node.Decode(&items); err != nil {
			return lintcore.RuleEntry{}, err
		}
		if len(items) == 0 {
			return lintcore.RuleEntry{}, fmt.Errorf("empty rule entry")
		}
		entry, err := severityEntry(items[0])
		if err != nil {
			return lintcore.RuleEntry{}, err
		}
		entry.Options = items[1:]
		return entry, nil
	default:
		return lintcore.RuleEntry{}, fmt.Errorf("unsupported rule entry shape")
	}
}

func severityEntry(raw any) (lintcore.RuleEntry, error) {
	switch v := raw.(type) {
	case string:
		switch v {
		case "off":
			return lintcore.RuleEntry{Severity: lintcore.SeverityOff}, nil
		case "warn":
			return lintcore.RuleEntry{Severity: lintcore.SeverityWarn}, nil
		case "error":
			return lintcore.RuleEntry{Severity: lintcore.SeverityError}, nil
		default:
			return lintcore.RuleEntry{}, fmt.Errorf("unknown severity %q", v)
		}
	case int:
		return lintcore.RuleEntry{Severity: lintcore.Severity(v)}, nil
	default:
		return lintcore.RuleEntry{}, fmt.Errorf("unsupported severity value %v", v)
	}
}
