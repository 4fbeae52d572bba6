// Package selector compiles and matches AST-query selector strings
// (spec.md §4.3) and implements the Node Event Generator: the bridge
// between a depth-first walk and selector-indexed rule listeners.
package selector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/nam-hle/eslint/ast"
)

// Selector is a compiled AST-query expression: a node type, optionally
// qualified by an immediate-parent type and/or an attribute equality
// test, optionally suffixed with ":exit".
//
// Supported grammar (spec.md §4.3):
//
//	TypeName
//	TypeName:exit
//	TypeName[attr=value]
//	ParentType > ChildType
type Selector struct {
	Raw        string
	Exit       bool
	ParentType string
	Type       string
	AttrName   string
	AttrValue  string

	order int // registration order, stamped by the Generator
}

// specificity ranks selectors so that more constrained ones fire first on
// a tied node (spec.md §4.3): a parent constraint outweighs an attribute
// constraint, which outweighs a bare type name.
func (s *Selector) specificity() int {
	n := 1 // every selector names a type
	if s.AttrName != "" {
		n += 2
	}
	if s.ParentType != "" {
		n += 4
	}
	return n
}

// Compile parses a selector string.
func Compile(raw string) (*Selector, error) {
	s := &Selector{Raw: raw}
	rest := raw

	if strings.HasSuffix(rest, ":exit") {
		s.Exit = true
		rest = strings.TrimSuffix(rest, ":exit")
	}

	if idx := strings.Index(rest, ">"); idx >= 0 {
		s.ParentType = strings.TrimSpace(rest[:idx])
		rest = strings.TrimSpace(rest[idx+1:])
	}

	if idx := strings.IndexByte(rest, '['); idx >= 0 {
		if !strings.HasSuffix(rest, "]") {
			return nil, fmt.Errorf("selector %q: unterminated attribute clause", raw)
		}
		s.Type = rest[:idx]
		clause := rest[idx+1 : len(rest)-1]
		eq := strings.IndexByte(clause, '=')
		if eq < 0 {
			return nil, fmt.Errorf("selector %q: expected attr=value", raw)
		}
		s.AttrName = strings.TrimSpace(clause[:eq])
		s.AttrValue = unquote(strings.TrimSpace(clause[eq+1:]))
	} else {
		s.Type = rest
	}

	if s.Type == "" {
		return nil, fmt.Errorf("selector %q: missing node type", raw)
	}
	return s, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		if u, err := strconv.Unquote(`"` + s[1:len(s)-1] + `"`); err == nil {
			return u
		}
		return s[1 : len(s)-1]
	}
	return s
}

// Matches reports whether n, with the given ancestor chain (innermost
// last), satisfies s.
func (s *Selector) Matches(n ast.Node, ancestors []ast.Node) bool {
	if n.Type() != s.Type {
		return false
	}
	if s.ParentType != "" {
		if len(ancestors) == 0 || ancestors[len(ancestors)-1].Type() != s.ParentType {
			return false
		}
	}
	if s.AttrName != "" {
		v, ok := attrValue(n, s.AttrName)
		if !ok || v != s.AttrValue {
			return false
		}
	}
	return true
}

// attrValue reads the named exported field off n's underlying struct via
// reflection, the same fallback mechanism [ast.Children] uses for
// unknown node types, since the selector language must work over node
// kinds this package was not compiled against.
func attrValue(n ast.Node, name string) (string, bool) {
	v := reflect.ValueOf(n)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", false
	}
	fv := v.FieldByName(strings.ToUpper(name[:1]) + name[1:])
	if !fv.IsValid() || !fv.CanInterface() {
		return "", false
	}
	return fmt.Sprint(fv.Interface()), true
}
