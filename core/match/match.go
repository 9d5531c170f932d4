package match

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidExclusionRule is returned for a rule that cannot be evaluated.
var ErrInvalidExclusionRule = errors.New("invalid exclusion rule")

// Syntax selects how a wildcard is interpreted.
type Syntax string

const (
	// SyntaxShell is fnmatch-style matching where "*" also matches "/".
	SyntaxShell Syntax = "shell"
	// SyntaxPath is separator-aware matching with "**" support.
	SyntaxPath Syntax = "path"
)

// ParseSyntax maps a configuration value to a Syntax. Empty selects SyntaxShell.
func ParseSyntax(s string) (Syntax, error) {
	switch Syntax(strings.ToLower(strings.TrimSpace(s))) {
	case "", SyntaxShell:
		return SyntaxShell, nil
	case SyntaxPath:
		return SyntaxPath, nil
	default:
		return "", fmt.Errorf("%w: unknown wildcard syntax %q", ErrInvalidExclusionRule, s)
	}
}

// Rule describes what to exclude. An empty rule excludes nothing.
type Rule struct {
	Wildcard string `json:"wildcard,omitempty"`
	Regex    string `json:"regex,omitempty"`
	Syntax   Syntax `json:"syntax,omitempty"`
}

// IsZero reports whether the rule excludes nothing.
func (r Rule) IsZero() bool {
	return r.Wildcard == "" && r.Regex == ""
}

// Validate checks that at most one pattern is set.
func (r Rule) Validate() error {
	if r.Wildcard != "" && r.Regex != "" {
		return fmt.Errorf("%w: wildcard and regex are mutually exclusive", ErrInvalidExclusionRule)
	}
	return nil
}

// Matcher is a compiled Rule. The nil Matcher excludes nothing.
type Matcher struct {
	rule Rule
	re   *regexp.Regexp
}

// Compile validates the rule and prepares it for repeated use.
func Compile(rule Rule) (*Matcher, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if rule.Syntax == "" {
		rule.Syntax = SyntaxShell
	}

	m := &Matcher{rule: rule}
	switch {
	case rule.Regex != "":
		re, err := regexp.Compile("^(?:" + rule.Regex + ")")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExclusionRule, err)
		}
		m.re = re
	case rule.Wildcard != "" && rule.Syntax == SyntaxPath:
		if !doublestar.ValidatePattern(rule.Wildcard) {
			return nil, fmt.Errorf("%w: malformed wildcard %q", ErrInvalidExclusionRule, rule.Wildcard)
		}
	case rule.Wildcard != "":
		re, err := regexp.Compile(translate(rule.Wildcard))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExclusionRule, err)
		}
		m.re = re
	}
	return m, nil
}

// Rule returns the rule the matcher was compiled from.
func (m *Matcher) Rule() Rule {
	if m == nil {
		return Rule{}
	}
	return m.rule
}

// IsExcluded reports whether p matches the rule.
func (m *Matcher) IsExcluded(p string) bool {
	if m == nil || m.rule.IsZero() {
		return false
	}
	if m.rule.Regex == "" && m.rule.Syntax == SyntaxPath {
		ok, err := doublestar.Match(m.rule.Wildcard, p)
		return err == nil && ok
	}
	return m.re.MatchString(p)
}

// Filter returns the paths that are not excluded, in their original order.
func (m *Matcher) Filter(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !m.IsExcluded(p) {
			out = append(out, p)
		}
	}
	return out
}

// IsExcluded compiles rule and evaluates it against p.
func IsExcluded(p string, rule Rule) (bool, error) {
	m, err := Compile(rule)
	if err != nil {
		return false, err
	}
	return m.IsExcluded(p), nil
}

// FilterExcluded compiles rule and removes every matching path.
func FilterExcluded(paths []string, rule Rule) ([]string, error) {
	m, err := Compile(rule)
	if err != nil {
		return nil, err
	}
	return m.Filter(paths), nil
}
