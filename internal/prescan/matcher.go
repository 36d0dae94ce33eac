package prescan

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ErrInvalidPattern is returned when an exclusion pattern cannot be compiled.
var ErrInvalidPattern = errors.New("invalid exclusion pattern")

// DefaultExcludePatterns are always applied, whatever the user configures.
var DefaultExcludePatterns = []string{
	"node_modules/**",
	".git/**",
	"__pycache__/**",
	"*.pyc",
	".env*",
	"venv/**",
	"env/**",
	".venv/**",
	"dist/**",
	"build/**",
	"*.log",
	".DS_Store",
	"coverage/**",
	".coverage",
	"*.min.js",
	"*.min.css",
	"package-lock.json",
	"yarn.lock",
	".idea/**",
	".vscode/**",
	"*.sqlite*",
	"*.db",
	"migrations/**",
	"static/**",
	"media/**",
	"uploads/**",
}

// TestExcludePatterns are added when tests are not part of the analysis.
var TestExcludePatterns = []string{
	"test/**",
	"tests/**",
	"**/__tests__/**",
	"*_test.py",
	"test_*.py",
	"*_test.go",
	"*.test.js",
	"*.test.ts",
	"*.test.jsx",
	"*.test.tsx",
	"*.spec.js",
	"*.spec.ts",
	"*.spec.jsx",
	"*.spec.tsx",
}

// MatcherOptions configures a Matcher.
type MatcherOptions struct {
	// Patterns are user supplied gitignore-style globs.
	Patterns []string
	// IncludeTests keeps test files and test directories in the scan.
	IncludeTests bool
}

// Matcher decides whether a path relative to the scan root is excluded.
// It is immutable once built and safe for concurrent use.
type Matcher struct {
	rules    []string
	patterns []gitignore.Pattern
}

// NewMatcher compiles the default, user and (optionally) test rules.
func NewMatcher(opts MatcherOptions) (*Matcher, error) {
	rules := make([]string, 0, len(opts.Patterns)+len(DefaultExcludePatterns)+len(TestExcludePatterns))
	rules = append(rules, opts.Patterns...)
	rules = append(rules, DefaultExcludePatterns...)
	if !opts.IncludeTests {
		rules = append(rules, TestExcludePatterns...)
	}

	m := &Matcher{}
	for _, raw := range rules {
		rule := strings.TrimSpace(raw)
		if rule == "" || strings.HasPrefix(rule, "#") {
			continue
		}
		if strings.HasPrefix(rule, "!") {
			return nil, fmt.Errorf("%w %q: negated rules are not supported", ErrInvalidPattern, raw)
		}
		if !doublestar.ValidatePattern(strings.TrimSuffix(rule, "/")) {
			return nil, fmt.Errorf("%w %q", ErrInvalidPattern, raw)
		}
		m.rules = append(m.rules, rule)
		m.patterns = append(m.patterns, gitignore.ParsePattern(rule, nil))
	}
	return m, nil
}

// Rules returns the compiled rules in evaluation order.
func (m *Matcher) Rules() []string {
	out := make([]string, len(m.rules))
	copy(out, m.rules)
	return out
}

// IsExcluded reports whether a file path is excluded.
func (m *Matcher) IsExcluded(rel string) bool {
	return m.Match(rel, false)
}

// Match reports whether any rule matches rel. isDir lets directory-only rules
// ("build/") apply to the directory entry itself.
func (m *Matcher) Match(rel string, isDir bool) bool {
	parts := splitRel(rel)
	if len(parts) == 0 {
		return false
	}
	for _, p := range m.patterns {
		if p.Match(parts, isDir) == gitignore.Exclude {
			return true
		}
	}
	return false
}

func splitRel(rel string) []string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimPrefix(rel, "./")
	rel = strings.Trim(rel, "/")
	if rel == "" || rel == "." {
		return nil
	}
	return strings.Split(rel, "/")
}
