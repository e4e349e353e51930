// Package matcher compiles sets of case-insensitive patterns used to
// recognise spreadsheet labels, inventory tab names and third-party brands.
package matcher

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternType represents the kind of pattern.
type PatternType int

const (
	// Regex uses regular expressions.
	Regex PatternType = iota
	// Keyword matches when the input contains the pattern as a substring.
	Keyword
)

func (pt PatternType) String() string {
	switch pt {
	case Regex:
		return "regex"
	case Keyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// Matcher matches a single pattern.
type Matcher interface {
	// Match checks if the input matches the pattern.
	Match(input string) bool
	// Pattern returns the original pattern string.
	Pattern() string
	// Type returns the pattern type.
	Type() PatternType
}

// Options configures matcher behavior.
type Options struct {
	// CaseInsensitive makes matching case-insensitive.
	CaseInsensitive bool
	// Anchored adds ^ and $ to regex patterns if not present.
	Anchored bool
	// TrimInput strips surrounding whitespace from inputs before matching.
	TrimInput bool
}

type matcher struct {
	pattern     string
	patternType PatternType
	compiled    *regexp.Regexp
	keyword     string
	opts        Options
}

// New creates a Matcher for pattern.
func New(patternType PatternType, pattern string, opts ...*Options) (Matcher, error) {
	m := &matcher{pattern: pattern, patternType: patternType}
	if len(opts) > 0 && opts[0] != nil {
		m.opts = *opts[0]
	}
	if err := m.compile(); err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", pattern, err)
	}
	return m, nil
}

// MustNew is New that panics on error.
func MustNew(patternType PatternType, pattern string, opts ...*Options) Matcher {
	m, err := New(patternType, pattern, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *matcher) compile() error {
	switch m.patternType {
	case Keyword:
		m.keyword = m.pattern
		if m.opts.CaseInsensitive {
			m.keyword = strings.ToLower(m.keyword)
		}
	case Regex:
		pattern := m.pattern
		if m.opts.Anchored {
			if !strings.HasPrefix(pattern, "^") {
				pattern = "^" + pattern
			}
			if !strings.HasSuffix(pattern, "$") {
				pattern += "$"
			}
		}
		if m.opts.CaseInsensitive && !strings.HasPrefix(pattern, "(?i)") {
			pattern = "(?i)" + pattern
		}
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
		m.compiled = compiled
	default:
		return fmt.Errorf("unsupported pattern type: %v", m.patternType)
	}
	return nil
}

func (m *matcher) Match(input string) bool {
	if m.opts.TrimInput {
		input = strings.TrimSpace(input)
	}
	switch m.patternType {
	case Keyword:
		if m.opts.CaseInsensitive {
			input = strings.ToLower(input)
		}
		return strings.Contains(input, m.keyword)
	case Regex:
		return m.compiled.MatchString(input)
	}
	return false
}

func (m *matcher) Pattern() string {
	return m.pattern
}

func (m *matcher) Type() PatternType {
	return m.patternType
}

// MultiMatcher matches when any of its patterns match. It is immutable once
// built and safe for concurrent use.
type MultiMatcher struct {
	matchers []Matcher
}

// NewMultiMatcher compiles every pattern with the same type and options.
func NewMultiMatcher(patterns []string, patternType PatternType, opts ...*Options) (*MultiMatcher, error) {
	mm := &MultiMatcher{matchers: make([]Matcher, 0, len(patterns))}
	for _, pattern := range patterns {
		m, err := New(patternType, pattern, opts...)
		if err != nil {
			return nil, err
		}
		mm.matchers = append(mm.matchers, m)
	}
	return mm, nil
}

// MustMultiMatcher is NewMultiMatcher that panics on error. It is meant for
// package-level pattern tables.
func MustMultiMatcher(patterns []string, patternType PatternType, opts ...*Options) *MultiMatcher {
	mm, err := NewMultiMatcher(patterns, patternType, opts...)
	if err != nil {
		panic(err)
	}
	return mm
}

// Keywords builds a case-insensitive substring matcher. Blank keywords are
// ignored since they would match everything.
func Keywords(keywords ...string) *MultiMatcher {
	kept := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if strings.TrimSpace(kw) != "" {
			kept = append(kept, kw)
		}
	}
	return MustMultiMatcher(kept, Keyword, &Options{CaseInsensitive: true})
}

// Match reports whether any pattern matches input.
func (mm *MultiMatcher) Match(input string) bool {
	_, ok := mm.First(input)
	return ok
}

// First returns the first pattern matching input.
func (mm *MultiMatcher) First(input string) (string, bool) {
	if mm == nil {
		return "", false
	}
	for _, m := range mm.matchers {
		if m.Match(input) {
			return m.Pattern(), true
		}
	}
	return "", false
}

// MatchAny reports whether any input matches any pattern.
func (mm *MultiMatcher) MatchAny(inputs ...string) bool {
	for _, input := range inputs {
		if mm.Match(input) {
			return true
		}
	}
	return false
}

// Patterns returns the source patterns in order.
func (mm *MultiMatcher) Patterns() []string {
	out := make([]string, 0, len(mm.matchers))
	for _, m := range mm.matchers {
		out = append(out, m.Pattern())
	}
	return out
}

// Len returns the number of patterns.
func (mm *MultiMatcher) Len() int {
	if mm == nil {
		return 0
	}
	return len(mm.matchers)
}
