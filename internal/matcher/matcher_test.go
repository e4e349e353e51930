package matcher

import (
	"reflect"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		patternType PatternType
		wantErr     bool
	}{
		{name: "valid regex", pattern: `^total$`, patternType: Regex},
		{name: "invalid regex", pattern: "[unclosed", patternType: Regex, wantErr: true},
		{name: "keyword", pattern: "badder", patternType: Keyword},
		{name: "unknown type", pattern: "x", patternType: PatternType(42), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.patternType, tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegexAnchoredCaseInsensitive(t *testing.T) {
	m := MustNew(Regex, `average cost.*`, &Options{CaseInsensitive: true, Anchored: true})

	tests := []struct {
		input string
		want  bool
	}{
		{"Average Cost", true},
		{"average cost per gram", true},
		{"the average cost", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := m.Match(tt.input); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestKeywordMatch(t *testing.T) {
	kw := Keywords("live resin", "pre-roll")

	tests := []struct {
		input string
		want  bool
	}{
		{"Live Resin 2024", true},
		{"PRE-ROLLS", true},
		{"Resin", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := kw.Match(tt.input); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestMultiMatcherFirst(t *testing.T) {
	mm := MustMultiMatcher([]string{`total`, `total remaining`}, Regex, &Options{Anchored: true, TrimInput: true})

	got, ok := mm.First("  total remaining ")
	if !ok || got != "total remaining" {
		t.Errorf("First() = %q, %v", got, ok)
	}
	if mm.MatchAny("subtotal", "totals") {
		t.Error("MatchAny() matched unanchored input")
	}
	if !reflect.DeepEqual(mm.Patterns(), []string{"total", "total remaining"}) {
		t.Errorf("Patterns() = %v", mm.Patterns())
	}
	if mm.Len() != 2 {
		t.Errorf("Len() = %d", mm.Len())
	}
}

func TestNilMultiMatcher(t *testing.T) {
	var mm *MultiMatcher
	if mm.Match("anything") {
		t.Error("nil matcher should not match")
	}
	if mm.Len() != 0 {
		t.Error("nil matcher should be empty")
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew() did not panic on invalid pattern")
		}
	}()
	MustNew(Regex, "(")
}
