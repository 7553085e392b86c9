package script

import (
	"strings"
	"testing"
)

func TestPreprocessKeywords(t *testing.T) {
	got := preprocessSource(`(block :name "a")`)
	want := `(block "__kw_name" "a")`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPreprocessKeywordKeepsHyphens(t *testing.T) {
	got := preprocessSource(`(block :below-ground 1)`)
	if !strings.Contains(got, `"__kw_below-ground"`) {
		t.Errorf("hyphenated keyword mangled: %q", got)
	}
}

func TestPreprocessKebabIdentifiers(t *testing.T) {
	got := preprocessSource(`(intersect-match)`)
	if got != `(intersect_match)` {
		t.Errorf("got %q", got)
	}
	got = preprocessSource(`(translate-to-origin)`)
	if got != `(translate_to_origin)` {
		t.Errorf("got %q", got)
	}
}

func TestPreprocessLeavesStringsAlone(t *testing.T) {
	src := `(block :name "kebab-case :inside")`
	got := preprocessSource(src)
	if !strings.Contains(got, `"kebab-case :inside"`) {
		t.Errorf("string literal mangled: %q", got)
	}
}

func TestPreprocessLeavesNegativeNumbers(t *testing.T) {
	got := preprocessSource(`(translate 5 -3 0)`)
	if got != `(translate 5 -3 0)` {
		t.Errorf("got %q", got)
	}
}

func TestPreprocessComments(t *testing.T) {
	got := preprocessSource(";; note\n(match)")
	if !strings.HasPrefix(got, "//") {
		t.Errorf("comment not converted: %q", got)
	}
	if !strings.Contains(got, "(match)") {
		t.Errorf("code after comment lost: %q", got)
	}
}

func TestPreprocessAssignmentUntouched(t *testing.T) {
	got := preprocessSource(`(def x := 1)`)
	if !strings.Contains(got, ":=") {
		t.Errorf("assignment operator mangled: %q", got)
	}
}
