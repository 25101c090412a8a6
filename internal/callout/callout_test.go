package callout

import "testing"

func TestFilter_NoExcludedTypesIsIdentity(t *testing.T) {
	text := "> [!note] anything\n>> nested\nplain"
	if got := Filter(text, nil); got != text {
		t.Errorf("expected identity, got %q", got)
	}
	if got := Filter("", []string{"exclude"}); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestFilter_NestedExclusion(t *testing.T) {
	input := "> [!note] Keep\n>> [!exclude] Drop\n>> Drop this\n> Keep"
	want := "> [!note] Keep\n> Keep"
	if got := Filter(input, []string{"exclude"}); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFilter_UnseparatedSiblingIsDropped(t *testing.T) {
	input := "> [!exclude] First\n> body\n> [!note] Second\n> second body"
	if got := Filter(input, []string{"exclude"}); got != "" {
		t.Errorf("expected both callouts dropped, got %q", got)
	}
}

func TestFilter_BlankSeparatedSiblingIsKept(t *testing.T) {
	input := "> [!exclude] First\n> body\n\n> [!note] Second\n> second body"
	want := "\n> [!note] Second\n> second body"
	if got := Filter(input, []string{"exclude"}); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFilter_ExclusionCoversDeeplyNestedContent(t *testing.T) {
	input := "> [!exclude] top\n>> inner\n>>> [!note] deep\n>>> deep body\n> > still depth two\nafter"
	if got := Filter(input, []string{"exclude"}); got != "after" {
		t.Errorf("got %q, want %q", got, "after")
	}
}

func TestFilter_SpacedQuoteMarkersCountAsDepth(t *testing.T) {
	input := "> [!note] Keep\n> > [!exclude] Drop\n> > drop body\n> Keep"
	want := "> [!note] Keep\n> Keep"
	if got := Filter(input, []string{"exclude"}); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFilter_TypeMatchingIsCaseInsensitive(t *testing.T) {
	input := "> [!Ai-Ignore] drop\n> body\nkeep"
	if got := Filter(input, []string{"AI-IGNORE"}); got != "keep" {
		t.Errorf("got %q, want %q", got, "keep")
	}
}

func TestFilter_NonExcludedCalloutUntouched(t *testing.T) {
	input := "> [!note] title\n> body\n\ntext"
	if got := Filter(input, []string{"exclude"}); got != input {
		t.Errorf("got %q, want unchanged input", got)
	}
}

func TestFilter_ShallowerLineEndsExclusion(t *testing.T) {
	input := ">> [!exclude] drop\n>> drop body\n> kept quote\nkept plain"
	want := "> kept quote\nkept plain"
	if got := Filter(input, []string{"exclude"}); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestQuoteDepth(t *testing.T) {
	cases := []struct {
		line  string
		depth int
	}{
		{"plain", 0},
		{"", 0},
		{"> one", 1},
		{">> two", 2},
		{"> > two", 2},
		{"  > spaced", 1},
		{">>> three", 3},
		{">no space", 1},
	}
	for _, c := range cases {
		if depth, _ := quoteDepth(c.line); depth != c.depth {
			t.Errorf("quoteDepth(%q) = %d, want %d", c.line, depth, c.depth)
		}
	}
}
