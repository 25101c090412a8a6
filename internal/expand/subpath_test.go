package expand

import (
	"strings"
	"testing"

	"github.com/notegen/notegen/internal/outline"
)

const sectionedNote = `# Title

intro text

## Section One

alpha paragraph

beta line ^blockid

## Section Two

gamma paragraph

# Next

tail
`

func TestExtract_HeadingSection(t *testing.T) {
	ol := outline.Parse(sectionedNote)

	got := Extract(sectionedNote, ol, "Section One")
	want := "alpha paragraph\n\nbeta line ^blockid"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtract_SectionStopsAtShallowerHeading(t *testing.T) {
	ol := outline.Parse(sectionedNote)

	got := Extract(sectionedNote, ol, "Section Two")
	if got != "gamma paragraph" {
		t.Errorf("got %q, want %q", got, "gamma paragraph")
	}

	// A level-1 section runs to the next level-1 heading and includes
	// deeper subsections.
	title := Extract(sectionedNote, ol, "Title")
	if !strings.Contains(title, "intro text") || !strings.Contains(title, "gamma paragraph") {
		t.Errorf("level-1 section missing content: %q", title)
	}
	if strings.Contains(title, "tail") {
		t.Errorf("level-1 section leaked past next heading: %q", title)
	}
}

func TestExtract_PercentEncodedSpaces(t *testing.T) {
	ol := outline.Parse(sectionedNote)
	if got := Extract(sectionedNote, ol, "Section%20One"); !strings.Contains(got, "alpha paragraph") {
		t.Errorf("percent-encoded heading lookup failed: %q", got)
	}
}

func TestExtract_MissingHeadingIsEmpty(t *testing.T) {
	ol := outline.Parse(sectionedNote)
	if got := Extract(sectionedNote, ol, "No Such Heading"); got != "" {
		t.Errorf("expected empty string for missing heading, got %q", got)
	}
}

func TestExtract_BlockAnchor(t *testing.T) {
	ol := outline.Parse(sectionedNote)

	if got := Extract(sectionedNote, ol, "^blockid"); got != "beta line ^blockid" {
		t.Errorf("got %q, want %q", got, "beta line ^blockid")
	}
	if got := Extract(sectionedNote, ol, "^missing"); got != "" {
		t.Errorf("expected empty string for unknown anchor, got %q", got)
	}
}

func TestExtract_LastSectionRunsToEndOfDocument(t *testing.T) {
	ol := outline.Parse(sectionedNote)
	if got := Extract(sectionedNote, ol, "Next"); got != "tail" {
		t.Errorf("got %q, want %q", got, "tail")
	}
}
