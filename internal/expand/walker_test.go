package expand

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"testing"

	"github.com/notegen/notegen/internal/vault"
)

// fakeLib is an in-memory Library: notes keyed by vault path, targets
// resolved by name with an implied .md extension.
type fakeLib struct {
	notes     map[string]string
	failReads map[string]bool
	reads     map[string]int
}

func newFakeLib(notes map[string]string) *fakeLib {
	return &fakeLib{
		notes:     notes,
		failReads: make(map[string]bool),
		reads:     make(map[string]int),
	}
}

func (l *fakeLib) Resolve(target string, from *vault.File) *vault.File {
	t := strings.TrimSpace(target)
	if t == "" {
		return from
	}
	if path.Ext(t) == "" {
		t += ".md"
	}
	if _, ok := l.notes[t]; ok {
		return &vault.File{Path: t, Kind: vault.KindMarkdown}
	}
	return nil
}

func (l *fakeLib) Read(ctx context.Context, f *vault.File) (string, error) {
	l.reads[f.Path]++
	if l.failReads[f.Path] {
		return "", fmt.Errorf("read %s: boom", f.Path)
	}
	return l.notes[f.Path], nil
}

func (l *fakeLib) Readable(f *vault.File) bool { return true }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func src() *vault.File {
	return &vault.File{Path: "a.md", Kind: vault.KindMarkdown}
}

func TestExpand_NoLinksReturnsTextUnchanged(t *testing.T) {
	lib := newFakeLib(map[string]string{"a.md": "just text, no references"})
	e := New(lib, 3, testLogger())

	text := lib.notes["a.md"]
	if got := e.Expand(context.Background(), src(), text, Options{}); got != text {
		t.Errorf("expected unchanged text, got %q", got)
	}
}

func TestExpand_EmbeddedNoteAppearsExactlyOnce(t *testing.T) {
	lib := newFakeLib(map[string]string{
		"a.md": "see ![[b]] and again ![[b]] and ![[b.md]]",
		"b.md": "b content",
	})
	e := New(lib, 3, testLogger())

	got := e.Expand(context.Background(), src(), lib.notes["a.md"], Options{})
	if n := strings.Count(got, "b content"); n != 1 {
		t.Errorf("expected b content once, found %d times in %q", n, got)
	}
	if lib.reads["b.md"] != 1 {
		t.Errorf("expected exactly one read of b.md, got %d", lib.reads["b.md"])
	}
}

func TestExpand_DepthBound(t *testing.T) {
	lib := newFakeLib(map[string]string{
		"a.md": "![[b]]",
		"b.md": "b content ![[c]]",
		"c.md": "c content ![[d]]",
		"d.md": "d content",
	})
	e := New(lib, 2, testLogger())

	got := e.Expand(context.Background(), src(), lib.notes["a.md"], Options{})
	if !strings.Contains(got, "b content") {
		t.Errorf("depth-1 note missing: %q", got)
	}
	if !strings.Contains(got, "c content") {
		t.Errorf("depth-2 note missing: %q", got)
	}
	if strings.Contains(got, "d content") {
		t.Errorf("depth bound exceeded, d expanded: %q", got)
	}
}

func TestExpand_FullReferencePrecedence(t *testing.T) {
	lib := newFakeLib(map[string]string{
		"a.md": "![[b#Section One]]\n![[b]]",
		"b.md": "# Section One\n\nsection body\n\n# Section Two\n\nother body\n",
	})
	e := New(lib, 3, testLogger())

	got := e.Expand(context.Background(), src(), lib.notes["a.md"], Options{})
	if n := strings.Count(got, "section body"); n != 1 {
		t.Errorf("expected full note exactly once, 'section body' found %d times: %q", n, got)
	}
	if !strings.Contains(got, "other body") {
		t.Errorf("full note content missing: %q", got)
	}
	if strings.Contains(got, "BEGIN b.md#Section One") {
		t.Errorf("subpath block emitted despite full reference: %q", got)
	}
}

func TestExpand_FullUpgradeAfterDequeue(t *testing.T) {
	// b is first discovered with a subpath and expanded; c later links b
	// in full. The shared entry must reflect the upgrade at assembly.
	lib := newFakeLib(map[string]string{
		"a.md": "![[b#One]]\n![[c]]",
		"b.md": "# One\n\nfirst\n\n# Two\n\nsecond\n",
		"c.md": "c body ![[b]]",
	})
	e := New(lib, 3, testLogger())

	got := e.Expand(context.Background(), src(), lib.notes["a.md"], Options{})
	if !strings.Contains(got, "second") {
		t.Errorf("expected full b after upgrade, got %q", got)
	}
	if strings.Contains(got, "BEGIN b.md#One") {
		t.Errorf("subpath block emitted despite later full reference: %q", got)
	}
}

func TestExpand_SubpathBlocksInInsertionOrder(t *testing.T) {
	lib := newFakeLib(map[string]string{
		"a.md": "![[b#Two]] then ![[b#One]] and again ![[b#Two]]",
		"b.md": "# One\n\nfirst\n\n# Two\n\nsecond\n",
	})
	e := New(lib, 3, testLogger())

	got := e.Expand(context.Background(), src(), lib.notes["a.md"], Options{})
	iTwo := strings.Index(got, "BEGIN b.md#Two")
	iOne := strings.Index(got, "BEGIN b.md#One")
	if iTwo < 0 || iOne < 0 || iTwo > iOne {
		t.Errorf("expected Two block before One block: %q", got)
	}
	if n := strings.Count(got, "BEGIN b.md#Two"); n != 1 {
		t.Errorf("duplicate subpath emitted %d times: %q", n, got)
	}
}

func TestExpand_UnresolvedLinkIsRecordedButSilent(t *testing.T) {
	lib := newFakeLib(map[string]string{"a.md": "![[ghost]]"})
	e := New(lib, 3, testLogger())

	text := lib.notes["a.md"]
	if got := e.Expand(context.Background(), src(), text, Options{}); got != text {
		t.Errorf("unresolved link must not produce blocks, got %q", got)
	}
}

func TestExpand_ReadFailureIsIsolated(t *testing.T) {
	lib := newFakeLib(map[string]string{
		"a.md": "![[b]] ![[c]]",
		"b.md": "b content",
		"c.md": "c content",
	})
	lib.failReads["b.md"] = true
	e := New(lib, 3, testLogger())

	got := e.Expand(context.Background(), src(), lib.notes["a.md"], Options{})
	if strings.Contains(got, "b content") {
		t.Errorf("failed read leaked content: %q", got)
	}
	if !strings.Contains(got, "c content") {
		t.Errorf("healthy sibling missing: %q", got)
	}
}

func TestExpand_CyclesTerminate(t *testing.T) {
	lib := newFakeLib(map[string]string{
		"a.md": "![[b]]",
		"b.md": "b content ![[a]] ![[b]]",
	})
	e := New(lib, 5, testLogger())

	got := e.Expand(context.Background(), src(), lib.notes["a.md"], Options{})
	if n := strings.Count(got, "b content"); n != 1 {
		t.Errorf("cycle produced %d copies of b: %q", n, got)
	}
	// The origin never re-enters its own expansion.
	if strings.Contains(got, "BEGIN a.md") {
		t.Errorf("origin emitted as a block: %q", got)
	}
}

func TestExpand_PlainLinksOnlyWhenEnabled(t *testing.T) {
	lib := newFakeLib(map[string]string{
		"a.md": "a plain [link](b.md) here",
		"b.md": "b content",
	})
	e := New(lib, 3, testLogger())

	text := lib.notes["a.md"]
	if got := e.Expand(context.Background(), src(), text, Options{}); got != text {
		t.Errorf("plain link followed while disabled: %q", got)
	}
	got := e.Expand(context.Background(), src(), text, Options{IncludeLinks: true})
	if !strings.Contains(got, "b content") {
		t.Errorf("plain link not followed while enabled: %q", got)
	}
}

func TestExpand_ExclusionPatternsPruneCandidates(t *testing.T) {
	lib := newFakeLib(map[string]string{
		"a.md":           "![[secret-note]] ![[b]]",
		"secret-note.md": "secret content",
		"b.md":           "b content",
	})
	e := New(lib, 3, testLogger())

	got := e.Expand(context.Background(), src(), lib.notes["a.md"], Options{
		ExcludePatterns: CompilePatterns([]string{`secret`}),
	})
	if strings.Contains(got, "secret content") {
		t.Errorf("excluded link expanded: %q", got)
	}
	if !strings.Contains(got, "b content") {
		t.Errorf("non-excluded link missing: %q", got)
	}
}

func TestCompilePatterns_DropsInvalidSilently(t *testing.T) {
	got := CompilePatterns([]string{`valid.*`, `([unclosed`, "", `^also$`})
	if len(got) != 2 {
		t.Fatalf("expected 2 compiled patterns, got %d", len(got))
	}
}
