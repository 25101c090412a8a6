// Package outline builds the structural index of a note: headings with
// byte offsets, block anchors, and outbound links/embeds. The expansion
// core consumes this index instead of re-parsing Markdown itself.
package outline

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// Heading is one heading in a note. LineStart is the offset of the first
// byte of the heading's own line; LineEnd is the offset just past its
// trailing newline, i.e. where the section body begins.
type Heading struct {
	Text      string
	Level     int
	LineStart int
	LineEnd   int
}

// Block is a leaf block carrying a ^id anchor. Start/End span the block's
// source lines, including the anchor marker itself.
type Block struct {
	ID    string
	Start int
	End   int
}

// Link is an outbound reference discovered in a note. Embed marks targets
// flagged for unconditional inline inclusion (![[...]] and image syntax).
type Link struct {
	Target  string
	Display string
	Embed   bool
}

// Outline is the structural index of one note.
type Outline struct {
	Headings []Heading
	Blocks   map[string]Block
	Links    []Link
}

var (
	wikilinkRe = regexp.MustCompile(`(!?)\[\[([^\[\]]+)\]\]`)
	anchorRe   = regexp.MustCompile(`(?:^|\s)\^([A-Za-z0-9-]+)\s*$`)
)

// Parse indexes a note's raw text. It never fails: malformed input just
// produces a sparser index.
func Parse(text string) *Outline {
	src := []byte(text)
	doc := goldmark.New().Parser().Parse(gmtext.NewReader(src))

	ol := &Outline{Blocks: make(map[string]Block)}
	ol.scanWikilinks(text)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if h, ok := headingAt(node, src); ok {
				ol.Headings = append(ol.Headings, h)
			}
		case *ast.Link:
			ol.Links = append(ol.Links, Link{
				Target:  string(node.Destination),
				Display: string(node.Text(src)),
			})
		case *ast.Image:
			ol.Links = append(ol.Links, Link{
				Target:  string(node.Destination),
				Display: string(node.Text(src)),
				Embed:   true,
			})
		default:
			ol.recordAnchor(n, src)
		}
		return ast.WalkContinue, nil
	})

	return ol
}

// scanWikilinks collects [[target]], [[target|display]] and ![[target]]
// references. goldmark leaves these as literal text, so they are matched
// on the raw source.
func (ol *Outline) scanWikilinks(text string) {
	for _, m := range wikilinkRe.FindAllStringSubmatch(text, -1) {
		inner := m[2]
		target, display := inner, inner
		if i := strings.Index(inner, "|"); i >= 0 {
			target = inner[:i]
			display = inner[i+1:]
		}
		ol.Links = append(ol.Links, Link{
			Target:  strings.TrimSpace(target),
			Display: strings.TrimSpace(display),
			Embed:   m[1] == "!",
		})
	}
}

func headingAt(node *ast.Heading, src []byte) (Heading, bool) {
	lines := node.Lines()
	if lines.Len() == 0 {
		return Heading{}, false
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	return Heading{
		Text:      string(node.Text(src)),
		Level:     node.Level,
		LineStart: lineStart(src, first.Start),
		LineEnd:   lineEnd(src, last.Stop),
	}, true
}

// recordAnchor registers a ^id block anchor when the last source line of a
// leaf block ends with one.
func (ol *Outline) recordAnchor(n ast.Node, src []byte) {
	if n.Type() != ast.TypeBlock || n.Lines() == nil || n.Lines().Len() == 0 {
		return
	}
	lines := n.Lines()
	last := lines.At(lines.Len() - 1)
	lastLine := string(src[lineStart(src, last.Start):last.Stop])
	m := anchorRe.FindStringSubmatch(lastLine)
	if m == nil {
		return
	}
	ol.Blocks[m[1]] = Block{
		ID:    m[1],
		Start: lineStart(src, lines.At(0).Start),
		End:   last.Stop,
	}
}

func lineStart(src []byte, pos int) int {
	for pos > 0 && src[pos-1] != '\n' {
		pos--
	}
	return pos
}

func lineEnd(src []byte, pos int) int {
	for pos < len(src) && src[pos] != '\n' {
		pos++
	}
	if pos < len(src) {
		pos++
	}
	return pos
}
