package expand

import (
	"strings"

	"github.com/notegen/notegen/internal/outline"
)

// Extract returns the portion of a note named by a subpath. A subpath
// starting with '^' is a block anchor lookup; anything else is a heading
// name. A miss yields the empty string — never the whole note.
func Extract(text string, ol *outline.Outline, subpath string) string {
	if rest, ok := strings.CutPrefix(subpath, "^"); ok {
		b, found := ol.Blocks[rest]
		if !found {
			return ""
		}
		return strings.TrimSpace(text[b.Start:b.End])
	}

	// Heading sections span from the end of the heading's own line to the
	// next heading at the same or a shallower level.
	name := strings.ReplaceAll(subpath, "%20", " ")
	for i, h := range ol.Headings {
		if h.Text != name {
			continue
		}
		end := len(text)
		for _, next := range ol.Headings[i+1:] {
			if next.Level <= h.Level {
				end = next.LineStart
				break
			}
		}
		return strings.TrimSpace(text[h.LineEnd:end])
	}
	return ""
}
