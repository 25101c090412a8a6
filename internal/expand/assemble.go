package expand

import (
	"strings"

	"github.com/notegen/notegen/internal/outline"
)

const contextHeader = "\n\n---\nLinked context:\n\n"

// assemble renders the walker's entries into sentinel-delimited blocks
// appended after the original text. A full reference always wins over any
// subpaths recorded for the same note. Entries that never resolved, could
// not be read, or are not a text kind produce no block. With no blocks the
// original text is returned unchanged.
func assemble(original string, set *entrySet) string {
	var blocks []string
	for _, key := range set.order {
		ent := set.m[key]
		if ent.File == nil || !ent.loaded {
			continue
		}
		if ent.Full {
			blocks = append(blocks, sentinelBlock(ent.File.Path, ent.text))
			continue
		}
		if len(ent.Subpaths) == 0 {
			continue
		}
		if ent.outline == nil {
			ent.outline = outline.Parse(ent.text)
		}
		for _, sp := range ent.Subpaths {
			blocks = append(blocks, sentinelBlock(ent.File.Path+"#"+sp, Extract(ent.text, ent.outline, sp)))
		}
	}
	if len(blocks) == 0 {
		return original
	}
	return original + contextHeader + strings.Join(blocks, "\n\n")
}

func sentinelBlock(name, body string) string {
	var sb strings.Builder
	sb.WriteString("==== BEGIN ")
	sb.WriteString(name)
	sb.WriteString(" ====\n")
	sb.WriteString(strings.TrimRight(body, "\n"))
	sb.WriteString("\n==== END ")
	sb.WriteString(name)
	sb.WriteString(" ====")
	return sb.String()
}
