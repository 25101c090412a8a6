// Package callout removes excluded callout regions from note text.
// Callouts have no closing marker; a region's extent is reconstructed from
// quote depth and blank-line conventions, so exclusion covers everything
// nested beneath the header and stops at the first shallower line or at a
// blank-line-separated sibling.
package callout

import (
	"regexp"
	"strings"
)

var headerRe = regexp.MustCompile(`^\[!([A-Za-z0-9-]+)\]`)

// skip is the filter's exclusion state: either inactive or anchored at the
// quote depth of the excluded header.
type skip struct {
	active bool
	depth  int
}

// Filter drops every callout of an excluded type, along with all content
// nested inside it. Types match case-insensitively. With no excluded
// types the text is returned unchanged.
func Filter(text string, excludedTypes []string) string {
	if len(excludedTypes) == 0 {
		return text
	}
	excluded := make(map[string]struct{}, len(excludedTypes))
	for _, t := range excludedTypes {
		excluded[strings.ToLower(t)] = struct{}{}
	}

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	var st skip
	prevBlank := false

	for _, line := range lines {
		depth, rest := quoteDepth(line)
		isBlank := depth == 0 && strings.TrimSpace(line) == ""
		typ, isHeader := calloutHeader(depth, rest)

		if st.active {
			if depth > st.depth || (depth == st.depth && !isHeader) {
				prevBlank = isBlank
				continue
			}
			if depth == st.depth && isHeader && !prevBlank {
				// An unseparated sibling callout continues the excluded
				// region.
				prevBlank = isBlank
				continue
			}
			st = skip{}
		}

		if isHeader {
			if _, drop := excluded[strings.ToLower(typ)]; drop {
				st = skip{active: true, depth: depth}
				prevBlank = isBlank
				continue
			}
		}

		kept = append(kept, line)
		prevBlank = isBlank
	}

	return strings.Join(kept, "\n")
}

// quoteDepth counts the '>' markers in a line's leading quote run (">>"
// and "> >" both count as depth 2) and returns the remainder of the line.
func quoteDepth(line string) (int, string) {
	depth := 0
	i := 0
	for i < len(line) {
		switch line[i] {
		case '>':
			depth++
			i++
		case ' ', '\t':
			j := i
			for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
				j++
			}
			if j < len(line) && line[j] == '>' {
				i = j
				continue
			}
			return depth, line[i:]
		default:
			return depth, line[i:]
		}
	}
	return depth, ""
}

// calloutHeader reports whether a line's post-quote remainder opens a
// callout, and the callout's type.
func calloutHeader(depth int, rest string) (string, bool) {
	if depth == 0 {
		return "", false
	}
	m := headerRe.FindStringSubmatch(strings.TrimLeft(rest, " \t"))
	if m == nil {
		return "", false
	}
	return m[1], true
}
