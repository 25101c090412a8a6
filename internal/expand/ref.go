// Package expand implements context expansion: walking a note's link and
// embed graph, extracting whole notes or sub-sections, and assembling the
// result into one combined text blob.
package expand

import "strings"

// Ref is a link target split into the note path and an optional subpath
// (heading name or ^block anchor). An empty Subpath means the whole note.
type Ref struct {
	Path    string
	Subpath string
}

// ParseRef splits a raw link target at the first '#'. Every string parses.
func ParseRef(raw string) Ref {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		return Ref{Path: raw[:i], Subpath: raw[i+1:]}
	}
	return Ref{Path: raw}
}
