package expand

import "testing"

func TestParseRef(t *testing.T) {
	cases := []struct {
		raw     string
		path    string
		subpath string
	}{
		{"note", "note", ""},
		{"note.md", "note.md", ""},
		{"note#Heading", "note", "Heading"},
		{"note#^block", "note", "^block"},
		{"dir/note#A#B", "dir/note", "A#B"},
		{"#Heading", "", "Heading"},
		{"note#", "note", ""},
		{"", "", ""},
		{"  spaced  ", "spaced", ""},
	}
	for _, c := range cases {
		ref := ParseRef(c.raw)
		if ref.Path != c.path || ref.Subpath != c.subpath {
			t.Errorf("ParseRef(%q) = {%q, %q}, want {%q, %q}", c.raw, ref.Path, ref.Subpath, c.path, c.subpath)
		}
	}
}
