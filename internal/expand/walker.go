package expand

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/notegen/notegen/internal/outline"
	"github.com/notegen/notegen/internal/vault"
)

// Library is the document index and content store the walker runs
// against. *vault.Vault satisfies it.
type Library interface {
	Resolve(target string, from *vault.File) *vault.File
	Read(ctx context.Context, f *vault.File) (string, error)
	Readable(f *vault.File) bool
}

// Options control one expansion.
type Options struct {
	// IncludeLinks follows plain links in addition to embeds.
	IncludeLinks bool
	// ExcludePatterns prune candidate links whose "[display](target)"
	// rendering matches any pattern.
	ExcludePatterns []*regexp.Regexp
}

// Entry is the traversal record for one referenced target. Entries are
// shared mutable records owned by the entry set: a later full-note link
// upgrades Full on an entry that already left the queue, and the upgrade
// is visible at assembly time.
type Entry struct {
	File     *vault.File // nil when the target never resolved
	Subpaths []string    // insertion order preserved
	Full     bool
	Depth    int

	text    string
	outline *outline.Outline
	loaded  bool
	seen    map[string]struct{}
}

func (e *Entry) addSubpath(s string) {
	if e.seen == nil {
		e.seen = make(map[string]struct{})
	}
	if _, dup := e.seen[s]; dup {
		return
	}
	e.seen[s] = struct{}{}
	e.Subpaths = append(e.Subpaths, s)
}

// entrySet is an insertion-ordered map of entries. Resolved targets are
// keyed by vault path, unresolved ones by their raw link text.
type entrySet struct {
	m     map[string]*Entry
	order []string
}

func newEntrySet() *entrySet {
	return &entrySet{m: make(map[string]*Entry)}
}

func (s *entrySet) get(key string) *Entry { return s.m[key] }

func (s *entrySet) put(key string, e *Entry) {
	s.m[key] = e
	s.order = append(s.order, key)
}

func (s *entrySet) remove(key string) {
	delete(s.m, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// Expander walks the note graph and assembles expanded context.
type Expander struct {
	lib      Library
	maxDepth int
	log      *slog.Logger
}

func New(lib Library, maxDepth int, log *slog.Logger) *Expander {
	return &Expander{lib: lib, maxDepth: maxDepth, log: log}
}

// Expand returns src's text followed by sentinel-wrapped blocks for every
// reachable referenced note. With no references the text comes back
// unchanged. Unresolved links and read failures are diagnostics only.
func (e *Expander) Expand(ctx context.Context, src *vault.File, text string, opts Options) string {
	return assemble(text, e.walk(ctx, src, text, opts))
}

// walk is a breadth-first traversal of src's link/embed graph, bounded by
// maxDepth. Each resolved note is content-read at most once; cycles are
// broken by keying entries on resolved identity. The origin is removed
// from the returned set.
func (e *Expander) walk(ctx context.Context, src *vault.File, text string, opts Options) *entrySet {
	set := newEntrySet()
	origin := &Entry{File: src, Full: true, text: text, loaded: true}
	set.put(src.Path, origin)

	queue := []*Entry{origin}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.File == nil {
			continue
		}
		if !cur.loaded {
			if !e.lib.Readable(cur.File) {
				continue
			}
			content, err := e.lib.Read(ctx, cur.File)
			if err != nil {
				e.log.Debug("linked note read failed", "path", cur.File.Path, "error", err)
				continue
			}
			cur.text = content
			cur.loaded = true
		}
		if cur.Depth >= e.maxDepth {
			continue
		}

		cur.outline = outline.Parse(cur.text)
		for _, link := range cur.outline.Links {
			if !link.Embed && !opts.IncludeLinks {
				continue
			}
			if matchesAny(opts.ExcludePatterns, "["+link.Display+"]("+link.Target+")") {
				continue
			}
			ref := ParseRef(link.Target)
			target := e.lib.Resolve(ref.Path, cur.File)
			if target == nil {
				if set.get(link.Target) == nil {
					e.log.Debug("unresolved link", "target", link.Target, "from", cur.File.Path)
					set.put(link.Target, &Entry{Depth: cur.Depth + 1})
				}
				continue
			}
			ent := set.get(target.Path)
			if ent == nil {
				ent = &Entry{File: target, Depth: cur.Depth + 1}
				set.put(target.Path, ent)
				queue = append(queue, ent)
			}
			if ref.Subpath == "" {
				ent.Full = true
			} else {
				ent.addSubpath(ref.Subpath)
			}
		}
	}

	set.remove(src.Path)
	return set
}

func matchesAny(patterns []*regexp.Regexp, rendered string) bool {
	for _, p := range patterns {
		if p.MatchString(rendered) {
			return true
		}
	}
	return false
}

// CompilePatterns compiles link exclusion patterns, silently dropping any
// that fail to compile so a bad pattern never reaches the matching step.
func CompilePatterns(patterns []string) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, p := range patterns {
		if p == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		out = append(out, re)
	}
	return out
}
