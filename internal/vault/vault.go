// Package vault is the note library: file discovery, Obsidian-style link
// resolution, and content reads. Non-Markdown attachments are converted to
// plain text so embeds of attachments can participate in expansion.
package vault

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Kind classifies a vault file by what the content store can do with it.
type Kind int

const (
	KindMarkdown Kind = iota
	KindText
	KindHTML
	KindPDF
	KindDOCX
	KindCSV
	KindOther // resolvable but not readable as text (images, binaries)
)

// File is a handle to one vault file. Path is vault-relative with forward
// slashes.
type File struct {
	Path string
	Kind Kind
}

// Vault indexes a directory of notes. The index is built once at startup;
// resolution and reads are safe for concurrent use afterwards.
type Vault struct {
	root   string
	log    *slog.Logger
	files  map[string]*File   // lower(relpath) -> file
	byName map[string][]*File // lower(basename) -> files, shortest path first
}

func New(root string, log *slog.Logger) (*Vault, error) {
	v := &Vault{
		root:   root,
		log:    log,
		files:  make(map[string]*File),
		byName: make(map[string][]*File),
	}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		v.add(filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan vault %s: %w", root, err)
	}
	for _, fl := range v.byName {
		sort.Slice(fl, func(i, j int) bool { return len(fl[i].Path) < len(fl[j].Path) })
	}
	log.Info("vault indexed", "root", root, "files", len(v.files))
	return v, nil
}

func (v *Vault) add(rel string) {
	f := &File{Path: rel, Kind: kindOf(rel)}
	v.files[strings.ToLower(rel)] = f
	name := strings.ToLower(path.Base(rel))
	v.byName[name] = append(v.byName[name], f)
}

func kindOf(p string) Kind {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".markdown":
		return KindMarkdown
	case ".txt":
		return KindText
	case ".html", ".htm":
		return KindHTML
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDOCX
	case ".csv":
		return KindCSV
	default:
		return KindOther
	}
}

// Resolve maps a raw link target to a vault file, or nil when no file
// matches. Resolution order: same file (empty target), path relative to
// the source note's directory, path relative to the vault root, then
// vault-wide basename match (shortest path wins). Targets without an
// extension imply ".md". Matching is case-insensitive.
func (v *Vault) Resolve(target string, from *File) *File {
	target = strings.TrimSpace(target)
	if target == "" {
		return from
	}
	target = path.Clean(filepath.ToSlash(target))
	candidates := []string{target}
	if path.Ext(target) == "" {
		candidates = []string{target + ".md", target}
	}
	for _, c := range candidates {
		if from != nil {
			if f := v.files[strings.ToLower(path.Join(path.Dir(from.Path), c))]; f != nil {
				return f
			}
		}
		if f := v.files[strings.ToLower(c)]; f != nil {
			return f
		}
		if fl := v.byName[strings.ToLower(path.Base(c))]; len(fl) > 0 {
			return fl[0]
		}
	}
	return nil
}

// Readable reports whether the content store can produce text for a file.
func (v *Vault) Readable(f *File) bool {
	return f != nil && f.Kind != KindOther
}

// Read returns a file's content as text. Attachment kinds are converted;
// KindOther is an error.
func (v *Vault) Read(ctx context.Context, f *File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	abs := filepath.Join(v.root, filepath.FromSlash(f.Path))
	switch f.Kind {
	case KindMarkdown, KindText:
		data, err := os.ReadFile(abs)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", f.Path, err)
		}
		return string(data), nil
	case KindHTML:
		return readHTML(abs)
	case KindPDF:
		return readPDF(abs)
	case KindDOCX:
		return readDOCX(abs)
	case KindCSV:
		return readCSV(abs)
	default:
		return "", fmt.Errorf("no text content for %s", f.Path)
	}
}
