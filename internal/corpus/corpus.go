// Package corpus loads reference texts used to guide key recovery.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphaelgruber/shiftcrack/internal/frequency"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound indicates a reference path does not exist.
	ErrNotFound = errors.New("reference not found")

	// ErrEmpty indicates no reference documents were found under the given paths.
	ErrEmpty = errors.New("no reference documents")
)

// Document is one reference file.
type Document struct {
	Path string
	// Frontmatter metadata (Markdown files only)
	Meta  map[string]any
	Title string
	Text  string
}

// Reference is a set of documents whose combined letter statistics act as
// the expected distribution of plaintext.
type Reference struct {
	Documents []Document
}

// Text returns all document bodies joined by newlines.
func (r *Reference) Text() string {
	parts := make([]string, len(r.Documents))
	for i, d := range r.Documents {
		parts[i] = d.Text
	}
	return strings.Join(parts, "\n")
}

// Distribution returns the letter distribution of the combined text.
func (r *Reference) Distribution() frequency.Distribution {
	return frequency.Calculate(r.Text())
}

// FromText wraps in-memory text as a single-document reference.
func FromText(text string) *Reference {
	return &Reference{Documents: []Document{{Text: text}}}
}

// Load reads every path. Directories are walked for .txt and .md files in
// lexical order; files given explicitly are read whatever their extension.
func Load(paths ...string) (*Reference, error) {
	ref := &Reference{}
	for _, p := range paths {
		info, err := os.Stat(p)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}

		if !info.IsDir() {
			doc, err := ReadFile(p)
			if err != nil {
				return nil, err
			}
			ref.Documents = append(ref.Documents, doc)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isReferenceFile(path) {
				return nil
			}
			doc, err := ReadFile(path)
			if err != nil {
				return err
			}
			ref.Documents = append(ref.Documents, doc)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}

	if len(ref.Documents) == 0 {
		return nil, ErrEmpty
	}
	return ref, nil
}

// ReadFile reads a single reference document.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read reference %s: %w", path, err)
	}
	if isMarkdown(path) {
		doc := ParseMarkdown(string(data))
		doc.Path = path
		return doc, nil
	}
	return Document{Path: path, Text: string(data)}, nil
}

// ParseMarkdown splits YAML frontmatter from the body so that metadata keys
// do not leak into letter statistics. Malformed frontmatter is kept as text.
func ParseMarkdown(content string) Document {
	doc := Document{Meta: make(map[string]any), Text: content}

	if !strings.HasPrefix(content, "---\n") {
		return doc
	}
	endIdx := strings.Index(content[4:], "\n---")
	if endIdx < 0 {
		return doc
	}

	meta := make(map[string]any)
	if err := yaml.Unmarshal([]byte(content[4:4+endIdx]), &meta); err != nil {
		return doc
	}

	doc.Meta = meta
	doc.Text = strings.TrimPrefix(content[4+endIdx+4:], "\n")
	if title, ok := meta["title"].(string); ok {
		doc.Title = title
	}
	return doc
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

func isReferenceFile(path string) bool {
	return isMarkdown(path) || strings.ToLower(filepath.Ext(path)) == ".txt"
}
