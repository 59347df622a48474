// Package parser turns raw skill markdown into structured skill records.
// It is built for best-effort extraction from a human-authored corpus:
// unreadable files and malformed sections produce warnings, never a failed
// run.
package parser

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	"github.com/vibeship/spawner-skills/pkg/logger"
	"github.com/vibeship/spawner-skills/pkg/skill"
)

// Some corpus files pack several related skill documents into one file,
// joined by literal separator tokens. Each delimited block is an
// independent document; the separator is a hard boundary, never content.
var docSeparator = regexp.MustCompile(`(?m)^<\|RELATED_DOC_SEP-[^\n]*\|>[ \t]*$`)

// Document is one logical skill document: a separator-delimited block of a
// markdown file. Files without separators yield a single document with
// DocIndex 0.
type Document struct {
	Path     string
	DocIndex int
	Content  string
}

// Loader enumerates skill documents under a root directory. Loading is
// restartable: every Load call re-reads from disk.
type Loader struct {
	root     string
	patterns []string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader) error

// WithPatterns sets the doublestar include patterns matched against paths
// relative to the root. The default is every markdown file.
func WithPatterns(patterns ...string) LoaderOption {
	return func(l *Loader) error {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				return errors.Errorf("invalid include pattern %q", p)
			}
		}
		l.patterns = patterns
		return nil
	}
}

// NewLoader creates a Loader for the given corpus root.
func NewLoader(root string, opts ...LoaderOption) (*Loader, error) {
	if root == "" {
		return nil, errors.New("corpus root must not be empty")
	}
	l := &Loader{
		root:     root,
		patterns: []string{"**/*.md"},
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Load walks the corpus root and returns every logical document in
// deterministic path order. Unreadable files are recorded as io_error
// warnings and skipped; only an unavailable root directory is a hard
// failure.
func (l *Loader) Load(ctx context.Context) ([]Document, []skill.Warning, error) {
	if _, err := os.Stat(l.root); err != nil {
		return nil, nil, errors.Wrapf(err, "corpus root %q is not readable", l.root)
	}

	var paths []string
	walkErr := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			// Unreadable subtrees are reported per-file below; the
			// walk itself keeps going.
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(l.root, path)
		if relErr != nil {
			return nil
		}
		if l.matches(filepath.ToSlash(rel)) {
			paths = append(paths, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}
	sort.Strings(paths)

	var (
		docs     []Document
		warnings []skill.Warning
	)
	for _, path := range paths {
		if ctx.Err() != nil {
			return docs, warnings, ctx.Err()
		}
		content, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, skill.Warning{
				Kind:   skill.WarnIOError,
				Path:   path,
				Detail: err.Error(),
			})
			logger.G(ctx).WithError(err).WithField("path", path).Warn("skipping unreadable skill file")
			continue
		}
		docs = append(docs, splitDocuments(path, string(content))...)
	}
	return docs, warnings, nil
}

func (l *Loader) matches(rel string) bool {
	for _, p := range l.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// splitDocuments cuts a file into logical documents at separator tokens.
func splitDocuments(path, content string) []Document {
	blocks := docSeparator.Split(content, -1)
	docs := make([]Document, 0, len(blocks))
	idx := 0
	for _, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}
		docs = append(docs, Document{
			Path:     path,
			DocIndex: idx,
			Content:  strings.TrimLeft(block, "\n"),
		})
		idx++
	}
	return docs
}
