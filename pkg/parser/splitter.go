package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	gparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/vibeship/spawner-skills/pkg/skill"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(meta.Meta),
)

// splitSections cuts a document into heading-delimited sections using the
// goldmark AST, so `#` characters inside fenced code never register as
// boundaries. Top-level (`#`) and second-level (`##`) headings open a new
// section; deeper headings stay inside the enclosing section body.
// Duplicate headings yield separate sections in document order.
//
// The returned frontmatter map is non-nil only when the document carries a
// YAML frontmatter block.
func splitSections(source string) ([]skill.Section, map[string]interface{}) {
	src := []byte(source)
	pctx := gparser.NewContext()
	doc := markdown.Parser().Parse(text.NewReader(src), gparser.WithContext(pctx))

	type boundary struct {
		heading   string
		level     int
		lineStart int // offset of the heading's `#`
		bodyStart int // offset just past the heading line
	}
	var bounds []boundary

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > 2 || h.Lines().Len() == 0 {
			continue
		}
		seg := h.Lines().At(0)
		bounds = append(bounds, boundary{
			heading:   strings.TrimSpace(string(src[seg.Start:seg.Stop])),
			level:     h.Level,
			lineStart: lineStartBefore(src, seg.Start),
			bodyStart: lineEndAfter(src, seg.Stop),
		})
	}

	var sections []skill.Section
	for i, b := range bounds {
		end := len(src)
		if i+1 < len(bounds) {
			end = bounds[i+1].lineStart
		}
		body := ""
		if b.bodyStart < end {
			body = string(src[b.bodyStart:end])
		}
		sections = append(sections, skill.Section{
			Kind:    skill.KindForHeading(b.heading),
			Heading: b.heading,
			Level:   b.level,
			Body:    strings.Trim(body, "\n"),
		})
	}

	return sections, meta.Get(pctx)
}

// lineStartBefore returns the offset of the first byte of the line
// containing off.
func lineStartBefore(src []byte, off int) int {
	for off > 0 && src[off-1] != '\n' {
		off--
	}
	return off
}

// lineEndAfter returns the offset just past the newline terminating the
// line that contains off.
func lineEndAfter(src []byte, off int) int {
	for off < len(src) && src[off] != '\n' {
		off++
	}
	if off < len(src) {
		off++
	}
	return off
}
