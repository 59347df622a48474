package parser

import (
	"regexp"
	"strings"
)

// subsection is a `###`-delimited block inside a section body.
type subsection struct {
	Heading string
	Body    string
}

var fenceLine = regexp.MustCompile("^(```|~~~)")

// splitSubsections cuts a section body into its `###` blocks. The scan
// tracks fenced code blocks so `###` or `---` lines inside a fence stay
// part of the enclosing body. Content before the first `###` heading is
// returned separately as the preamble.
func splitSubsections(body string) (preamble string, subs []subsection) {
	lines := strings.Split(body, "\n")
	var (
		current  *subsection
		buf      []string
		inFence  bool
		fenceTok string
	)

	flush := func() {
		text := strings.Trim(strings.Join(buf, "\n"), "\n")
		if current == nil {
			preamble = text
		} else {
			current.Body = text
			subs = append(subs, *current)
		}
		buf = nil
	}

	for _, line := range lines {
		if m := fenceLine.FindString(strings.TrimLeft(line, " ")); m != "" {
			if !inFence {
				inFence, fenceTok = true, m
			} else if m == fenceTok {
				inFence = false
			}
			buf = append(buf, line)
			continue
		}
		if !inFence && strings.HasPrefix(line, "### ") {
			flush()
			current = &subsection{Heading: strings.TrimSpace(strings.TrimPrefix(line, "### "))}
			continue
		}
		if !inFence && current != nil && isRuleLine(line) {
			// A horizontal rule terminates the current block.
			flush()
			current = nil
			continue
		}
		buf = append(buf, line)
	}
	flush()
	return preamble, subs
}

// isRuleLine reports whether the line is a markdown horizontal rule made
// of dashes.
func isRuleLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 {
		return false
	}
	return strings.Trim(trimmed, "-") == ""
}

// boldLabel matches field markers of the form `**Situation:** text` (the
// colon may sit inside or outside the bold span).
var boldLabel = regexp.MustCompile(`^\*\*([^*]+?):?\*\*:?[ \t]*(.*)$`)

// splitLabeledFields scans a block body for bold-label fields and returns
// them in order of appearance. Each field's value runs until the next
// label, a horizontal rule, or the end of the block. Fenced code inside a
// value is preserved verbatim.
func splitLabeledFields(body string) []labeledField {
	lines := strings.Split(body, "\n")
	var (
		fields   []labeledField
		current  *labeledField
		inFence  bool
		fenceTok string
	)

	flush := func() {
		if current != nil {
			current.Value = strings.Trim(current.Value, "\n")
			fields = append(fields, *current)
			current = nil
		}
	}

	for _, line := range lines {
		if m := fenceLine.FindString(strings.TrimLeft(line, " ")); m != "" {
			if !inFence {
				inFence, fenceTok = true, m
			} else if m == fenceTok {
				inFence = false
			}
			if current != nil {
				current.Value += line + "\n"
			}
			continue
		}
		if !inFence {
			if m := boldLabel.FindStringSubmatch(line); m != nil {
				flush()
				current = &labeledField{
					Label: strings.TrimSpace(m[1]),
					Value: "",
				}
				if rest := strings.TrimSpace(m[2]); rest != "" {
					current.Value = rest + "\n"
				}
				continue
			}
			if isRuleLine(line) {
				flush()
				continue
			}
		}
		if current != nil {
			current.Value += line + "\n"
		}
	}
	flush()
	return fields
}

type labeledField struct {
	Label string
	Value string
}

// field returns the first field whose label equals name case-insensitively.
func findField(fields []labeledField, name string) (string, bool) {
	for _, f := range fields {
		if strings.EqualFold(f.Label, name) {
			return f.Value, true
		}
	}
	return "", false
}

var bulletLine = regexp.MustCompile(`^[ \t]*[-*+][ \t]+(.*)$`)

// parseBullets extracts top-level bullet list items from a block of text.
func parseBullets(body string) []string {
	var items []string
	for _, line := range strings.Split(body, "\n") {
		if m := bulletLine.FindStringSubmatch(line); m != nil {
			item := strings.TrimSpace(m[1])
			if item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}
