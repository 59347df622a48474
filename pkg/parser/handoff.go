package parser

import (
	"strings"

	"github.com/vibeship/spawner-skills/pkg/skill"
)

// extractHandoffs parses the "When to Hand Off" tables of a Collaboration
// section into handoff rules. Every non-header row becomes a rule; rows
// with empty trigger or delegate cells are retained as incomplete records
// so downstream consumers can flag unfinished tables instead of silently
// losing them.
func extractHandoffs(sectionBody, path, skillName string) ([]skill.HandoffRule, []skill.Warning) {
	preamble, subs := splitSubsections(sectionBody)

	var tables []string
	for _, sub := range subs {
		if strings.EqualFold(strings.TrimSpace(sub.Heading), "When to Hand Off") {
			tables = append(tables, sub.Body)
		}
	}
	if len(tables) == 0 {
		// Some documents put the table directly under ## Collaboration.
		tables = append(tables, preamble)
	}

	var (
		rules    []skill.HandoffRule
		warnings []skill.Warning
	)
	for _, table := range tables {
		for _, rule := range parsePipeTable(table) {
			if rule.Incomplete() {
				warnings = append(warnings, skill.Warning{
					Kind:   skill.WarnIncompleteHandoff,
					Path:   path,
					Skill:  skillName,
					Detail: "handoff row with empty trigger or delegate cell",
				})
			}
			rules = append(rules, rule)
		}
	}
	return rules, warnings
}

// parsePipeTable reads a markdown pipe table into handoff rules. The first
// row is the header and the dash row below it the alignment marker; both
// are skipped. Cell order is (trigger, delegate-to, context).
func parsePipeTable(body string) []skill.HandoffRule {
	var (
		rules    []skill.HandoffRule
		rowsSeen int
		inFence  bool
		fenceTok string
	)
	for _, line := range strings.Split(body, "\n") {
		if m := fenceLine.FindString(strings.TrimLeft(line, " ")); m != "" {
			if !inFence {
				inFence, fenceTok = true, m
			} else if m == fenceTok {
				inFence = false
			}
			continue
		}
		if inFence {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "|") {
			continue
		}
		cells := splitTableRow(trimmed)
		if len(cells) == 0 {
			continue
		}
		rowsSeen++
		if rowsSeen == 1 || isAlignmentRow(cells) {
			continue
		}
		rule := skill.HandoffRule{}
		if len(cells) > 0 {
			rule.Trigger = cleanCell(cells[0])
		}
		if len(cells) > 1 {
			rule.DelegateTo = cleanCell(cells[1])
		}
		if len(cells) > 2 {
			rule.Context = cleanCell(cells[2])
		}
		rules = append(rules, rule)
	}
	return rules
}

// splitTableRow splits a table row on unescaped pipes. Pipes inside
// backtick code spans belong to the trigger pattern (`api|endpoint|rest`),
// not the table structure, so the scan tracks code-span state.
func splitTableRow(row string) []string {
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(strings.TrimSpace(row), "|")

	var (
		cells   []string
		cell    strings.Builder
		inCode  bool
		escaped bool
	)
	for _, r := range row {
		switch {
		case escaped:
			cell.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '`':
			inCode = !inCode
			cell.WriteRune(r)
		case r == '|' && !inCode:
			cells = append(cells, cell.String())
			cell.Reset()
		default:
			cell.WriteRune(r)
		}
	}
	cells = append(cells, cell.String())
	return cells
}

// isAlignmentRow reports whether the cells form the `---`/`:---:` marker
// row under a table header.
func isAlignmentRow(cells []string) bool {
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			return false
		}
		if strings.Trim(c, "-: ") != "" {
			return false
		}
	}
	return true
}

// cleanCell trims a cell and unwraps a surrounding backtick code span.
func cleanCell(cell string) string {
	cell = strings.TrimSpace(cell)
	if len(cell) >= 2 && strings.HasPrefix(cell, "`") && strings.HasSuffix(cell, "`") {
		cell = strings.TrimSpace(cell[1 : len(cell)-1])
	}
	return cell
}
