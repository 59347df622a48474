package parser

import (
	"regexp"
	"strings"

	"github.com/vibeship/spawner-skills/pkg/skill"
)

// Sharp edge blocks open with `### [SEVERITY] <title>`.
var sharpEdgeHeading = regexp.MustCompile(`^\[([^\]]*)\][ \t]*(.*)$`)

// extractSharpEdges parses every `### [SEVERITY] <title>` block of a Sharp
// Edges section body. Severity tokens are matched exactly against the
// known set; anything else is kept with severity UNKNOWN and a
// severity_mismatch warning; a bad token never loses the edge. Solution
// bodies keep fenced template code verbatim.
func extractSharpEdges(sectionBody, path, skillName string) ([]skill.SharpEdge, []skill.Warning) {
	_, subs := splitSubsections(sectionBody)

	var (
		edges    []skill.SharpEdge
		warnings []skill.Warning
	)
	for _, sub := range subs {
		m := sharpEdgeHeading.FindStringSubmatch(sub.Heading)
		if m == nil {
			// Not a severity-tagged block; sections sometimes carry
			// plain ### notes between edges.
			continue
		}

		severity, ok := skill.ParseSeverity(m[1])
		if !ok {
			warnings = append(warnings, skill.Warning{
				Kind:   skill.WarnSeverityMismatch,
				Path:   path,
				Skill:  skillName,
				Detail: "unrecognized severity token " + strings.TrimSpace(m[1]),
			})
		}

		edge := skill.SharpEdge{
			Severity: severity,
			Title:    strings.TrimSpace(m[2]),
		}

		fields := splitLabeledFields(sub.Body)
		if v, ok := findField(fields, "Situation"); ok {
			edge.Situation = strings.TrimSpace(v)
		}
		if v, ok := findField(fields, "Why it happens"); ok {
			edge.Why = strings.TrimSpace(v)
		} else if v, ok := findField(fields, "Why"); ok {
			edge.Why = strings.TrimSpace(v)
		}
		if v, ok := findField(fields, "Solution"); ok {
			// Trim only the outer newlines; inner formatting and
			// fenced blocks are part of the template.
			edge.Solution = strings.Trim(v, "\n")
		}
		if v, ok := findField(fields, "Symptoms"); ok {
			edge.Symptoms = parseBullets(v)
		}

		edges = append(edges, edge)
	}
	return edges, warnings
}

// extractPatterns parses the `###`-delimited entries of a Patterns
// section. The `**When:**` trigger condition sits on its own line; the
// remaining body is the description.
func extractPatterns(sectionBody string) []skill.Pattern {
	_, subs := splitSubsections(sectionBody)

	var patterns []skill.Pattern
	for _, sub := range subs {
		when, rest := inlineField(sub.Body, "When")
		patterns = append(patterns, skill.Pattern{
			Name:        sub.Heading,
			When:        when,
			Description: strings.TrimSpace(rest),
		})
	}
	return patterns
}

// extractAntiPatterns parses the `###`-delimited entries of an
// Anti-Patterns section. The `**Instead:**` line is the remedy; the rest
// of the body is the problem description.
func extractAntiPatterns(sectionBody string) []skill.AntiPattern {
	_, subs := splitSubsections(sectionBody)

	var antis []skill.AntiPattern
	for _, sub := range subs {
		instead, rest := inlineField(sub.Body, "Instead")
		antis = append(antis, skill.AntiPattern{
			Name:    strings.TrimSpace(strings.TrimPrefix(sub.Heading, "❌")),
			Problem: strings.TrimSpace(rest),
			Instead: instead,
		})
	}
	return antis
}

// inlineField extracts the first `**<label>:** value` line from a block
// body, returning the inline value and the body with that line removed.
// Lines inside fenced code are never treated as labels.
func inlineField(body, label string) (value, rest string) {
	var (
		kept     []string
		found    bool
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
			kept = append(kept, line)
			continue
		}
		if !inFence && !found {
			if m := boldLabel.FindStringSubmatch(line); m != nil && strings.EqualFold(strings.TrimSpace(m[1]), label) {
				value = strings.TrimSpace(m[2])
				found = true
				continue
			}
		}
		kept = append(kept, line)
	}
	return value, strings.Join(kept, "\n")
}
