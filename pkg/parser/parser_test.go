package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibeship/spawner-skills/pkg/skill"
)

// fixture writes markdown with @ standing in for backticks, so fixtures
// can be raw strings.
func fixture(s string) string {
	return strings.ReplaceAll(s, "@", "`")
}

const stakeholderDoc = `# Stakeholder Management

> Keeping founders, investors, and boards aligned without drowning in updates.

**Category:** communications | **Version:** 1.0.0

**Tags:** investors, board, updates

## Identity

You manage the information flow between a company and the people who fund it.

## Expertise Areas

- Investor updates
- Board meeting preparation
- Expectation management

## Patterns

### Monthly Cadence
**When:** Company has more than three investors
Send a short structured update every month, same day, same format.

### Bad News First
**When:** A metric moved the wrong way
Lead with the problem and the plan before any wins.

## Anti-Patterns

### Radio Silence
Going quiet when things get hard.
**Instead:** Increase update frequency when metrics dip.

## Sharp Edges

### [HIGH] Update fatigue
**Situation:** Founder sends monthly updates for 6 months, then stops when growth stalls.
**Why it happens:** Updates feel pointless when there is nothing good to report.
**Solution:**
Keep the cadence. Use this template:
@@@
Subject: {Month} update
Wins / Challenges / Asks
@@@
**Symptoms:**
- Investors ping you asking what happened
- Bridge round conversations start cold

### [CRITICAL] Surprise at the board meeting
**Situation:** Bad news lands for the first time in the boardroom.
**Why it happens:** Fear of early judgment.
**Solution:** Pre-wire every board member individually before the meeting.
**Symptoms:**
- Long silences in the meeting

### [MEDIUM] Over-sharing raw dashboards
**Situation:** Investors get a live metrics link instead of a narrative.
**Why it happens:** It feels transparent and saves time.
**Solution:** Send numbers with interpretation attached.
**Symptoms:**
- Questions about noise, not trends

### [LOW] Too many asks per update
**Situation:** Every update carries five requests.
**Why it happens:** Asks are free to write.
**Solution:** One ask per update, specific and actionable.
**Symptoms:**
- Nobody responds to any ask

### [HIGH] Mixing investor tiers
**Situation:** Major and minor investors get identical detail.
**Why it happens:** One list is easier than two.
**Solution:** Tier the distribution list.
**Symptoms:**
- Minor investors forwarding sensitive numbers

### [SEVERE] Ghosting after a down round
**Situation:** Communication stops after a painful raise.
**Why it happens:** Embarrassment.
**Solution:** Acknowledge it once, then resume cadence.
**Symptoms:**
- Cap table rumors

### [MEDIUM] Update with no numbers
**Situation:** Updates become pure narrative.
**Why it happens:** Metrics are flat.
**Solution:** Always include the same core metrics, flat or not.
**Symptoms:**
- Investors ask for the same figures repeatedly

## Collaboration

### When to Hand Off

| Trigger | Delegate To | Context |
|---------|-------------|---------|
| @legal\|terms\|liability@ | Legal Counsel | Anything resembling a commitment |
| @press\|announcement@ | PR Strategy | Public statements |
| @@ | @@ |  |
`

func TestParseDocumentStakeholderManagement(t *testing.T) {
	doc := Document{Path: "skills/stakeholder-management.md", Content: fixture(stakeholderDoc)}
	s, warnings := ParseDocument(context.Background(), doc)

	assert.Equal(t, "Stakeholder Management", s.Name)
	assert.Equal(t, "communications", s.Category)
	assert.Equal(t, "1.0.0", s.Version)
	assert.Equal(t, []string{"investors", "board", "updates"}, s.Tags)
	assert.Contains(t, s.Summary, "Keeping founders")
	assert.Contains(t, s.Identity, "information flow")
	assert.Equal(t, []string{"Investor updates", "Board meeting preparation", "Expectation management"}, s.Expertise)

	require.GreaterOrEqual(t, len(s.SharpEdges), 7)
	first := s.SharpEdges[0]
	assert.Equal(t, skill.SeverityHigh, first.Severity)
	assert.Equal(t, "Update fatigue", first.Title)
	assert.True(t, strings.HasPrefix(first.Situation, "Founder sends monthly updates for 6 months"))
	assert.Contains(t, first.Why, "pointless")
	assert.Contains(t, first.Solution, "Subject: {Month} update")
	assert.Equal(t, []string{
		"Investors ping you asking what happened",
		"Bridge round conversations start cold",
	}, first.Symptoms)

	// [SEVERE] is not a recognized token.
	var unknown *skill.SharpEdge
	for i := range s.SharpEdges {
		if s.SharpEdges[i].Title == "Ghosting after a down round" {
			unknown = &s.SharpEdges[i]
		}
	}
	require.NotNil(t, unknown)
	assert.Equal(t, skill.SeverityUnknown, unknown.Severity)

	var mismatches int
	for _, w := range warnings {
		if w.Kind == skill.WarnSeverityMismatch {
			mismatches++
		}
	}
	assert.Equal(t, 1, mismatches)
}

func TestParseDocumentPatternsAndAntiPatterns(t *testing.T) {
	doc := Document{Path: "x.md", Content: fixture(stakeholderDoc)}
	s, _ := ParseDocument(context.Background(), doc)

	require.Len(t, s.Patterns, 2)
	assert.Equal(t, "Monthly Cadence", s.Patterns[0].Name)
	assert.Equal(t, "Company has more than three investors", s.Patterns[0].When)
	assert.Contains(t, s.Patterns[0].Description, "same day, same format")

	require.Len(t, s.AntiPatterns, 1)
	assert.Equal(t, "Radio Silence", s.AntiPatterns[0].Name)
	assert.Contains(t, s.AntiPatterns[0].Problem, "Going quiet")
	assert.Equal(t, "Increase update frequency when metrics dip.", s.AntiPatterns[0].Instead)
}

func TestParseDocumentHandoffRows(t *testing.T) {
	doc := Document{Path: "x.md", Content: fixture(stakeholderDoc)}
	s, _ := ParseDocument(context.Background(), doc)

	// Three non-header rows, including the all-empty one.
	require.Len(t, s.Handoffs, 3)

	assert.Equal(t, "legal|terms|liability", s.Handoffs[0].Trigger)
	assert.Equal(t, "Legal Counsel", s.Handoffs[0].DelegateTo)
	assert.Equal(t, "Anything resembling a commitment", s.Handoffs[0].Context)
	assert.False(t, s.Handoffs[0].Incomplete())

	empty := s.Handoffs[2]
	assert.Empty(t, empty.Trigger)
	assert.Empty(t, empty.DelegateTo)
	assert.True(t, empty.Incomplete())
}

func TestParseDocumentIdempotent(t *testing.T) {
	doc := Document{Path: "x.md", Content: fixture(stakeholderDoc)}
	first, firstWarnings := ParseDocument(context.Background(), doc)
	second, secondWarnings := ParseDocument(context.Background(), doc)

	assert.Equal(t, first, second)
	assert.Equal(t, firstWarnings, secondWarnings)
}

func TestParseDocumentMissingSections(t *testing.T) {
	doc := Document{Path: "thin.md", Content: "# Thin Skill\n\nNothing else here.\n"}
	s, warnings := ParseDocument(context.Background(), doc)

	assert.Equal(t, "Thin Skill", s.Name)
	assert.Empty(t, s.SharpEdges)

	var parseWarnings int
	for _, w := range warnings {
		if w.Kind == skill.WarnParse {
			parseWarnings++
		}
	}
	assert.Equal(t, 2, parseWarnings) // missing Identity and Sharp Edges
}

func TestParseDocumentFrontmatterOverride(t *testing.T) {
	content := `---
name: override-name
category: marketing
tags:
  - growth
  - seo
---
# Original Title

## Identity
Something.

## Sharp Edges
`
	doc := Document{Path: "fm.md", Content: content}
	s, _ := ParseDocument(context.Background(), doc)

	assert.Equal(t, "override-name", s.Name)
	assert.Equal(t, "marketing", s.Category)
	assert.Equal(t, []string{"growth", "seo"}, s.Tags)
}

func TestParseDocumentFencedHeadingsStayInBody(t *testing.T) {
	content := fixture(`# Fenced

## Identity

@@@
## not a heading
# also not a heading
@@@

## Sharp Edges

### [LOW] Edge
**Situation:** fine
**Solution:**
@@@
### not an edge
---
@@@
`)
	doc := Document{Path: "fenced.md", Content: content}
	s, _ := ParseDocument(context.Background(), doc)

	assert.Contains(t, s.Identity, "## not a heading")
	require.Len(t, s.SharpEdges, 1)
	assert.Contains(t, s.SharpEdges[0].Solution, "### not an edge")
	assert.Contains(t, s.SharpEdges[0].Solution, "---")
}
