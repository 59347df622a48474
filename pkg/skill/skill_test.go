package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		token      string
		want       Severity
		recognized bool
	}{
		{"LOW", SeverityLow, true},
		{"MEDIUM", SeverityMedium, true},
		{"HIGH", SeverityHigh, true},
		{"CRITICAL", SeverityCritical, true},
		{"High", SeverityUnknown, false}, // exact match only
		{"SEVERE", SeverityUnknown, false},
		{"", SeverityUnknown, false},
	}
	for _, tt := range tests {
		got, ok := ParseSeverity(tt.token)
		assert.Equal(t, tt.want, got, "token %q", tt.token)
		assert.Equal(t, tt.recognized, ok, "token %q", tt.token)
	}
}

func TestKindForHeading(t *testing.T) {
	assert.Equal(t, SectionIdentity, KindForHeading("Identity"))
	assert.Equal(t, SectionExpertise, KindForHeading("Expertise Areas"))
	assert.Equal(t, SectionAntiPatterns, KindForHeading("Anti-Patterns"))
	assert.Equal(t, SectionSharpEdges, KindForHeading(" Sharp Edges "))
	assert.Equal(t, SectionCollaboration, KindForHeading("Collaboration"))
	assert.Equal(t, SectionUnknown, KindForHeading("Something Else"))
}

func TestHandoffRuleIncomplete(t *testing.T) {
	assert.False(t, HandoffRule{Trigger: "x", DelegateTo: "y"}.Incomplete())
	assert.True(t, HandoffRule{Trigger: "", DelegateTo: "y"}.Incomplete())
	assert.True(t, HandoffRule{Trigger: "x", DelegateTo: ""}.Incomplete())
	assert.True(t, HandoffRule{}.Incomplete())
}

func TestSkillHasTag(t *testing.T) {
	s := &Skill{Tags: []string{"Pricing", "revenue"}}
	assert.True(t, s.HasTag("pricing"))
	assert.True(t, s.HasTag("REVENUE"))
	assert.False(t, s.HasTag("seo"))
}

func TestWarningString(t *testing.T) {
	w := Warning{Kind: WarnSeverityMismatch, Path: "a.md", Skill: "Pricing", Detail: "bad token"}
	assert.Equal(t, "severity_mismatch: a.md: Pricing: bad token", w.String())

	w = Warning{Kind: WarnIOError, Detail: "permission denied"}
	assert.Equal(t, "io_error: permission denied", w.String())
}
