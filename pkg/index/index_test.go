package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibeship/spawner-skills/pkg/skill"
)

func corpus() []*skill.Skill {
	return []*skill.Skill{
		{
			Name:     "Pricing Strategy",
			Category: "marketing",
			Tags:     []string{"pricing", "revenue"},
			Handoffs: []skill.HandoffRule{
				{Trigger: "legal|contract", DelegateTo: "Legal Counsel", Context: "Terms questions"},
				{Trigger: "api|endpoint|rest|graphql", DelegateTo: "Engineering"},
			},
			SourcePath: "b.md",
		},
		{
			Name:     "Legal Counsel",
			Category: "legal",
			Tags:     []string{"contracts"},
			Handoffs: []skill.HandoffRule{
				{Trigger: "pricing", DelegateTo: "pricing-strategy"},
				{}, // empty row retained from source
			},
			SourcePath: "a.md",
		},
	}
}

func TestBuildOrdering(t *testing.T) {
	ix := Build(corpus(), nil)
	require.Equal(t, 2, ix.Len())
	assert.Equal(t, "Legal Counsel", ix.Skills()[0].Name)
	assert.Equal(t, "Pricing Strategy", ix.Skills()[1].Name)
}

func TestLookupNormalizesNames(t *testing.T) {
	ix := Build(corpus(), nil)

	for _, name := range []string{"Pricing Strategy", "pricing-strategy", "pricing_strategy", "PRICING STRATEGY"} {
		s, ok := ix.Lookup(name)
		require.True(t, ok, "lookup %q", name)
		assert.Equal(t, "Pricing Strategy", s.Name)
	}

	_, ok := ix.Lookup("nonexistent")
	assert.False(t, ok)
}

func TestByTagAndCategory(t *testing.T) {
	ix := Build(corpus(), nil)

	byTag := ix.ByTag("pricing")
	require.Len(t, byTag, 1)
	assert.Equal(t, "Pricing Strategy", byTag[0].Name)

	byCategory := ix.ByCategory("legal")
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Legal Counsel", byCategory[0].Name)

	assert.Equal(t, []string{"contracts", "pricing", "revenue"}, ix.Tags())
	assert.Equal(t, []string{"legal", "marketing"}, ix.Categories())
}

func TestFindByTriggerAlternation(t *testing.T) {
	ix := Build(corpus(), nil)

	matches := ix.FindByTrigger("we need a new graphql endpoint")
	require.Len(t, matches, 1)
	assert.Equal(t, "Pricing Strategy", matches[0].Skill.Name)
	assert.Equal(t, "Engineering", matches[0].Rule.DelegateTo)

	// Case-insensitive.
	matches = ix.FindByTrigger("LEGAL question")
	require.Len(t, matches, 1)
	assert.Equal(t, "Legal Counsel", matches[0].Rule.DelegateTo)

	// Empty triggers never match.
	assert.Empty(t, ix.FindByTrigger("zzz"))
}

func TestFindByTriggerInvalidRegexFallsBack(t *testing.T) {
	skills := []*skill.Skill{{
		Name:     "Broken",
		Handoffs: []skill.HandoffRule{{Trigger: "a(b", DelegateTo: "Somewhere"}},
	}}
	ix := Build(skills, nil)

	matches := ix.FindByTrigger("text with a(b inside")
	require.Len(t, matches, 1)
	assert.Equal(t, "Somewhere", matches[0].Rule.DelegateTo)
}

func TestFindByTriggerDeterministicOrder(t *testing.T) {
	skills := []*skill.Skill{
		{Name: "Zeta", Handoffs: []skill.HandoffRule{{Trigger: "match", DelegateTo: "x"}}},
		{Name: "Alpha", Handoffs: []skill.HandoffRule{{Trigger: "match", DelegateTo: "y"}}},
	}
	ix := Build(skills, nil)

	matches := ix.FindByTrigger("a match here")
	require.Len(t, matches, 2)
	assert.Equal(t, "Alpha", matches[0].Skill.Name)
	assert.Equal(t, "Zeta", matches[1].Skill.Name)
}

func TestGraph(t *testing.T) {
	ix := Build(corpus(), nil)
	g := ix.Graph()

	assert.Equal(t, []string{"Legal Counsel", "Pricing Strategy"}, g.Nodes)
	require.Len(t, g.Edges, 4)

	// "Engineering" names no skill in the corpus.
	var dangling, incomplete int
	for _, e := range g.Edges {
		if e.Dangling {
			dangling++
		}
		if e.Incomplete {
			incomplete++
		}
	}
	assert.Equal(t, 1, dangling)
	assert.Equal(t, 1, incomplete)

	// The slug delegate resolves to the titled skill.
	for _, e := range g.Edges {
		if e.To == "pricing-strategy" {
			assert.False(t, e.Dangling)
		}
	}
}

func TestValidate(t *testing.T) {
	ix := Build(corpus(), nil)
	warnings := ix.Validate()

	var kinds []skill.WarningKind
	for _, w := range warnings {
		kinds = append(kinds, w.Kind)
	}
	assert.Contains(t, kinds, skill.WarnDanglingHandoff)
	assert.Contains(t, kinds, skill.WarnIncompleteHandoff)
	assert.Len(t, warnings, 2)
}
