package index

import (
	"github.com/vibeship/spawner-skills/pkg/skill"
)

// Edge is one handoff relationship in the skill graph.
type Edge struct {
	From       string `json:"from"`
	To         string `json:"to,omitempty"`
	Trigger    string `json:"trigger,omitempty"`
	Context    string `json:"context,omitempty"`
	Dangling   bool   `json:"dangling,omitempty"`
	Incomplete bool   `json:"incomplete,omitempty"`
}

// Graph is the directed (possibly cyclic) collaboration graph over the
// corpus: skills as nodes, handoff rules as edges.
type Graph struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`
}

// Graph builds the skill graph. Edges pointing at skills absent from the
// corpus are marked dangling rather than dropped, since skill sets may be
// partial, and the gap itself is useful information.
func (ix *Index) Graph() *Graph {
	g := &Graph{}
	for _, s := range ix.skills {
		g.Nodes = append(g.Nodes, s.Name)
		for _, rule := range s.Handoffs {
			edge := Edge{
				From:       s.Name,
				To:         rule.DelegateTo,
				Trigger:    rule.Trigger,
				Context:    rule.Context,
				Incomplete: rule.Incomplete(),
			}
			if rule.DelegateTo != "" {
				if _, ok := ix.Lookup(rule.DelegateTo); !ok {
					edge.Dangling = true
				}
			}
			g.Edges = append(g.Edges, edge)
		}
	}
	return g
}

// Validate runs the cross-skill data-quality checks that need the full
// corpus: dangling handoff targets and incomplete handoff rows. The result
// is advisory; none of these conditions fails a build.
func (ix *Index) Validate() []skill.Warning {
	var warnings []skill.Warning
	for _, s := range ix.skills {
		for _, rule := range s.Handoffs {
			if rule.Incomplete() {
				warnings = append(warnings, skill.Warning{
					Kind:   skill.WarnIncompleteHandoff,
					Path:   s.SourcePath,
					Skill:  s.Name,
					Detail: "handoff row with empty trigger or delegate cell",
				})
				continue
			}
			if _, ok := ix.Lookup(rule.DelegateTo); !ok {
				warnings = append(warnings, skill.Warning{
					Kind:   skill.WarnDanglingHandoff,
					Path:   s.SourcePath,
					Skill:  s.Name,
					Detail: "handoff target " + rule.DelegateTo + " not found in corpus",
				})
			}
		}
	}
	return warnings
}
