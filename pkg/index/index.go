// Package index aggregates parsed skills into a read-only, searchable
// collection. An Index is built once after parsing completes and is safe
// for unlimited concurrent readers; it is passed explicitly through the
// call chain rather than held in any global.
package index

import (
	"regexp"
	"sort"
	"strings"

	"github.com/vibeship/spawner-skills/pkg/skill"
)

// Index is the aggregated view over a parsed skill corpus.
type Index struct {
	skills     []*skill.Skill
	byName     map[string]*skill.Skill
	byTag      map[string][]*skill.Skill
	byCategory map[string][]*skill.Skill
	warnings   []skill.Warning
}

// Build constructs an Index from parsed skills. Skills are ordered by name,
// ties broken by source file order, so the result is identical no matter
// how parsing was scheduled.
func Build(skills []*skill.Skill, warnings []skill.Warning) *Index {
	sorted := make([]*skill.Skill, len(skills))
	copy(sorted, skills)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		if sorted[i].SourcePath != sorted[j].SourcePath {
			return sorted[i].SourcePath < sorted[j].SourcePath
		}
		return sorted[i].DocIndex < sorted[j].DocIndex
	})

	ix := &Index{
		skills:     sorted,
		byName:     make(map[string]*skill.Skill, len(sorted)),
		byTag:      make(map[string][]*skill.Skill),
		byCategory: make(map[string][]*skill.Skill),
		warnings:   warnings,
	}
	for _, s := range sorted {
		key := normalizeName(s.Name)
		if _, exists := ix.byName[key]; !exists {
			ix.byName[key] = s
		}
		for _, tag := range s.Tags {
			t := strings.ToLower(strings.TrimSpace(tag))
			ix.byTag[t] = append(ix.byTag[t], s)
		}
		if s.Category != "" {
			c := strings.ToLower(strings.TrimSpace(s.Category))
			ix.byCategory[c] = append(ix.byCategory[c], s)
		}
	}
	return ix
}

// Skills returns all skills in index order.
func (ix *Index) Skills() []*skill.Skill {
	return ix.skills
}

// Len returns the number of indexed skills.
func (ix *Index) Len() int {
	return len(ix.skills)
}

// Lookup finds a skill by name. Matching ignores case and treats spaces,
// hyphens, and underscores as equivalent, since handoff tables refer to
// skills by slug as often as by title.
func (ix *Index) Lookup(name string) (*skill.Skill, bool) {
	s, ok := ix.byName[normalizeName(name)]
	return s, ok
}

// ByTag returns the skills carrying the given tag.
func (ix *Index) ByTag(tag string) []*skill.Skill {
	return ix.byTag[strings.ToLower(strings.TrimSpace(tag))]
}

// ByCategory returns the skills in the given category.
func (ix *Index) ByCategory(category string) []*skill.Skill {
	return ix.byCategory[strings.ToLower(strings.TrimSpace(category))]
}

// Tags returns all known tags, sorted.
func (ix *Index) Tags() []string {
	return sortedKeys(ix.byTag)
}

// Categories returns all known categories, sorted.
func (ix *Index) Categories() []string {
	return sortedKeys(ix.byCategory)
}

// Warnings returns the diagnostics recorded while the corpus was parsed.
func (ix *Index) Warnings() []skill.Warning {
	return ix.warnings
}

// TriggerMatch pairs a matched handoff rule with the skill that owns it.
type TriggerMatch struct {
	Skill *skill.Skill      `json:"skill"`
	Rule  skill.HandoffRule `json:"rule"`
}

// FindByTrigger returns every handoff rule whose trigger pattern matches
// the given text. Trigger cells are pipe-delimited alternations such as
// `api|endpoint|rest|graphql` and are evaluated as case-insensitive
// regular expressions; a cell that fails to compile degrades to a plain
// substring comparison. Results follow index order, so they are stable
// across runs.
func (ix *Index) FindByTrigger(text string) []TriggerMatch {
	var matches []TriggerMatch
	for _, s := range ix.skills {
		for _, rule := range s.Handoffs {
			if rule.Trigger == "" {
				continue
			}
			if triggerMatches(rule.Trigger, text) {
				matches = append(matches, TriggerMatch{Skill: s, Rule: rule})
			}
		}
	}
	return matches
}

func triggerMatches(trigger, text string) bool {
	re, err := regexp.Compile("(?i)(" + trigger + ")")
	if err != nil {
		return strings.Contains(strings.ToLower(text), strings.ToLower(trigger))
	}
	return re.MatchString(text)
}

func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			// Separators are interchangeable between titles and slugs.
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func sortedKeys(m map[string][]*skill.Skill) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
