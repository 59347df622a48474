package parser

import (
	"context"
	"strings"

	"github.com/vibeship/spawner-skills/pkg/logger"
	"github.com/vibeship/spawner-skills/pkg/skill"
)

// ParseDocument turns one logical document into a skill record. Parsing is
// deterministic and never fails outright: malformed or missing sections
// leave the corresponding fields empty and add parse warnings.
func ParseDocument(ctx context.Context, doc Document) (*skill.Skill, []skill.Warning) {
	sections, frontmatter := splitSections(doc.Content)

	s := &skill.Skill{
		SourcePath: doc.Path,
		DocIndex:   doc.DocIndex,
		Sections:   sections,
	}
	var warnings []skill.Warning
	warn := func(detail string) {
		warnings = append(warnings, skill.Warning{
			Kind:   skill.WarnParse,
			Path:   doc.Path,
			Skill:  s.Name,
			Detail: detail,
		})
	}

	md := Metadata{}
	for _, sec := range sections {
		if sec.Level == 1 {
			s.Name = sec.Heading
			md = parsePreamble(sec.Body)
			break
		}
	}
	if s.Name == "" {
		warn("document has no top-level title heading")
	}

	if frontmatter != nil {
		fm, err := decodeFrontmatter(frontmatter)
		if err != nil {
			warn("invalid frontmatter: " + err.Error())
			logger.G(ctx).WithError(err).WithField("path", doc.Path).Warn("ignoring malformed frontmatter")
		} else {
			md = md.merge(fm)
		}
	}

	if md.Name != "" {
		s.Name = md.Name
	}
	s.Category = md.Category
	s.Version = md.Version
	s.Tags = md.Tags
	s.Summary = md.Summary

	seen := map[skill.SectionKind]bool{}
	for _, sec := range sections {
		if sec.Level != 2 {
			continue
		}
		seen[sec.Kind] = true
		switch sec.Kind {
		case skill.SectionIdentity:
			if s.Identity != "" {
				s.Identity += "\n\n"
			}
			s.Identity += strings.TrimSpace(sec.Body)
		case skill.SectionExpertise:
			s.Expertise = append(s.Expertise, parseBullets(sec.Body)...)
		case skill.SectionPatterns:
			s.Patterns = append(s.Patterns, extractPatterns(sec.Body)...)
		case skill.SectionAntiPatterns:
			s.AntiPatterns = append(s.AntiPatterns, extractAntiPatterns(sec.Body)...)
		case skill.SectionSharpEdges:
			edges, ws := extractSharpEdges(sec.Body, doc.Path, s.Name)
			s.SharpEdges = append(s.SharpEdges, edges...)
			warnings = append(warnings, ws...)
		case skill.SectionCollaboration:
			rules, ws := extractHandoffs(sec.Body, doc.Path, s.Name)
			s.Handoffs = append(s.Handoffs, rules...)
			warnings = append(warnings, ws...)
		}
	}

	for _, kind := range []skill.SectionKind{skill.SectionIdentity, skill.SectionSharpEdges} {
		if !seen[kind] {
			warn("missing expected section: " + kind.String())
		}
	}

	return s, warnings
}
