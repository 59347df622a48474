package parser

import (
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Metadata is the identifying header of a skill document. It is normally
// parsed out of the document preamble (`**Category:** x | **Version:** y`
// and `**Tags:** a, b, c` lines); documents may also carry YAML
// frontmatter, which takes precedence where present.
type Metadata struct {
	Name     string   `mapstructure:"name"`
	Category string   `mapstructure:"category"`
	Version  string   `mapstructure:"version"`
	Tags     []string `mapstructure:"tags"`
	Summary  string   `mapstructure:"description"`
}

var (
	categoryVersionRe = regexp.MustCompile(`\*\*Category:\*\*[ \t]*([^|\n]*?)[ \t]*\|[ \t]*\*\*Version:\*\*[ \t]*(\S+)`)
	categoryOnlyRe    = regexp.MustCompile(`\*\*Category:\*\*[ \t]*([^|\n]+)`)
	versionOnlyRe     = regexp.MustCompile(`\*\*Version:\*\*[ \t]*(\S+)`)
	tagsRe            = regexp.MustCompile(`\*\*Tags:\*\*[ \t]*(.+)`)
)

// parsePreamble extracts summary, category, version, and tags from the
// text between the `# <Title>` heading and the first `##` section.
func parsePreamble(preamble string) Metadata {
	md := Metadata{}

	if m := categoryVersionRe.FindStringSubmatch(preamble); m != nil {
		md.Category = strings.TrimSpace(m[1])
		md.Version = strings.TrimSpace(m[2])
	} else {
		if m := categoryOnlyRe.FindStringSubmatch(preamble); m != nil {
			md.Category = strings.TrimSpace(m[1])
		}
		if m := versionOnlyRe.FindStringSubmatch(preamble); m != nil {
			md.Version = strings.TrimSpace(m[1])
		}
	}

	if m := tagsRe.FindStringSubmatch(preamble); m != nil {
		for _, tag := range strings.Split(m[1], ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				md.Tags = append(md.Tags, tag)
			}
		}
	}

	md.Summary = parseSummary(preamble)
	return md
}

// parseSummary collects the leading `>` blockquote that follows the title.
func parseSummary(preamble string) string {
	var quoted []string
	for _, line := range strings.Split(preamble, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, ">") {
			quoted = append(quoted, strings.TrimSpace(strings.TrimPrefix(trimmed, ">")))
			continue
		}
		if len(quoted) > 0 && trimmed != "" {
			break
		}
	}
	return strings.TrimSpace(strings.Join(quoted, " "))
}

// decodeFrontmatter decodes a goldmark-meta frontmatter map into Metadata.
func decodeFrontmatter(data map[string]interface{}) (Metadata, error) {
	var md Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return md, errors.Wrap(err, "failed to build frontmatter decoder")
	}
	if err := decoder.Decode(data); err != nil {
		return md, errors.Wrap(err, "failed to decode frontmatter")
	}
	return md, nil
}

// merge overlays non-empty fields of other onto m.
func (m Metadata) merge(other Metadata) Metadata {
	if other.Name != "" {
		m.Name = other.Name
	}
	if other.Category != "" {
		m.Category = other.Category
	}
	if other.Version != "" {
		m.Version = other.Version
	}
	if len(other.Tags) > 0 {
		m.Tags = other.Tags
	}
	if other.Summary != "" {
		m.Summary = other.Summary
	}
	return m
}
