// Package skill defines the record types produced by parsing a spawner
// skill corpus. A skill is one self-contained advice document (identity,
// patterns, anti-patterns, sharp edges, collaboration rules) about a single
// professional domain. All records are created once at parse time and are
// read-only afterwards.
package skill

import "strings"

// Severity classifies how badly a sharp edge bites when hit.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
	// SeverityUnknown is assigned when the severity token in the source
	// document does not match any recognized value.
	SeverityUnknown Severity = "UNKNOWN"
)

// ParseSeverity maps a severity token to its enum value. Tokens are matched
// exactly; anything unrecognized maps to SeverityUnknown and the second
// return value reports whether the token was recognized.
func ParseSeverity(token string) (Severity, bool) {
	switch Severity(token) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return Severity(token), true
	default:
		return SeverityUnknown, false
	}
}

// SectionKind identifies the well-known sections of a skill document.
// Headings outside the known set are preserved as SectionUnknown rather
// than dropped, so unexpected content is still visible downstream.
type SectionKind int

const (
	SectionUnknown SectionKind = iota
	SectionIdentity
	SectionExpertise
	SectionPatterns
	SectionAntiPatterns
	SectionSharpEdges
	SectionCollaboration
)

// String returns the canonical heading text for the section kind.
func (k SectionKind) String() string {
	switch k {
	case SectionIdentity:
		return "Identity"
	case SectionExpertise:
		return "Expertise Areas"
	case SectionPatterns:
		return "Patterns"
	case SectionAntiPatterns:
		return "Anti-Patterns"
	case SectionSharpEdges:
		return "Sharp Edges"
	case SectionCollaboration:
		return "Collaboration"
	default:
		return "Unknown"
	}
}

// KindForHeading classifies a heading into a SectionKind.
func KindForHeading(heading string) SectionKind {
	switch strings.TrimSpace(heading) {
	case "Identity":
		return SectionIdentity
	case "Expertise Areas", "Expertise":
		return SectionExpertise
	case "Patterns":
		return SectionPatterns
	case "Anti-Patterns", "Anti Patterns":
		return SectionAntiPatterns
	case "Sharp Edges":
		return SectionSharpEdges
	case "Collaboration":
		return SectionCollaboration
	default:
		return SectionUnknown
	}
}

// Section is one heading-delimited block of a skill document. Duplicate
// headings produce separate sections in document order; they are never
// merged.
type Section struct {
	Kind    SectionKind `json:"kind"`
	Heading string      `json:"heading"`
	Level   int         `json:"level"`
	Body    string      `json:"body"`
}

// Pattern is a named practice with the condition under which it applies.
type Pattern struct {
	Name        string `json:"name"`
	When        string `json:"when,omitempty"`
	Description string `json:"description,omitempty"`
}

// AntiPattern is a named failure mode and what to do instead.
type AntiPattern struct {
	Name    string `json:"name"`
	Problem string `json:"problem,omitempty"`
	Instead string `json:"instead,omitempty"`
}

// SharpEdge is a documented gotcha: a situation that predictably goes
// wrong, why it happens, and how to get out of it. Solution text is kept
// verbatim because it frequently embeds fenced templates.
type SharpEdge struct {
	Severity  Severity `json:"severity"`
	Title     string   `json:"title"`
	Situation string   `json:"situation,omitempty"`
	Why       string   `json:"why,omitempty"`
	Solution  string   `json:"solution,omitempty"`
	Symptoms  []string `json:"symptoms,omitempty"`
}

// HandoffRule routes work to another skill when the trigger matches.
// Trigger patterns in source documents are pipe-delimited alternations
// such as `api|endpoint|rest|graphql`. Empty cells in the source table are
// retained as empty fields rather than dropped, so incomplete tables stay
// detectable as a data-quality signal.
type HandoffRule struct {
	Trigger    string `json:"trigger,omitempty"`
	DelegateTo string `json:"delegateTo,omitempty"`
	Context    string `json:"context,omitempty"`
}

// Incomplete reports whether the rule came from a row with an empty
// trigger or delegate cell.
func (r HandoffRule) Incomplete() bool {
	return r.Trigger == "" || r.DelegateTo == ""
}

// Skill is one parsed skill document.
type Skill struct {
	Name         string        `json:"name"`
	Category     string        `json:"category,omitempty"`
	Version      string        `json:"version,omitempty"`
	Summary      string        `json:"summary,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
	Identity     string        `json:"identity,omitempty"`
	Expertise    []string      `json:"expertise,omitempty"`
	Patterns     []Pattern     `json:"patterns,omitempty"`
	AntiPatterns []AntiPattern `json:"antiPatterns,omitempty"`
	SharpEdges   []SharpEdge   `json:"sharpEdges,omitempty"`
	Handoffs     []HandoffRule `json:"handoffs,omitempty"`
	Sections     []Section     `json:"-"`

	// SourcePath is the file the skill was parsed from; DocIndex is the
	// position of the logical document within that file after separator
	// splitting (0 for single-document files).
	SourcePath string `json:"sourcePath,omitempty"`
	DocIndex   int    `json:"docIndex"`
}

// HasTag reports whether the skill carries the given tag.
func (s *Skill) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
