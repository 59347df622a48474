package skill

import "fmt"

// WarningKind classifies the non-fatal problems the pipeline records while
// extracting a human-authored, never machine-validated corpus.
type WarningKind string

const (
	// WarnIOError marks a file that could not be read; the file is
	// skipped and the rest of the run continues.
	WarnIOError WarningKind = "io_error"
	// WarnParse marks a malformed or missing section; the affected field
	// is left empty and parsing continues.
	WarnParse WarningKind = "parse_warning"
	// WarnSeverityMismatch marks a sharp-edge severity token outside the
	// recognized set; the edge is kept with severity UNKNOWN.
	WarnSeverityMismatch WarningKind = "severity_mismatch"
	// WarnDanglingHandoff marks a handoff rule whose delegate names a
	// skill absent from the corpus. Skill sets may be partial, so this
	// is advisory.
	WarnDanglingHandoff WarningKind = "dangling_handoff"
	// WarnIncompleteHandoff marks a handoff row with empty trigger or
	// delegate cells, retained per the data-quality contract.
	WarnIncompleteHandoff WarningKind = "incomplete_handoff"
)

// Warning is a structured diagnostic attached to a parse or validation run.
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Path   string      `json:"path,omitempty"`
	Skill  string      `json:"skill,omitempty"`
	Detail string      `json:"detail"`
}

func (w Warning) String() string {
	loc := w.Path
	if w.Skill != "" {
		if loc != "" {
			loc += ": "
		}
		loc += w.Skill
	}
	if loc == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", w.Kind, loc, w.Detail)
}
