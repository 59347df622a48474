package store

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/vibeship/spawner-skills/pkg/skill"
)

// BuildRecord is one persisted corpus snapshot.
type BuildRecord struct {
	ID           string    `db:"id" json:"id"`
	Root         string    `db:"root" json:"root"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	SkillCount   int       `db:"skill_count" json:"skillCount"`
	WarningCount int       `db:"warning_count" json:"warningCount"`
}

// skillRow is a skill as stored. Scalar columns exist for querying; the
// full record round-trips through the data blob.
type skillRow struct {
	ID         int64  `db:"id"`
	BuildID    string `db:"build_id"`
	Name       string `db:"name"`
	Category   string `db:"category"`
	Version    string `db:"version"`
	SourcePath string `db:"source_path"`
	DocIndex   int    `db:"doc_index"`
	Data       string `db:"data"`
}

type sharpEdgeRow struct {
	SkillID  int64  `db:"skill_id"`
	Position int    `db:"position"`
	Severity string `db:"severity"`
	Title    string `db:"title"`
}

type handoffRow struct {
	SkillID        int64  `db:"skill_id"`
	Position       int    `db:"position"`
	TriggerPattern string `db:"trigger_pattern"`
	DelegateTo     string `db:"delegate_to"`
	Context        string `db:"context"`
}

func newSkillRow(buildID string, s *skill.Skill) (skillRow, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return skillRow{}, errors.Wrapf(err, "failed to marshal skill %q", s.Name)
	}
	return skillRow{
		BuildID:    buildID,
		Name:       s.Name,
		Category:   s.Category,
		Version:    s.Version,
		SourcePath: s.SourcePath,
		DocIndex:   s.DocIndex,
		Data:       string(data),
	}, nil
}

func (r skillRow) toSkill() (*skill.Skill, error) {
	var s skill.Skill
	if err := json.Unmarshal([]byte(r.Data), &s); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal stored skill %q", r.Name)
	}
	return &s, nil
}
