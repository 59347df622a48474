// Package store persists parsed skill corpora to a SQLite database so the
// downstream orchestrator can consume a stable snapshot without re-parsing
// markdown on every run. Each install writes a new build row; readers load
// the latest build.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/vibeship/spawner-skills/pkg/index"
	"github.com/vibeship/spawner-skills/pkg/skill"
)

const schema = `
CREATE TABLE IF NOT EXISTS builds (
	id TEXT PRIMARY KEY,
	root TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	skill_count INTEGER NOT NULL DEFAULT 0,
	warning_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS skills (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	build_id TEXT NOT NULL REFERENCES builds(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	version TEXT NOT NULL DEFAULT '',
	source_path TEXT NOT NULL DEFAULT '',
	doc_index INTEGER NOT NULL DEFAULT 0,
	data TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sharp_edges (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	skill_id INTEGER NOT NULL REFERENCES skills(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	severity TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS handoff_rules (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	skill_id INTEGER NOT NULL REFERENCES skills(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	trigger_pattern TEXT NOT NULL DEFAULT '',
	delegate_to TEXT NOT NULL DEFAULT '',
	context TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_skills_build ON skills(build_id);
CREATE INDEX IF NOT EXISTS idx_skills_name ON skills(name);
CREATE INDEX IF NOT EXISTS idx_edges_skill ON sharp_edges(skill_id);
CREATE INDEX IF NOT EXISTS idx_handoffs_skill ON handoff_rules(skill_id);
`

// DefaultDBPath returns the default location of the skills database.
func DefaultDBPath() (string, error) {
	if basePath := os.Getenv("SPAWNER_SKILLS_BASE_PATH"); basePath != "" {
		return filepath.Join(basePath, "skills.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, ".spawner-skills", "skills.db"), nil
}

// Store is a SQLite-backed skill snapshot store.
type Store struct {
	dbPath string
	db     *sqlx.DB
}

// NewStore opens (or creates) the database at dbPath, configures WAL mode,
// and ensures the schema exists.
func NewStore(ctx context.Context, dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create database directory")
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}
	if err := configure(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to configure database")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize schema")
	}

	return &Store{dbPath: dbPath, db: db}, nil
}

// configure sets SQLite pragmas for WAL mode operation.
func configure(ctx context.Context, db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=1000",
		"PRAGMA temp_store=memory",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return errors.Wrapf(err, "failed to execute pragma: %s", pragma)
		}
	}
	db.SetMaxIdleConns(1)
	db.SetMaxOpenConns(1)

	var journalMode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode); err != nil {
		return errors.Wrap(err, "failed to query journal mode")
	}
	if strings.ToLower(journalMode) != "wal" {
		return errors.Errorf("WAL mode not enabled. Current mode: %s", journalMode)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBuild persists an indexed corpus as a new build and returns its id.
// The write is transactional: a failed install leaves the previous build
// untouched.
func (s *Store) SaveBuild(ctx context.Context, root string, ix *index.Index) (string, error) {
	buildID := uuid.New().String()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	build := BuildRecord{
		ID:           buildID,
		Root:         root,
		CreatedAt:    time.Now().UTC(),
		SkillCount:   ix.Len(),
		WarningCount: len(ix.Warnings()),
	}
	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO builds (id, root, created_at, skill_count, warning_count)
		VALUES (:id, :root, :created_at, :skill_count, :warning_count)`, build); err != nil {
		return "", errors.Wrap(err, "failed to insert build")
	}

	for _, sk := range ix.Skills() {
		row, err := newSkillRow(buildID, sk)
		if err != nil {
			return "", err
		}
		res, err := tx.NamedExecContext(ctx, `
			INSERT INTO skills (build_id, name, category, version, source_path, doc_index, data)
			VALUES (:build_id, :name, :category, :version, :source_path, :doc_index, :data)`, row)
		if err != nil {
			return "", errors.Wrapf(err, "failed to insert skill %q", sk.Name)
		}
		skillID, err := res.LastInsertId()
		if err != nil {
			return "", errors.Wrap(err, "failed to get skill row id")
		}

		for i, edge := range sk.SharpEdges {
			if _, err := tx.NamedExecContext(ctx, `
				INSERT INTO sharp_edges (skill_id, position, severity, title)
				VALUES (:skill_id, :position, :severity, :title)`,
				sharpEdgeRow{SkillID: skillID, Position: i, Severity: string(edge.Severity), Title: edge.Title}); err != nil {
				return "", errors.Wrapf(err, "failed to insert sharp edge for %q", sk.Name)
			}
		}
		for i, rule := range sk.Handoffs {
			if _, err := tx.NamedExecContext(ctx, `
				INSERT INTO handoff_rules (skill_id, position, trigger_pattern, delegate_to, context)
				VALUES (:skill_id, :position, :trigger_pattern, :delegate_to, :context)`,
				handoffRow{SkillID: skillID, Position: i, TriggerPattern: rule.Trigger, DelegateTo: rule.DelegateTo, Context: rule.Context}); err != nil {
				return "", errors.Wrapf(err, "failed to insert handoff rule for %q", sk.Name)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "failed to commit build")
	}
	return buildID, nil
}

// LatestBuild returns the most recent build, or nil when the store is
// empty.
func (s *Store) LatestBuild(ctx context.Context) (*BuildRecord, error) {
	var build BuildRecord
	err := s.db.GetContext(ctx, &build, `
		SELECT id, root, created_at, skill_count, warning_count
		FROM builds ORDER BY created_at DESC, id DESC LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to query latest build")
	}
	return &build, nil
}

// ListBuilds returns all builds, newest first.
func (s *Store) ListBuilds(ctx context.Context) ([]BuildRecord, error) {
	var builds []BuildRecord
	err := s.db.SelectContext(ctx, &builds, `
		SELECT id, root, created_at, skill_count, warning_count
		FROM builds ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list builds")
	}
	return builds, nil
}

// LoadSkills loads the full skill records of a build in name order.
func (s *Store) LoadSkills(ctx context.Context, buildID string) ([]*skill.Skill, error) {
	var rows []skillRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, build_id, name, category, version, source_path, doc_index, data
		FROM skills WHERE build_id = ? ORDER BY name, source_path, doc_index`, buildID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load skills")
	}

	skills := make([]*skill.Skill, 0, len(rows))
	for _, row := range rows {
		sk, err := row.toSkill()
		if err != nil {
			return nil, err
		}
		skills = append(skills, sk)
	}
	return skills, nil
}

// PruneBuilds deletes all builds except the newest keep builds.
func (s *Store) PruneBuilds(ctx context.Context, keep int) error {
	if keep < 1 {
		keep = 1
	}
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM builds WHERE id NOT IN (
			SELECT id FROM builds ORDER BY created_at DESC, id DESC LIMIT ?
		)`, keep)
	return errors.Wrap(err, "failed to prune builds")
}
