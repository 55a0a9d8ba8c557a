package db

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates any missing tables and indexes. Every statement is
// idempotent; there is no versioned migration history.
func EnsureSchema(db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS workshops (
		id                    TEXT PRIMARY KEY,
		seq                   INTEGER NOT NULL,
		title                 TEXT NOT NULL,
		description           TEXT NOT NULL DEFAULT '',
		facilitator           TEXT NOT NULL DEFAULT '',
		date                  TEXT NOT NULL,
		status                TEXT NOT NULL DEFAULT 'TODO'
		                      CHECK(status IN ('TODO','IN_PROGRESS','COMPLETE')),
		survey_scheduled_date TEXT,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS participants (
		id                   TEXT NOT NULL,
		workshop_id          TEXT NOT NULL REFERENCES workshops(id) ON DELETE CASCADE,
		seq                  INTEGER NOT NULL,
		name                 TEXT NOT NULL,
		email                TEXT NOT NULL,
		role                 TEXT NOT NULL DEFAULT '',
		has_submitted_survey INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (workshop_id, id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_participants_workshop ON participants(workshop_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_participants_email ON participants(workshop_id, email COLLATE NOCASE)`,

	`CREATE TABLE IF NOT EXISTS problems (
		id                   TEXT PRIMARY KEY,
		workshop_id          TEXT NOT NULL REFERENCES workshops(id) ON DELETE CASCADE,
		seq                  INTEGER NOT NULL,
		description          TEXT NOT NULL,
		acuity               INTEGER NOT NULL,
		strategic_importance INTEGER NOT NULL,
		submitted_by         TEXT NOT NULL DEFAULT '',
		is_focal_area        INTEGER NOT NULL DEFAULT 0,
		focal_source         TEXT NOT NULL DEFAULT 'derived'
		                     CHECK(focal_source IN ('derived','manual')),
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_problems_workshop ON problems(workshop_id, seq)`,

	`CREATE TABLE IF NOT EXISTS notes (
		id         TEXT PRIMARY KEY,
		problem_id TEXT NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
		seq        INTEGER NOT NULL,
		content    TEXT NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notes_problem ON notes(problem_id, seq)`,

	`CREATE TABLE IF NOT EXISTS surveys (
		id           TEXT PRIMARY KEY,
		workshop_id  TEXT NOT NULL REFERENCES workshops(id) ON DELETE CASCADE,
		seq          INTEGER NOT NULL,
		template_id  TEXT NOT NULL DEFAULT '',
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		instructions TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'draft'
		             CHECK(status IN ('draft','active','closed')),
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_surveys_workshop ON surveys(workshop_id)`,

	`CREATE TABLE IF NOT EXISTS survey_questions (
		survey_id TEXT NOT NULL REFERENCES surveys(id) ON DELETE CASCADE,
		id        TEXT NOT NULL,
		seq       INTEGER NOT NULL,
		text      TEXT NOT NULL,
		type      TEXT NOT NULL
		          CHECK(type IN ('rating','text','multipleChoice','number','scale')),
		required  INTEGER NOT NULL DEFAULT 0,
		min_value REAL,
		max_value REAL,
		options   TEXT NOT NULL DEFAULT '[]',
		PRIMARY KEY (survey_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS survey_responses (
		id             TEXT PRIMARY KEY,
		survey_id      TEXT NOT NULL REFERENCES surveys(id) ON DELETE CASCADE,
		participant_id TEXT NOT NULL,
		seq            INTEGER NOT NULL,
		answers        TEXT NOT NULL,
		submitted_at   TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_responses_participant ON survey_responses(survey_id, participant_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id                   TEXT PRIMARY KEY,
		seq                  INTEGER NOT NULL,
		title                TEXT NOT NULL,
		description          TEXT NOT NULL DEFAULT '',
		status               TEXT NOT NULL DEFAULT 'discovery'
		                     CHECK(status IN ('discovery','development','live','completed')),
		progress             INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		start_date           TEXT NOT NULL,
		problem_id           TEXT NOT NULL,
		workshop_id          TEXT NOT NULL,
		problem_description  TEXT NOT NULL DEFAULT '',
		workshop_title       TEXT NOT NULL DEFAULT '',
		milestone_title      TEXT,
		milestone_due_date   TEXT,
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_problem ON projects(problem_id)`,

	`CREATE TABLE IF NOT EXISTS stakeholders (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		id         TEXT NOT NULL,
		seq        INTEGER NOT NULL,
		name       TEXT NOT NULL,
		role       TEXT NOT NULL DEFAULT '',
		company    TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (project_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE COLLATE NOCASE,
		name          TEXT NOT NULL DEFAULT '',
		password_hash BLOB NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS auth_sessions (
		id         TEXT PRIMARY KEY DEFAULT 'current' CHECK(id = 'current'),
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TEXT NOT NULL
	)`,
}
