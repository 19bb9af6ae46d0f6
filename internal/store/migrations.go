package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id         TEXT PRIMARY KEY NOT NULL,
	title      TEXT NOT NULL,
	notes      TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL DEFAULT 'active',
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS subtasks (
	id           TEXT PRIMARY KEY NOT NULL,
	task_id      TEXT NOT NULL,
	title        TEXT NOT NULL,
	status       TEXT NOT NULL DEFAULT 'todo',
	ord          INTEGER NOT NULL,
	estimate_min INTEGER NOT NULL DEFAULT 10,
	completed_at INTEGER,
	is_today     INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY(task_id) REFERENCES tasks(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_subtasks_task_id ON subtasks(task_id);
CREATE INDEX IF NOT EXISTS idx_subtasks_is_today ON subtasks(is_today);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		// Steps carry emoji and explanation as their own columns; title
		// holds the action sentence only. Version 1 rows packed all three
		// into title as "emoji\naction\nexplanation" and are split here once.
		version: 2,
		sql: `
ALTER TABLE subtasks ADD COLUMN emoji TEXT NOT NULL DEFAULT '';
ALTER TABLE subtasks ADD COLUMN explanation TEXT NOT NULL DEFAULT '';

UPDATE subtasks SET
	emoji = trim(substr(title, 1, instr(title, char(10)) - 1), ' ' || char(9, 13, 10)),
	explanation = CASE
		WHEN instr(substr(title, instr(title, char(10)) + 1), char(10)) > 0
		THEN trim(substr(
			substr(title, instr(title, char(10)) + 1),
			instr(substr(title, instr(title, char(10)) + 1), char(10)) + 1
		), ' ' || char(9, 13, 10))
		ELSE ''
	END,
	title = CASE
		WHEN instr(substr(title, instr(title, char(10)) + 1), char(10)) > 0
		THEN trim(substr(
			substr(title, instr(title, char(10)) + 1),
			1,
			instr(substr(title, instr(title, char(10)) + 1), char(10)) - 1
		), ' ' || char(9, 13, 10))
		ELSE trim(substr(title, instr(title, char(10)) + 1), ' ' || char(9, 13, 10))
	END
WHERE instr(title, char(10)) > 0;

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
