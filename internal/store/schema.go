package store

// Schema bootstrap statements, executed in order. Every statement is
// idempotent (IF NOT EXISTS / INSERT OR IGNORE), so re-running
// initialization against an existing database is always safe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at  TEXT NOT NULL DEFAULT (datetime('now'))
	)`,

	`CREATE TABLE IF NOT EXISTS commands (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL UNIQUE COLLATE NOCASE,
		stands_for  TEXT,
		summary     TEXT NOT NULL DEFAULT '',
		category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL,
		created_at  TEXT NOT NULL DEFAULT (datetime('now')),
		updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
	)`,

	`CREATE TABLE IF NOT EXISTS command_examples (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		command_id  INTEGER NOT NULL REFERENCES commands(id) ON DELETE CASCADE,
		example     TEXT NOT NULL,
		description TEXT,
		sort_order  INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS content_types (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL UNIQUE,
		description TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS command_contents (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		command_id      INTEGER NOT NULL REFERENCES commands(id) ON DELETE CASCADE,
		content_type_id INTEGER NOT NULL REFERENCES content_types(id),
		content         TEXT NOT NULL,
		format          TEXT NOT NULL DEFAULT 'markdown',
		created_at      TEXT NOT NULL DEFAULT (datetime('now')),
		updated_at      TEXT NOT NULL DEFAULT (datetime('now')),
		UNIQUE (command_id, content_type_id)
	)`,

	`CREATE TABLE IF NOT EXISTS api_cache (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		cache_key    TEXT NOT NULL UNIQUE,
		content      TEXT NOT NULL,
		content_type TEXT NOT NULL DEFAULT '',
		expires_at   TEXT NOT NULL,
		created_at   TEXT NOT NULL DEFAULT (datetime('now'))
	)`,

	`CREATE TABLE IF NOT EXISTS command_history (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		command_id INTEGER REFERENCES commands(id) ON DELETE SET NULL,
		raw_input  TEXT NOT NULL DEFAULT '',
		timestamp  TEXT NOT NULL DEFAULT (datetime('now'))
	)`,

	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_commands_name ON commands(name)`,
	`CREATE INDEX IF NOT EXISTS idx_commands_category ON commands(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_examples_command ON command_examples(command_id, sort_order)`,
	`CREATE INDEX IF NOT EXISTS idx_contents_command ON command_contents(command_id)`,
	`CREATE INDEX IF NOT EXISTS idx_history_command ON command_history(command_id)`,
	`CREATE INDEX IF NOT EXISTS idx_history_timestamp ON command_history(timestamp DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_cache_expires ON api_cache(expires_at)`,

	`INSERT OR IGNORE INTO content_types (name, description) VALUES
		('tldr', 'tldr-pages style summary'),
		('manpage', 'system manual page'),
		('chtsh', 'cheat.sh snippet'),
		('explainshell', 'explainshell.com breakdown')`,

	`INSERT OR IGNORE INTO categories (name, description)
		VALUES ('general', 'Uncategorized commands')`,

	`INSERT OR IGNORE INTO settings (key, value) VALUES ('schema_version', '1')`,
}

// rebuildFTSRow re-projects a single command into the search index. Used
// by every trigger that can change any indexed field. The index is never
// written by application code directly; only these triggers touch it.
const rebuildFTSRow = `
	INSERT INTO commands_fts(rowid, name, stands_for, summary, examples, content, category)
	SELECT c.id, c.name, coalesce(c.stands_for, ''), c.summary,
		coalesce((SELECT group_concat(example, char(10)) FROM command_examples
			WHERE command_id = c.id), ''),
		coalesce((SELECT group_concat(content, char(10)) FROM command_contents
			WHERE command_id = c.id), ''),
		coalesce((SELECT name FROM categories WHERE id = c.category_id), '')
	FROM commands c WHERE c.id = `

// FTS5 statements are executed after the relational schema. Failure to
// create the virtual table means the engine lacks FTS5; the store stays
// usable and search falls back to a LIKE scan over the relational rows.
var ftsStatements = []string{
	`CREATE VIRTUAL TABLE IF NOT EXISTS commands_fts USING fts5(
		name, stands_for, summary, examples, content, category
	)`,

	`CREATE TRIGGER IF NOT EXISTS commands_ai AFTER INSERT ON commands BEGIN
		` + rebuildFTSRow + `new.id;
	END`,

	`CREATE TRIGGER IF NOT EXISTS commands_au AFTER UPDATE ON commands BEGIN
		DELETE FROM commands_fts WHERE rowid = old.id;
		` + rebuildFTSRow + `new.id;
	END`,

	`CREATE TRIGGER IF NOT EXISTS commands_ad AFTER DELETE ON commands BEGIN
		DELETE FROM commands_fts WHERE rowid = old.id;
	END`,

	`CREATE TRIGGER IF NOT EXISTS command_examples_ai AFTER INSERT ON command_examples BEGIN
		DELETE FROM commands_fts WHERE rowid = new.command_id;
		` + rebuildFTSRow + `new.command_id;
	END`,

	`CREATE TRIGGER IF NOT EXISTS command_examples_au AFTER UPDATE ON command_examples BEGIN
		DELETE FROM commands_fts WHERE rowid = new.command_id;
		` + rebuildFTSRow + `new.command_id;
	END`,

	`CREATE TRIGGER IF NOT EXISTS command_examples_ad AFTER DELETE ON command_examples BEGIN
		DELETE FROM commands_fts WHERE rowid = old.command_id;
		` + rebuildFTSRow + `old.command_id;
	END`,

	`CREATE TRIGGER IF NOT EXISTS command_contents_ai AFTER INSERT ON command_contents BEGIN
		DELETE FROM commands_fts WHERE rowid = new.command_id;
		` + rebuildFTSRow + `new.command_id;
	END`,

	`CREATE TRIGGER IF NOT EXISTS command_contents_au AFTER UPDATE ON command_contents BEGIN
		DELETE FROM commands_fts WHERE rowid = new.command_id;
		` + rebuildFTSRow + `new.command_id;
	END`,

	`CREATE TRIGGER IF NOT EXISTS command_contents_ad AFTER DELETE ON command_contents BEGIN
		DELETE FROM commands_fts WHERE rowid = old.command_id;
		` + rebuildFTSRow + `old.command_id;
	END`,

	`CREATE TRIGGER IF NOT EXISTS categories_au AFTER UPDATE ON categories BEGIN
		DELETE FROM commands_fts WHERE rowid IN
			(SELECT id FROM commands WHERE category_id = new.id);
		INSERT INTO commands_fts(rowid, name, stands_for, summary, examples, content, category)
		SELECT c.id, c.name, coalesce(c.stands_for, ''), c.summary,
			coalesce((SELECT group_concat(example, char(10)) FROM command_examples
				WHERE command_id = c.id), ''),
			coalesce((SELECT group_concat(content, char(10)) FROM command_contents
				WHERE command_id = c.id), ''),
			new.name
		FROM commands c WHERE c.category_id = new.id;
	END`,

	// Deleting a category nulls the reference on dependent commands;
	// re-project them without a category name before the row goes away.
	`CREATE TRIGGER IF NOT EXISTS categories_bd BEFORE DELETE ON categories BEGIN
		DELETE FROM commands_fts WHERE rowid IN
			(SELECT id FROM commands WHERE category_id = old.id);
		INSERT INTO commands_fts(rowid, name, stands_for, summary, examples, content, category)
		SELECT c.id, c.name, coalesce(c.stands_for, ''), c.summary,
			coalesce((SELECT group_concat(example, char(10)) FROM command_examples
				WHERE command_id = c.id), ''),
			coalesce((SELECT group_concat(content, char(10)) FROM command_contents
				WHERE command_id = c.id), ''),
			''
		FROM commands c WHERE c.category_id = old.id;
	END`,
}
