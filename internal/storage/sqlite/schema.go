package sqlite

// schema is applied on every open; each statement is idempotent
const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	snapshot   BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS stats (
	stat_key   TEXT PRIMARY KEY,
	stat_value INTEGER NOT NULL DEFAULT 0
);
`
