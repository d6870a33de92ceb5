// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS ledger (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	row_id TEXT NOT NULL UNIQUE,
	ts TEXT NOT NULL DEFAULT '',
	pair TEXT NOT NULL DEFAULT '',
	side TEXT NOT NULL DEFAULT '',
	setup TEXT NOT NULL DEFAULT '',
	size_usdt TEXT NOT NULL DEFAULT '',
	entry TEXT NOT NULL DEFAULT '',
	stop TEXT NOT NULL DEFAULT '',
	target TEXT NOT NULL DEFAULT '',
	result_usdt TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT ''
);
`
