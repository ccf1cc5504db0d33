// Package review persists a manifest of flagged lines (malformed entries,
// unresolved characters) per run in sqlite, so maintainers review a short
// list instead of scrolling a log.
package review

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Statements are separated by ';' and must not contain embedded semicolons.
const migrationsSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	finished_at TIMESTAMP,
	lines_processed INTEGER NOT NULL DEFAULT 0,
	lines_malformed INTEGER NOT NULL DEFAULT 0,
	chars_unresolved INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS flagged_lines (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id),
	file TEXT NOT NULL,
	line_no INTEGER NOT NULL,
	reason TEXT NOT NULL,
	content TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_flagged_lines_run ON flagged_lines(run_id)
`

// InitDB applies the embedded schema to the given connection.
func InitDB(db *sql.DB) error {
	for _, stmt := range strings.Split(migrationsSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
