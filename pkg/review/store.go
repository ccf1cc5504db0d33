package review

import (
	"database/sql"
	"fmt"
)

// DBExecutor lets store functions accept either *sql.DB or *sql.Tx.
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// CreateRun inserts a new run row and returns its id.
func CreateRun(db DBExecutor) (int64, error) {
	res, err := db.Exec(`INSERT INTO runs DEFAULT VALUES`)
	if err != nil {
		return 0, fmt.Errorf("create run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create run: %w", err)
	}
	return id, nil
}

// FinishRun stamps the run's end time and stores the aggregate counts.
func FinishRun(db DBExecutor, runID int64, linesProcessed, linesMalformed, charsUnresolved int) error {
	_, err := db.Exec(
		`UPDATE runs SET finished_at = CURRENT_TIMESTAMP, lines_processed = ?, lines_malformed = ?, chars_unresolved = ? WHERE id = ?`,
		linesProcessed, linesMalformed, charsUnresolved, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run %d: %w", runID, err)
	}
	return nil
}

// InsertFlag records one flagged line for a run.
func InsertFlag(db DBExecutor, runID int64, file string, lineNo int, reason, content string) error {
	_, err := db.Exec(
		`INSERT INTO flagged_lines (run_id, file, line_no, reason, content) VALUES (?, ?, ?, ?, ?)`,
		runID, file, lineNo, reason, content,
	)
	if err != nil {
		return fmt.Errorf("insert flag %s:%d: %w", file, lineNo, err)
	}
	return nil
}

// ListFlags returns a run's flagged lines ordered by file and line number.
func ListFlags(db DBExecutor, runID int64) ([]FlaggedLine, error) {
	rows, err := db.Query(
		`SELECT id, run_id, file, line_no, reason, content FROM flagged_lines WHERE run_id = ? ORDER BY file, line_no`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list flags for run %d: %w", runID, err)
	}
	defer rows.Close()

	var flags []FlaggedLine
	for rows.Next() {
		var f FlaggedLine
		if err := rows.Scan(&f.ID, &f.RunID, &f.File, &f.LineNo, &f.Reason, &f.Content); err != nil {
			return nil, err
		}
		flags = append(flags, f)
	}
	return flags, rows.Err()
}

// CountFlags returns how many lines a run flagged.
func CountFlags(db DBExecutor, runID int64) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM flagged_lines WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count flags for run %d: %w", runID, err)
	}
	return n, nil
}
