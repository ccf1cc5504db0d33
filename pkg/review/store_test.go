package review

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	return db
}

func TestInitDBCreatesSchema(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"runs", "flagged_lines"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	// InitDB must be idempotent.
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}
}

func TestRunLifecycle(t *testing.T) {
	db := openTestDB(t)

	runID, err := CreateRun(db)
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	if err := InsertFlag(db, runID, "a.txt", 3, "malformed", "a\tb\tc\td"); err != nil {
		t.Fatalf("InsertFlag failed: %v", err)
	}
	if err := InsertFlag(db, runID, "a.txt", 1, "unresolved", "谜\t?"); err != nil {
		t.Fatalf("InsertFlag failed: %v", err)
	}

	if err := FinishRun(db, runID, 10, 1, 1); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	flags, err := ListFlags(db, runID)
	if err != nil {
		t.Fatalf("ListFlags failed: %v", err)
	}
	if len(flags) != 2 {
		t.Fatalf("expected 2 flags, got %d", len(flags))
	}
	// Ordered by file then line number.
	if flags[0].LineNo != 1 || flags[1].LineNo != 3 {
		t.Fatalf("unexpected order: %+v", flags)
	}
	if flags[0].Reason != "unresolved" || flags[0].Content != "谜\t?" {
		t.Fatalf("unexpected flag: %+v", flags[0])
	}

	n, err := CountFlags(db, runID)
	if err != nil || n != 2 {
		t.Fatalf("CountFlags = %d, %v", n, err)
	}

	var processed, malformed, unresolved int
	var finished sql.NullString
	err = db.QueryRow(`SELECT lines_processed, lines_malformed, chars_unresolved, finished_at FROM runs WHERE id=?`, runID).
		Scan(&processed, &malformed, &unresolved, &finished)
	if err != nil {
		t.Fatalf("read run row: %v", err)
	}
	if processed != 10 || malformed != 1 || unresolved != 1 || !finished.Valid {
		t.Fatalf("run row = %d/%d/%d finished=%v", processed, malformed, unresolved, finished.Valid)
	}
}

func TestInsertFlagInsideTransaction(t *testing.T) {
	db := openTestDB(t)
	runID, err := CreateRun(db)
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := InsertFlag(tx, runID, "b.txt", 7, "malformed", "x"); err != nil {
		t.Fatalf("InsertFlag in tx failed: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	n, err := CountFlags(db, runID)
	if err != nil || n != 1 {
		t.Fatalf("CountFlags = %d, %v", n, err)
	}
}
