package phonetics

import "testing"

func TestNewDatabaseLoads(t *testing.T) {
	db, err := NewDatabase()
	if err != nil {
		t.Fatalf("NewDatabase failed: %v", err)
	}
	if db.PhraseCount() == 0 {
		t.Fatal("built-in phrase table is empty")
	}
}

func TestDatabaseCharLookup(t *testing.T) {
	db, err := NewDatabase()
	if err != nil {
		t.Fatalf("NewDatabase failed: %v", err)
	}

	syl, ok := db.LookupChar('中')
	if !ok || len(syl) == 0 {
		t.Fatalf("LookupChar('中') = %v, %v", syl, ok)
	}
	if syl[0] != "zhōng" {
		t.Errorf("preferred reading of '中' = %q, want zhōng", syl[0])
	}

	// Heteronyms carry more than one candidate.
	if syl, ok := db.LookupChar('行'); !ok || len(syl) < 2 {
		t.Errorf("expected multiple candidates for '行', got %v", syl)
	}

	// Non-ideographs are unknown, not empty-resolved.
	if _, ok := db.LookupChar('A'); ok {
		t.Error("expected 'A' to be unknown")
	}
}

func TestDatabasePhraseLookup(t *testing.T) {
	db, err := NewDatabase()
	if err != nil {
		t.Fatalf("NewDatabase failed: %v", err)
	}

	phrase, ok := db.LookupPhrase("重庆")
	if !ok {
		t.Fatal("expected built-in phrase for 重庆")
	}
	if len(phrase) != 2 || phrase[0] != "chóng" || phrase[1] != "qìng" {
		t.Fatalf("重庆 = %v, want [chóng qìng]", phrase)
	}

	if _, ok := db.LookupPhrase("没有这个词条"); ok {
		t.Fatal("unexpected phrase match")
	}
}
