package dictline

import "testing"

func TestSplitDefaultSeparator(t *testing.T) {
	s, err := NewSplitter("")
	if err != nil {
		t.Fatalf("NewSplitter failed: %v", err)
	}

	cases := []struct {
		word, core, aux string
	}{
		{"程序;sc", "程序", ";sc"},
		{"程序[sc", "程序", "[sc"},
		{"程序", "程序", ""},
		{"词;a;b", "词", ";a;b"}, // first match starts the tag
		{";lead", "", ";lead"},
		{"", "", ""},
	}
	for _, tc := range cases {
		core, aux := s.Split(tc.word)
		if core != tc.core || aux != tc.aux {
			t.Errorf("Split(%q) = (%q, %q), want (%q, %q)", tc.word, core, aux, tc.core, tc.aux)
		}
	}
}

func TestSplitCustomSeparator(t *testing.T) {
	s, err := NewSplitter(`\|`)
	if err != nil {
		t.Fatalf("NewSplitter failed: %v", err)
	}
	core, aux := s.Split("词|x")
	if core != "词" || aux != "|x" {
		t.Fatalf("Split = (%q, %q)", core, aux)
	}
	// The default separators are no longer special.
	if core, aux := s.Split("词;x"); core != "词;x" || aux != "" {
		t.Fatalf("Split = (%q, %q)", core, aux)
	}
}

func TestNewSplitterBadPattern(t *testing.T) {
	if _, err := NewSplitter("["); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestHasHan(t *testing.T) {
	if !HasHan("程序") || !HasHan("A股") {
		t.Error("expected Han detection")
	}
	if HasHan("abc123") || HasHan("") || HasHan(";[") {
		t.Error("unexpected Han detection")
	}
}
