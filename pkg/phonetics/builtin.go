package phonetics

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/mozillazg/go-pinyin"
)

// Built-in phrase readings for words whose pronunciation cannot be derived
// character by character (heteronyms, neutral tones).
//
//go:embed data/phrases.txt
var builtinPhrases string

// Database is the built-in phonetic database: tone-marked character readings
// backed by the go-pinyin tables, plus an embedded phrase table for
// irregular multi-character readings. It is read-only and safe for
// concurrent use.
type Database struct {
	args    pinyin.Args
	phrases *Table
}

// NewDatabase loads the built-in phonetic database. An error here is fatal
// to the caller: without the built-in data no run can produce transcriptions.
func NewDatabase() (*Database, error) {
	args := pinyin.NewArgs()
	args.Style = pinyin.Tone
	args.Heteronym = true

	phrases := NewTable()
	report := &LoadReport{}
	if err := parseOverrides(strings.NewReader(builtinPhrases), phrases, report); err != nil {
		return nil, fmt.Errorf("load built-in phrase table: %w", err)
	}
	if report.LinesRejected > 0 {
		return nil, fmt.Errorf("built-in phrase table: %d malformed entries", report.LinesRejected)
	}

	return &Database{args: args, phrases: phrases}, nil
}

// LookupChar returns the candidate tone-marked syllables for a character,
// most common reading first. Unknown characters (including non-ideographs)
// report ok=false.
func (d *Database) LookupChar(r rune) ([]string, bool) {
	syllables := pinyin.SinglePinyin(r, d.args)
	if len(syllables) == 0 {
		return nil, false
	}
	return syllables, true
}

// LookupPhrase returns the built-in reading for an exact phrase match.
func (d *Database) LookupPhrase(word string) ([]string, bool) {
	return d.phrases.LookupPhrase(word)
}

// PhraseCount returns the number of built-in phrase entries.
func (d *Database) PhraseCount() int { return d.phrases.PhraseCount() }
