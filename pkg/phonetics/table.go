package phonetics

// Table maps single characters to candidate pinyin syllables and whole
// phrases to a fixed syllable sequence. A Table is built once (from the
// built-in data or from user override files) and must not be mutated after
// that; all lookup methods are then safe for concurrent readers.
type Table struct {
	chars   map[rune][]string
	phrases map[string][]string
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{
		chars:   make(map[rune][]string),
		phrases: make(map[string][]string),
	}
}

// SetChar records the candidate syllables for a single character.
// The first candidate is the preferred reading. Setting a character that is
// already present replaces its previous candidates (last write wins).
func (t *Table) SetChar(r rune, syllables ...string) {
	t.chars[r] = append([]string(nil), syllables...)
}

// SetPhrase records the syllable sequence for a multi-character phrase.
// Setting a phrase that is already present replaces it (last write wins).
func (t *Table) SetPhrase(word string, syllables []string) {
	t.phrases[word] = append([]string(nil), syllables...)
}

// LookupChar returns the candidate syllables for a character.
// The boolean reports whether the character is known.
func (t *Table) LookupChar(r rune) ([]string, bool) {
	s, ok := t.chars[r]
	return s, ok
}

// LookupPhrase returns the syllable sequence for an exact phrase match.
// There is no partial or substring matching.
func (t *Table) LookupPhrase(word string) ([]string, bool) {
	s, ok := t.phrases[word]
	return s, ok
}

// CharCount returns the number of character entries.
func (t *Table) CharCount() int { return len(t.chars) }

// PhraseCount returns the number of phrase entries.
func (t *Table) PhraseCount() int { return len(t.phrases) }
