// Package annotate resolves tone-marked transcriptions for sequences of
// Chinese characters using a layered lookup: user overrides over the
// built-in phonetic database, phrase matches over per-character matches.
package annotate

// Dict is the lookup contract shared by the built-in phonetic database and
// the user override store. Implementations must be safe for concurrent
// readers; the annotator never writes.
type Dict interface {
	// LookupChar returns candidate syllables for one character, preferred
	// reading first. ok=false signals an unknown character.
	LookupChar(r rune) ([]string, bool)
	// LookupPhrase returns the syllable sequence for an exact-length phrase
	// match, with no partial matching.
	LookupPhrase(word string) ([]string, bool)
}

// Unresolved is the placeholder syllable emitted for a character that no
// source can resolve.
const Unresolved = "?"

// Annotator resolves transcriptions. Overrides may be nil; Database must
// not be.
type Annotator struct {
	Overrides Dict
	Database  Dict
}

// Annotate returns one syllable per input character and the number of
// characters left unresolved.
//
// Resolution order:
//  1. whole-sequence match in the override phrase table,
//  2. whole-sequence match in the database phrase table,
//  3. per character, left to right: override, then database (first
//     candidate), then the Unresolved placeholder.
//
// A whole-phrase match is taken before any per-character lookup, so a
// phrase entry beats a character override for characters inside it. Phrase
// scope always wins over character scope, never the reverse.
func (a *Annotator) Annotate(chars []rune) ([]string, int) {
	if len(chars) == 0 {
		return nil, 0
	}

	if len(chars) > 1 {
		word := string(chars)
		if a.Overrides != nil {
			if syllables, ok := a.Overrides.LookupPhrase(word); ok {
				return append([]string(nil), syllables...), 0
			}
		}
		if syllables, ok := a.Database.LookupPhrase(word); ok {
			return append([]string(nil), syllables...), 0
		}
	}

	result := make([]string, len(chars))
	unresolved := 0
	for i, r := range chars {
		syllable, ok := a.resolveChar(r)
		if !ok {
			syllable = Unresolved
			unresolved++
		}
		result[i] = syllable
	}
	return result, unresolved
}

func (a *Annotator) resolveChar(r rune) (string, bool) {
	if a.Overrides != nil {
		if candidates, ok := a.Overrides.LookupChar(r); ok && len(candidates) > 0 {
			return candidates[0], true
		}
	}
	if candidates, ok := a.Database.LookupChar(r); ok && len(candidates) > 0 {
		// The engine does not disambiguate heteronyms by context; the
		// first candidate is the database's preferred reading.
		return candidates[0], true
	}
	return "", false
}
