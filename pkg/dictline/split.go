package dictline

import (
	"fmt"
	"regexp"
	"unicode"
)

// DefaultAuxSeparator matches the characters that start an auxiliary tag in
// a word field: an input-method hint like "程序;sc" or "程序[sc".
const DefaultAuxSeparator = `[;\[]`

// Splitter separates a word field into its core characters and a trailing
// auxiliary tag. The tag starts at the first separator match and is kept
// verbatim, separator included.
type Splitter struct {
	re *regexp.Regexp
}

// NewSplitter compiles a separator pattern. An empty pattern selects
// DefaultAuxSeparator.
func NewSplitter(pattern string) (*Splitter, error) {
	if pattern == "" {
		pattern = DefaultAuxSeparator
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile aux separator %q: %w", pattern, err)
	}
	return &Splitter{re: re}, nil
}

// Split returns the core characters and the auxiliary tag of a word.
// With no separator match the whole word is core and the tag is empty.
func (s *Splitter) Split(word string) (core, aux string) {
	loc := s.re.FindStringIndex(word)
	if loc == nil {
		return word, ""
	}
	return word[:loc[0]], word[loc[0]:]
}

// HasHan reports whether s contains at least one Han ideograph. Words
// without any are passed through and never annotated.
func HasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
