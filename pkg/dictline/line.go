// Package dictline handles the line formats of Rime dictionary files:
// classifying raw lines, splitting words from auxiliary tags, and
// reassembling annotated lines without disturbing any field the engine did
// not mean to touch.
package dictline

import "strings"

// Format describes the record shape of a whole file, never of a single line.
type Format int

const (
	// FormatAuto means the format has not been detected yet.
	FormatAuto Format = iota
	// FormatPlain is the two-field layout: word<TAB>pinyin.
	FormatPlain
	// FormatExtended is the three-field user-database layout:
	// word<TAB>pinyin<TAB>metadata (e.g. a usage count).
	FormatExtended
)

func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatExtended:
		return "extended"
	default:
		return "auto"
	}
}

// UserDBHeader is the reserved first field marking a user-database export.
// The header line itself is passed through untouched.
const UserDBHeader = "#@userdb"

// Kind classifies a single raw line.
type Kind int

const (
	// KindEntry is an annotatable dictionary entry.
	KindEntry Kind = iota
	// KindHeader is the user-database header line.
	KindHeader
	// KindComment is a comment or blank line.
	KindComment
	// KindMalformed is a line whose field count does not match the file
	// format. Malformed lines pass through verbatim; they are never dropped.
	KindMalformed
)

// Entry is one classified input line. Word and Metadata are preserved
// verbatim; only Transcription is ever rewritten on output.
type Entry struct {
	Raw           string
	Kind          Kind
	Word          string
	Transcription string
	Metadata      string
}

// Classify splits raw on tabs and checks the field count against the file
// format. format must be FormatPlain or FormatExtended; callers detect it
// once per file with DetectFormat.
func Classify(raw string, format Format) Entry {
	fields := strings.Split(raw, "\t")

	if fields[0] == UserDBHeader {
		return Entry{Raw: raw, Kind: KindHeader}
	}
	if strings.TrimSpace(raw) == "" || strings.HasPrefix(raw, "#") {
		return Entry{Raw: raw, Kind: KindComment}
	}

	switch {
	case format == FormatPlain && len(fields) == 2:
		return Entry{Raw: raw, Kind: KindEntry, Word: fields[0], Transcription: fields[1]}
	case format == FormatExtended && len(fields) == 3:
		return Entry{Raw: raw, Kind: KindEntry, Word: fields[0], Transcription: fields[1], Metadata: fields[2]}
	default:
		return Entry{Raw: raw, Kind: KindMalformed}
	}
}

// DetectFormat scans the lines of a file once and decides its format.
// A user-database header anywhere before the first data line wins;
// otherwise the first non-comment, non-blank line's field count decides
// (three fields means extended). An empty file counts as plain.
func DetectFormat(lines []string) Format {
	for _, line := range lines {
		fields := strings.Split(line, "\t")
		if fields[0] == UserDBHeader {
			return FormatExtended
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(fields) == 3 {
			return FormatExtended
		}
		return FormatPlain
	}
	return FormatPlain
}
