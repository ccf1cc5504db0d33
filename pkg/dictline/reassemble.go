package dictline

import "strings"

// Reassemble rebuilds the output line for a classified entry. Only entry
// lines get the new transcription; every other kind is returned exactly as
// it was read. The word field (core plus auxiliary tag) and the metadata
// field are carried over byte for byte, which is what makes repeated runs
// over a maintained dictionary safe.
func Reassemble(e Entry, transcription string, format Format) string {
	if e.Kind != KindEntry {
		return e.Raw
	}
	if format == FormatExtended {
		return strings.Join([]string{e.Word, transcription, e.Metadata}, "\t")
	}
	return e.Word + "\t" + transcription
}
