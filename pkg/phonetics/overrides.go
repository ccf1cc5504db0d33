package phonetics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// LoadReport summarizes what happened while loading user pinyin overrides.
// Rejected lines and skipped files are surfaced as counts, not as fatal
// errors; a bad override source never stops a run.
type LoadReport struct {
	FilesLoaded   int
	CharEntries   int
	PhraseEntries int
	LinesRejected int
	SkippedFiles  []string
}

// LoadOverrideDir builds an override Table from every regular file in dir.
// Files are loaded in sorted filename order; when the same key appears more
// than once (within a file or across files) the entry loaded last wins.
// A file that cannot be read is skipped and recorded in the report.
// A missing directory yields an empty table, since overrides are optional.
func LoadOverrideDir(dir string) (*Table, *LoadReport, error) {
	table := NewTable()
	report := &LoadReport{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return table, report, nil
		}
		return nil, nil, fmt.Errorf("read override dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			report.SkippedFiles = append(report.SkippedFiles, path)
			continue
		}
		if err := parseOverrides(f, table, report); err != nil {
			report.SkippedFiles = append(report.SkippedFiles, path)
		} else {
			report.FilesLoaded++
		}
		f.Close()
	}

	return table, report, nil
}

// ParseOverrides reads override entries from r into a fresh Table.
//
// The format is one entry per line: a key followed by its syllables,
// separated by tabs or spaces. A single-character key takes exactly one
// syllable; a multi-character key is a phrase and takes one syllable per
// character. Lines starting with '#' and blank lines are ignored.
func ParseOverrides(r io.Reader) (*Table, *LoadReport, error) {
	table := NewTable()
	report := &LoadReport{}
	if err := parseOverrides(r, table, report); err != nil {
		return nil, nil, err
	}
	return table, report, nil
}

func parseOverrides(r io.Reader, table *Table, report *LoadReport) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			report.LinesRejected++
			continue
		}

		key := fields[0]
		syllables := fields[1:]
		runeCount := utf8.RuneCountInString(key)

		// A syllable sequence must line up with the key one-to-one,
		// otherwise the entry cannot produce a valid transcription.
		if runeCount == 0 || len(syllables) != runeCount {
			report.LinesRejected++
			continue
		}

		if runeCount == 1 {
			r, _ := utf8.DecodeRuneInString(key)
			table.SetChar(r, syllables[0])
			report.CharEntries++
		} else {
			table.SetPhrase(key, syllables)
			report.PhraseEntries++
		}
	}
	return sc.Err()
}
