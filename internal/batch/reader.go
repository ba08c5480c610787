package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// targetSeparator splits a line into lookup input and target language.
const targetSeparator = "=>"

// Entry is one lookup read from a batch file
type Entry struct {
	Line           int    // 1-based line number in the file
	Input          string // raw lookup input, word or marked sentence
	TargetLanguage string // optional per-line target language
}

// ReadBatchFile reads lookups from a file, one per line.
// Supported formats:
//   - plain word: "ubiquitous"
//   - marked sentence: "I sat by the /bank/ of the river"
//   - with target language: "ubiquitous => Spanish"
//
// Blank lines and lines starting with '#' are skipped.
func ReadBatchFile(filename string) ([]Entry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		entry, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		entry.Line = lineNo
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return entries, nil
}

func parseLine(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Entry{}, false
	}

	input, lang, found := strings.Cut(line, targetSeparator)
	if !found {
		return Entry{Input: line}, true
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return Entry{}, false
	}
	return Entry{Input: input, TargetLanguage: strings.TrimSpace(lang)}, true
}
