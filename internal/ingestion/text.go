// Package ingestion turns uploaded résumé bytes into normalized text.
package ingestion

import (
	"regexp"
	"strings"
)

// MinUsableLength is the shortest normalized text worth parsing.
const MinUsableLength = 50

var (
	nonPrintableRe    = regexp.MustCompile(`[^\x20-\x7E\n]`)
	horizontalSpaceRe = regexp.MustCompile(` {2,}`)
	blankRunRe        = regexp.MustCompile(`\n{3,}`)
)

// Normalize cleans raw extracted text while keeping its line structure.
// It never fails; empty input yields "". Normalize(Normalize(x)) == Normalize(x).
func Normalize(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF and lone CR → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// 2. Replace tabs, control characters and non-ASCII glyphs left by PDF extraction
	content = nonPrintableRe.ReplaceAllString(content, " ")

	// 3. Process each line
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	// 4. Join lines and collapse runs of blank lines to one
	result := blankRunRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")

	return strings.TrimSpace(result)
}

// cleanLine collapses horizontal whitespace and trims both ends.
func cleanLine(line string) string {
	line = horizontalSpaceRe.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

// IsUsable reports whether normalized text is long enough to parse.
func IsUsable(normalized string) bool {
	return len(normalized) >= MinUsableLength
}
