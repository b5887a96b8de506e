package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_NormalizeLineEndings(t *testing.T) {
	result := Normalize("Line 1\r\nLine 2\rLine 3\nLine 4")

	assert.NotContains(t, result, "\r")
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestNormalize_CollapsesHorizontalWhitespace(t *testing.T) {
	result := Normalize("Line    with \t\t multiple    spaces")

	assert.Equal(t, "Line with multiple spaces", result)
}

func TestNormalize_RemoveExcessiveBlankLines(t *testing.T) {
	result := Normalize("Line 1\n\n\n\n\nLine 2")

	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestNormalize_WhitespaceOnlyLinesCountAsBlank(t *testing.T) {
	result := Normalize("Line 1\n   \n \t \n\nLine 2")

	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestNormalize_StripsNonPrintable(t *testing.T) {
	result := Normalize("Résumé\x00 • Python Go")

	assert.Equal(t, "R sum Python Go", result)
}

func TestNormalize_TrimsLinesAndDocument(t *testing.T) {
	result := Normalize("\n\n   John Doe   \n  john@example.com  \n\n")

	assert.Equal(t, "John Doe\njohn@example.com", result)
}

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   \n\t\n  "))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"John Doe\r\n\r\n\r\n\r\nEDUCATION\t\tB.Tech",
		"  • bullet  \n\n\n\n– dash –\n• more\n",
		"a\n \n \n \nb",
		"\x01\x02weird\x7fbytes\xff\xfe",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestIsUsable(t *testing.T) {
	assert.False(t, IsUsable("too short"))
	assert.True(t, IsUsable("John Doe\njohn.doe@example.com\n555-123-4567\nEDUCATION\nB.Tech"))
}
