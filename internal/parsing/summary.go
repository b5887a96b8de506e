package parsing

import (
	"strings"

	"github.com/jonathan/career-navigator/internal/sections"
)

const maxSummaryLines = 4

// extractSummary joins up to four lines of the summary section, stopping at
// the first blank line.
func (p *Parser) extractSummary(text string) string {
	body, ok := p.seg.Extract(text, sections.Summary)
	if !ok {
		p.miss("summary")
		return ""
	}

	var kept []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(kept) > 0 {
				break
			}
			continue
		}
		if p.seg.IsHeading(line) {
			break
		}
		kept = append(kept, line)
		if len(kept) == maxSummaryLines {
			break
		}
	}
	return strings.Join(kept, " ")
}
