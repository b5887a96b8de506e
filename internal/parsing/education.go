package parsing

import (
	"strconv"
	"strings"

	"github.com/jonathan/career-navigator/internal/sections"
	"github.com/jonathan/career-navigator/internal/types"
)

const institutionLookahead = 2

// extractEducation builds one entry per degree line. A degree match closes
// the entry in progress. The institution comes from the degree line or the
// two after it; the latest year and any grades on later lines update the
// open entry.
func (p *Parser) extractEducation(text string) []types.Education {
	body, ok := p.seg.Extract(text, sections.Education)
	if !ok {
		if !p.opts.EducationFallback {
			p.miss("education")
			return nil
		}
		body = text
	}

	lines := nonEmptyLines(body)
	var (
		entries []types.Education
		current *types.Education
	)

	for i, line := range lines {
		if edu, ok := matchDegree(line); ok {
			if current != nil && !current.IsEmpty() {
				entries = append(entries, *current)
			}
			current = &edu
			current.Institution = findInstitution(lines, i)
		}
		if current == nil {
			continue
		}

		// Four-digit years compare correctly as strings
		if year := maxYear(line); year > current.Year {
			current.Year = year
		}
		if cgpa := extractCGPA(line); cgpa != "" {
			current.CGPA = cgpa
		}
		if pct := extractPercentage(line); pct != "" {
			current.Percentage = pct
		}
	}

	if current != nil && !current.IsEmpty() {
		entries = append(entries, *current)
	}
	if len(entries) == 0 {
		p.miss("education")
	}
	return entries
}

// matchDegree tries the degree table in priority order.
func matchDegree(line string) (types.Education, bool) {
	for _, dp := range degreePatterns {
		m := dp.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		field := dp.defaultField
		if len(m) > 1 {
			if f := cleanDegreeField(m[1]); f != "" {
				field = f
			}
		}
		return types.Education{Degree: dp.label, Field: field}, true
	}
	return types.Education{}, false
}

func cleanDegreeField(s string) string {
	s = degreeFieldCutRe.ReplaceAllString(s, "")
	return strings.Trim(s, " \t.:-")
}

// findInstitution checks line i and then the next two lines, stopping at
// the next degree line. The comma-separated segment holding the keyword is
// returned rather than the whole line.
func findInstitution(lines []string, i int) string {
	for j := i; j < len(lines) && j <= i+institutionLookahead; j++ {
		if j > i {
			if _, isDegree := matchDegree(lines[j]); isDegree {
				break
			}
		}
		if seg := institutionSegment(lines[j]); seg != "" {
			return seg
		}
	}
	return ""
}

func institutionSegment(line string) string {
	if !institutionKeywordRe.MatchString(line) {
		return ""
	}
	for _, seg := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == '|' }) {
		if institutionKeywordRe.MatchString(seg) {
			return strings.TrimSpace(seg)
		}
	}
	return strings.TrimSpace(line)
}

// maxYear returns the latest year in [1900, 2039] on the line, so a range
// like "2020-2024" yields the graduation year.
func maxYear(line string) string {
	best := 0
	for _, y := range yearRe.FindAllString(line, -1) {
		if n, err := strconv.Atoi(y); err == nil && n > best {
			best = n
		}
	}
	if best == 0 {
		return ""
	}
	return strconv.Itoa(best)
}

// extractCGPA returns the grade on a 10-point scale. Scores given out of 4
// are rescaled by 2.5.
func extractCGPA(line string) string {
	for _, re := range cgpaPatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		score := m[1]
		if len(m) > 2 && m[2] != "" {
			outOf, err1 := strconv.ParseFloat(m[2], 64)
			value, err2 := strconv.ParseFloat(score, 64)
			if err1 == nil && err2 == nil && outOf == 4 {
				return strconv.FormatFloat(value*2.5, 'f', 2, 64)
			}
		}
		return score
	}
	return ""
}

// extractPercentage accepts only values within [0, 100].
func extractPercentage(line string) string {
	for _, re := range percentagePatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || v < 0 || v > 100 {
			continue
		}
		return m[1] + "%"
	}
	return ""
}
