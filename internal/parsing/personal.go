package parsing

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/career-navigator/internal/types"
)

const (
	nameHeaderLines   = 5
	emailContextChars = 200
	addressHeaderMax  = 8
)

var (
	trailingDigitsRe  = regexp.MustCompile(`\d+$`)
	emailLocalSplitRe = regexp.MustCompile(`[._\-]+`)
)

// extractPersonal pulls contact details from the whole document.
func (p *Parser) extractPersonal(text string) types.PersonalInfo {
	var info types.PersonalInfo

	info.Email = emailRe.FindString(text)
	info.Phone = strings.TrimSpace(phoneRe.FindString(text))
	info.Name = p.extractName(text, info.Email)

	if m := linkedinRe.FindStringSubmatch(text); m != nil {
		info.LinkedIn = "linkedin.com/in/" + m[1]
	}
	if m := githubRe.FindStringSubmatch(text); m != nil {
		info.GitHub = "github.com/" + m[1]
	}
	info.Address = p.extractAddress(text)

	if info.Email == "" {
		p.miss("email")
	}
	if info.Phone == "" {
		p.miss("phone")
	}
	return info
}

// extractName resolves the candidate's name through an ordered fallback chain.
func (p *Parser) extractName(text, email string) string {
	lines := nonEmptyLines(text)

	name, via, ok := firstMatch([]strategy[string]{
		{name: "header", run: func() (string, bool) { return p.nameFromHeader(lines) }},
		{name: "pattern", run: func() (string, bool) { return p.nameFromPatterns(text) }},
		{name: "near_email", run: func() (string, bool) { return p.nameNearEmail(text, email) }},
		{name: "email_local_part", run: func() (string, bool) { return nameFromEmail(email) }},
	})
	if !ok {
		p.miss("name")
		return ""
	}

	p.log.Debug("name resolved", "strategy", via)
	return name
}

func (p *Parser) nameFromHeader(lines []string) (string, bool) {
	for i := 0; i < len(lines) && i < nameHeaderLines; i++ {
		if p.isName(lines[i]) {
			return formatName(lines[i]), true
		}
	}
	return "", false
}

func (p *Parser) nameFromPatterns(text string) (string, bool) {
	for _, re := range namePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			candidate := formatName(strings.TrimSpace(m[1]))
			if p.isPlausibleName(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

func (p *Parser) nameNearEmail(text, email string) (string, bool) {
	if email == "" {
		return "", false
	}
	context, ok := window(text, email, emailContextChars)
	if !ok {
		return "", false
	}
	for _, line := range nonEmptyLines(context) {
		if !strings.Contains(line, "@") && p.isName(line) {
			return formatName(line), true
		}
	}
	return "", false
}

// nameFromEmail guesses "First Last" from an address like first.last42@x.com.
func nameFromEmail(email string) (string, bool) {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "", false
	}
	local := trailingDigitsRe.ReplaceAllString(email[:at], "")

	var parts []string
	for _, part := range emailLocalSplitRe.Split(local, -1) {
		if len(part) > 1 && !digitsOnlyRe.MatchString(part) {
			parts = append(parts, part)
		}
	}
	if len(parts) < 2 {
		return "", false
	}
	return formatName(parts[0] + " " + parts[1]), true
}

// isPlausibleName is isName plus a check against common heading words.
func (p *Parser) isPlausibleName(candidate string) bool {
	if len(candidate) < 3 || nonNames[strings.ToUpper(candidate)] {
		return false
	}
	return p.isName(candidate)
}

// isName is the strict proper-case predicate: 2-4 capitalized words made of
// letters, dots, apostrophes and hyphens, with no digits or section words.
func (p *Parser) isName(line string) bool {
	if len(line) < 3 || len(line) > 50 {
		return false
	}
	for _, re := range nameRejectPatterns {
		if re.MatchString(line) {
			return false
		}
	}
	if !nameCharsRe.MatchString(line) {
		return false
	}
	if jobTitleRe.MatchString(line) || internRe.MatchString(line) || locationRe.MatchString(line) {
		return false
	}
	if p.seg.IsHeading(line) {
		return false
	}

	var words []string
	for _, w := range strings.Fields(line) {
		if len(w) > 1 {
			words = append(words, w)
		}
	}
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		if !nameWordRe.MatchString(w) {
			return false
		}
	}
	return true
}

// formatName title-cases each word, capitalizing apostrophe segments
// separately so "o'brien" becomes "O'Brien".
func formatName(name string) string {
	// Casers carry state and must not be shared across goroutines.
	titleCaser := cases.Title(language.Und)

	words := strings.Fields(name)
	for i, w := range words {
		if strings.Contains(w, "'") {
			segments := strings.Split(w, "'")
			for j, s := range segments {
				segments[j] = titleCaser.String(s)
			}
			words[i] = strings.Join(segments, "'")
			continue
		}
		words[i] = titleCaser.String(w)
	}
	return strings.Join(words, " ")
}

// extractAddress looks for a location in the header block, before the first
// section heading, so comma-separated skill lists are never mistaken for one.
func (p *Parser) extractAddress(text string) string {
	var header []string
	for _, line := range nonEmptyLines(text) {
		if len(header) >= addressHeaderMax || p.seg.IsHeading(line) {
			break
		}
		if emailRe.MatchString(line) || strings.Contains(strings.ToLower(line), "http") {
			continue
		}
		header = append(header, line)
	}
	block := strings.Join(header, "\n")

	for _, re := range addressPatterns {
		if m := re.FindString(block); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}
