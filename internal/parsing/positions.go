package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/career-navigator/internal/sections"
	"github.com/jonathan/career-navigator/internal/types"
)

const (
	maxInternships     = 3
	positionLookahead  = 3
	maxRoleLineLen     = 100
	maxRoleWords       = 12
	maxCompanyLineLen  = 60
	maxCompanyWords    = 6
	internContextChars = 100
)

var roleSplitRe = regexp.MustCompile(`\s*\|\s*|\s+(?:at|@)\s+|\s+[-–]\s+|,\s+`)

// roleFilter decides which lines open a new position.
type roleFilter func(line string) bool

func isExperienceRole(line string) bool {
	return jobTitleRe.MatchString(line) && !internRe.MatchString(line)
}

func isInternshipRole(line string) bool {
	return internRe.MatchString(line) || jobTitleRe.MatchString(line)
}

// extractExperience parses the experience section. Intern and trainee roles
// are left to extractInternships.
func (p *Parser) extractExperience(text string) []types.Position {
	body, ok := p.seg.Extract(text, sections.Experience)
	if !ok {
		p.miss("experience")
		return nil
	}
	positions := p.parsePositions(body, isExperienceRole)
	if len(positions) == 0 {
		p.miss("experience")
	}
	return positions
}

// extractInternships prefers an internships section and otherwise scans the
// whole document for intern/trainee mentions.
func (p *Parser) extractInternships(text string) []types.Position {
	var positions []types.Position
	if body, ok := p.seg.Extract(text, sections.Internships); ok {
		positions = p.parsePositions(body, isInternshipRole)
	}
	if len(positions) == 0 {
		positions = p.scanInternships(text)
	}
	if len(positions) > maxInternships {
		positions = positions[:maxInternships]
	}
	if len(positions) == 0 {
		p.miss("internships")
	}
	return positions
}

// parsePositions walks a section body. A role line opens a position; the
// next lines, until the first bullet, fill duration, location and company
// once each; everything else up to the next role becomes the description.
func (p *Parser) parsePositions(body string, isRole roleFilter) []types.Position {
	lines := strings.Split(body, "\n")
	var (
		positions []types.Position
		current   *types.Position
		header    int
		desc      []string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Description = strings.Join(desc, " ")
		positions = append(positions, *current)
		current, desc = nil, nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		bulleted := bulletPrefixRe.MatchString(line)

		if !bulleted && looksLikeTitle(line) && isRole(line) {
			flush()
			current = newPosition(line)
			header = 0
			continue
		}
		if !bulleted && looksLikeTitle(line) && internRe.MatchString(line) {
			// An internship listed under experience ends the current role.
			flush()
			continue
		}
		if current == nil {
			continue
		}

		if !bulleted && header < positionLookahead && fillHeader(current, line) {
			header++
			continue
		}
		header = positionLookahead
		desc = append(desc, stripBullet(line))
	}
	flush()
	return positions
}

// newPosition builds a position from a role line, splitting inline forms
// such as "Backend Engineer | Acme Corp | Jan 2021 - Present".
func newPosition(line string) *types.Position {
	pos := &types.Position{Duration: findDuration(line)}
	rest := line
	if pos.Duration != "" {
		rest = strings.Replace(line, pos.Duration, " ", 1)
	}
	for _, part := range roleSplitRe.Split(strings.TrimSpace(rest), -1) {
		part = strings.Trim(part, " \t|,-–()")
		if part == "" {
			continue
		}
		if pos.Role == "" {
			pos.Role = part
			continue
		}
		fillHeader(pos, part)
	}
	if pos.Role == "" {
		pos.Role = line
	}
	return pos
}

// looksLikeTitle rejects sentences that merely mention a job title.
func looksLikeTitle(line string) bool {
	return len(line) <= maxRoleLineLen &&
		len(strings.Fields(line)) <= maxRoleWords &&
		!strings.HasSuffix(line, ".")
}

// fillHeader assigns line to the first empty header field it fits, in the
// order duration, location, company.
func fillHeader(pos *types.Position, line string) bool {
	switch {
	case line == "":
		return false
	case pos.Duration == "" && isDurationLine(line):
		pos.Duration = line
	case pos.Location == "" && locationRe.MatchString(line):
		pos.Location = line
	case pos.Company == "" && isCompanyLine(line):
		pos.Company = line
	default:
		return false
	}
	return true
}

func isDurationLine(line string) bool {
	for _, re := range durationPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func findDuration(s string) string {
	for _, re := range durationPatterns {
		if m := re.FindString(s); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// isCompanyLine accepts lines with a company indicator, or short plain
// lines that read like a name rather than a sentence.
func isCompanyLine(line string) bool {
	if companyIndicatorRe.MatchString(line) {
		return true
	}
	if len(line) > maxCompanyLineLen || strings.HasSuffix(line, ".") {
		return false
	}
	if len(strings.Fields(line)) > maxCompanyWords || !hasLetterRe.MatchString(line) {
		return false
	}
	return !isDurationLine(line) && !emailRe.MatchString(line)
}

// scanInternships finds intern/trainee phrases anywhere in the document and
// looks for a company and duration within 100 characters of each.
func (p *Parser) scanInternships(text string) []types.Position {
	var positions []types.Position
	for _, loc := range internFallbackRe.FindAllStringIndex(text, -1) {
		role := stripBullet(text[loc[0]:loc[1]])
		if role == "" || p.seg.IsHeading(role) {
			continue
		}
		if containsPosition(positions, role) {
			continue
		}
		context := around(text, loc[0], loc[1], internContextChars)
		positions = append(positions, types.Position{
			Role:     role,
			Company:  findCompanyNear(context, role),
			Duration: findDuration(context),
		})
		if len(positions) == maxInternships {
			break
		}
	}
	return positions
}

func containsPosition(positions []types.Position, role string) bool {
	for _, pos := range positions {
		if containsFold(pos.Role, role) {
			return true
		}
	}
	return false
}

// findCompanyNear returns the first context line with a company indicator,
// falling back to the "at X" part of the role itself. Anything after a comma
// or pipe is dropped.
func findCompanyNear(context, role string) string {
	for _, line := range nonEmptyLines(context) {
		if companyIndicatorRe.MatchString(line) {
			return companyName(stripBullet(line))
		}
	}
	if strings.Contains(strings.ToLower(role), " at ") {
		return companyName(role)
	}
	return ""
}

func companyName(s string) string {
	if i := strings.Index(strings.ToLower(s), " at "); i >= 0 {
		s = s[i+4:]
	}
	if i := strings.IndexAny(s, ",|"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func around(text string, start, end, radius int) string {
	from := start - radius
	if from < 0 {
		from = 0
	}
	to := end + radius
	if to > len(text) {
		to = len(text)
	}
	return text[from:to]
}
