// Package sections locates named résumé sections in normalized text.
package sections

import (
	"errors"
	"regexp"
	"strings"
)

// Name identifies a résumé section.
type Name string

const (
	Education   Name = "education"
	Experience  Name = "experience"
	Skills      Name = "skills"
	Projects    Name = "projects"
	Internships Name = "internships"
	Summary     Name = "summary"
)

// Strictness controls where a heading may appear.
type Strictness int

const (
	// LineStart requires the heading to begin a line.
	LineStart Strictness = iota
	// Anywhere accepts the heading as a whole word anywhere in the text.
	Anywhere
)

// ParseStrictness maps "line" / "anywhere" config values onto Strictness.
func ParseStrictness(s string) (Strictness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "line", "line-start", "linestart":
		return LineStart, nil
	case "anywhere", "inline":
		return Anywhere, nil
	}
	return LineStart, errors.New("unknown heading strictness: " + s)
}

// ErrSectionNotFound is returned by Require when a section is absent.
var ErrSectionNotFound = errors.New("section not found")

// headingAliases lists the heading spellings for each section, longest first
// so that "work experience" wins over "experience".
var headingAliases = map[Name][]string{
	Education:   {"educational qualifications", "academic background", "education", "academics", "qualifications"},
	Experience:  {"professional experience", "work experience", "employment history", "work history", "experience", "employment"},
	Skills:      {"technical skills", "core competencies", "key skills", "skills"},
	Projects:    {"academic projects", "personal projects", "key projects", "projects"},
	Internships: {"internships", "internship"},
	Summary:     {"professional summary", "career objective", "summary", "objective", "about me", "profile", "overview", "about"},
}

// headingTail accepts a heading followed by end of line or a separator, so
// "Experience with Go" inside a body is not taken for a heading.
const headingTail = `[ \t]*(?:[:\-–|]|$)`

// boundaryOnly headings end a section but are never extracted.
var boundaryOnly = []string{"certifications", "certification", "references", "achievements", "awards"}

// Names returns every extractable section name.
func Names() []Name {
	return []Name{Education, Experience, Skills, Projects, Internships, Summary}
}

// Segmenter extracts sections under a fixed heading strictness.
type Segmenter struct {
	strictness Strictness
	starts     map[Name]*regexp.Regexp
	boundary   *regexp.Regexp
	heading    *regexp.Regexp
}

// New compiles the heading patterns for the given strictness.
func New(strictness Strictness) *Segmenter {
	s := &Segmenter{
		strictness: strictness,
		starts:     make(map[Name]*regexp.Regexp, len(headingAliases)),
	}

	all := append([]string{}, boundaryOnly...)
	for _, name := range Names() {
		aliases := headingAliases[name]
		all = append(all, aliases...)

		group := aliasGroup(aliases)
		if strictness == Anywhere {
			s.starts[name] = regexp.MustCompile(`(?i)\b` + group + `\b`)
		} else {
			s.starts[name] = regexp.MustCompile(`(?im)^[ \t]*` + group + headingTail)
		}
	}

	group := aliasGroup(all)
	s.boundary = regexp.MustCompile(`(?im)^[ \t]*` + group + headingTail)
	s.heading = regexp.MustCompile(`(?i)^[ \t]*` + group + `\b[\s:\-|&/a-z]{0,30}$`)
	return s
}

// Strictness returns the configured heading strictness.
func (s *Segmenter) Strictness() Strictness {
	return s.strictness
}

// Extract returns the body of the first occurrence of the named section:
// the remainder of the heading line followed by every line up to the next
// line that starts with a recognized heading. The bool is false when the
// section is absent.
func (s *Segmenter) Extract(text string, name Name) (string, bool) {
	start, ok := s.starts[name]
	if !ok {
		return "", false
	}

	loc := start.FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	// Rest of the heading line, minus separators such as ":" or "-".
	rest := text[loc[1]:]
	lineEnd := strings.IndexByte(rest, '\n')
	var inline, body string
	if lineEnd < 0 {
		inline, body = rest, ""
	} else {
		inline, body = rest[:lineEnd], rest[lineEnd+1:]
	}
	inline = strings.TrimLeft(inline, " \t:-–|")

	if next := s.boundary.FindStringIndex(body); next != nil {
		body = body[:next[0]]
	}

	body = strings.TrimRight(body, " \t\n")
	if inline != "" {
		if body == "" {
			return inline, true
		}
		return inline + "\n" + body, true
	}
	return body, true
}

// Require is Extract with an error for callers that prefer one.
func (s *Segmenter) Require(text string, name Name) (string, error) {
	body, ok := s.Extract(text, name)
	if !ok {
		return "", ErrSectionNotFound
	}
	return body, nil
}

// IsHeading reports whether a line looks like a standalone section heading.
func (s *Segmenter) IsHeading(line string) bool {
	return s.heading.MatchString(strings.TrimSpace(line))
}

// IsHeadingFor reports whether a line is a standalone heading for the named section.
func (s *Segmenter) IsHeadingFor(line string, name Name) bool {
	line = strings.TrimSpace(line)
	if !s.IsHeading(line) {
		return false
	}
	for _, alias := range headingAliases[name] {
		if strings.HasPrefix(strings.ToLower(line), alias) {
			return true
		}
	}
	return false
}

var defaultSegmenter = New(LineStart)

// Extract runs the line-anchored segmenter.
func Extract(text string, name Name) (string, bool) {
	return defaultSegmenter.Extract(text, name)
}

func aliasGroup(aliases []string) string {
	quoted := make([]string, len(aliases))
	for i, a := range aliases {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(a), " ", `[ \t]+`)
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}
