package parsing

import (
	"strings"

	"github.com/jonathan/career-navigator/internal/sections"
	"github.com/jonathan/career-navigator/internal/types"
)

const (
	maxProjects        = 5
	minProjectTitleLen = 5
	maxProjectTitleLen = 100
	minProjectPhrase   = 10
	maxProjectPhrase   = 80
)

// extractProjects reads titles from the projects section, falling back to
// verb-anchored phrases anywhere in the document.
func (p *Parser) extractProjects(text string) []types.Project {
	projects, via, ok := firstMatch([]strategy[[]types.Project]{
		{name: "section", run: func() ([]types.Project, bool) { return p.projectsFromSection(text) }},
		{name: "phrases", run: func() ([]types.Project, bool) { return projectsFromPhrases(text) }},
	})
	if !ok {
		p.miss("projects")
		return nil
	}
	p.log.Debug("projects resolved", "strategy", via, "count", len(projects))
	return projects
}

func (p *Parser) projectsFromSection(text string) ([]types.Project, bool) {
	body, ok := p.seg.Extract(text, sections.Projects)
	if !ok {
		return nil, false
	}

	var projects []types.Project
	for _, line := range nonEmptyLines(body) {
		title, ok := projectTitle(line)
		if !ok {
			continue
		}
		projects = append(projects, types.Project{Name: title, ProjectNumber: len(projects) + 1})
		if len(projects) == maxProjects {
			break
		}
	}
	return projects, len(projects) > 0
}

// projectTitle accepts title-like lines. A bare "1." marker is rejected; a
// "1. Title" prefix is stripped and the title kept.
func projectTitle(line string) (string, bool) {
	if bulletPrefixRe.MatchString(line) || numberedMarkerRe.MatchString(line) {
		return "", false
	}
	line = strings.TrimSpace(numberedPrefixRe.ReplaceAllString(line, ""))
	if len(line) < minProjectTitleLen || len(line) > maxProjectTitleLen {
		return "", false
	}
	if projectNoiseRe.MatchString(line) {
		return "", false
	}
	return line, true
}

func projectsFromPhrases(text string) ([]types.Project, bool) {
	var projects []types.Project
	for _, re := range projectFallbackPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if len(name) < minProjectPhrase || len(name) > maxProjectPhrase {
				continue
			}
			if containsProject(projects, name) {
				continue
			}
			projects = append(projects, types.Project{Name: name, ProjectNumber: len(projects) + 1})
			if len(projects) == maxProjects {
				return projects, true
			}
		}
	}
	return projects, len(projects) > 0
}

func containsProject(projects []types.Project, name string) bool {
	for _, p := range projects {
		if containsFold(p.Name, name) {
			return true
		}
	}
	return false
}
