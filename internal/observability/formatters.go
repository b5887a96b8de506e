// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-navigator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to limit items as bullets, followed by a count of the rest.
func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// PrintProfile outputs a human-readable summary of an extracted profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:       %s\n", orDash(profile.Personal.Name)))
	sb.WriteString(fmt.Sprintf("Email:      %s\n", orDash(profile.Personal.Email)))
	sb.WriteString(fmt.Sprintf("Phone:      %s\n", orDash(profile.Personal.Phone)))
	sb.WriteString(fmt.Sprintf("Field:      %s\n", profile.SuggestedField))
	sb.WriteString(fmt.Sprintf("Level:      %s (%.1f yrs)\n", profile.ExperienceLevel, profile.ExperienceYears))
	sb.WriteString(fmt.Sprintf("Confidence: %d", profile.Confidence))
	if profile.NeedsReview {
		sb.WriteString("  ⚠ needs review")
	}
	sb.WriteString("\n")

	if len(profile.Education) > 0 {
		sb.WriteString("\nEducation:\n")
		edu := make([]string, 0, len(profile.Education))
		for _, e := range profile.Education {
			line := e.Degree
			if e.Field != "" {
				line += " in " + e.Field
			}
			if e.Year != "" {
				line += fmt.Sprintf(" (%s)", e.Year)
			}
			edu = append(edu, line)
		}
		writeList(&sb, edu, 3)
	}

	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkills (%d):\n", len(profile.Skills)))
		writeList(&sb, profile.Skills, maxItemsToShow)
	}

	positions := make([]string, 0, len(profile.Experience)+len(profile.Internships))
	for _, pos := range profile.Experience {
		positions = append(positions, positionLine(pos))
	}
	for _, pos := range profile.Internships {
		positions = append(positions, positionLine(pos)+" [intern]")
	}
	if len(positions) > 0 {
		sb.WriteString("\nExperience:\n")
		writeList(&sb, positions, maxItemsToShow)
	}

	if len(profile.Projects) > 0 {
		sb.WriteString("\nProjects:\n")
		names := make([]string, 0, len(profile.Projects))
		for _, proj := range profile.Projects {
			names = append(names, proj.Name)
		}
		writeList(&sb, names, maxItemsToShow)
	}

	p.printBox("EXTRACTED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

func positionLine(pos types.Position) string {
	line := pos.Role
	if pos.Company != "" {
		line += " @ " + pos.Company
	}
	return line
}

// PrintGapReport outputs coverage and the prioritized missing skills.
func (p *Printer) PrintGapReport(report *types.GapReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target:    %s\n", report.Target))
	sb.WriteString(fmt.Sprintf("Coverage:  %d%% (%d/%d)\n",
		report.CoveragePercentage, len(report.MatchedSkills), len(report.RequiredSkills)))
	if report.Readiness != nil {
		sb.WriteString(fmt.Sprintf("Readiness: %d\n", *report.Readiness))
	}

	if len(report.MatchedSkills) > 0 {
		sb.WriteString("\nMatched:\n")
		names := make([]string, 0, len(report.MatchedSkills))
		for _, s := range report.MatchedSkills {
			names = append(names, s.Name)
		}
		writeList(&sb, names, maxItemsToShow)
	}

	if len(report.PrioritizedMissing) > 0 {
		sb.WriteString("\nMissing (by priority):\n")
		names := make([]string, 0, len(report.PrioritizedMissing))
		for _, s := range report.PrioritizedMissing {
			names = append(names, fmt.Sprintf("%s (%s)", s.Name, s.Importance))
		}
		writeList(&sb, names, maxItemsToShow)
	}

	p.printBox("SKILL GAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the prioritized skills and learning path.
func (p *Printer) PrintRecommendations(recs *types.SkillRecommendations) {
	if recs == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Field: %s\n", recs.Field))

	groups := []struct {
		title  string
		skills []types.PrioritizedSkill
	}{
		{"Critical", recs.Critical},
		{"High", recs.High},
		{"Medium", recs.Medium},
	}
	for _, g := range groups {
		if len(g.skills) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s:\n", g.title))
		names := make([]string, 0, len(g.skills))
		for _, s := range g.skills {
			names = append(names, fmt.Sprintf("%s (demand %d, %s)", s.Skill, s.DemandScore, s.Metadata.Difficulty))
		}
		writeList(&sb, names, maxItemsToShow)
	}

	if len(recs.Complementary) > 0 {
		sb.WriteString("\nComplementary:\n")
		writeList(&sb, recs.Complementary, maxItemsToShow)
	}

	for _, phase := range recs.LearningPath.Phases {
		if len(phase.Skills) == 0 {
			continue
		}
		names := make([]string, 0, len(phase.Skills))
		for _, s := range phase.Skills {
			names = append(names, s.Skill)
		}
		sb.WriteString(fmt.Sprintf("\n%s: %s\n", phase.Title, strings.Join(names, ", ")))
	}

	p.printBox("SKILL RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoadmap outputs the time-bucketed learning roadmap.
func (p *Printer) PrintRoadmap(roadmap *types.Roadmap) {
	if roadmap == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target: %s\n", roadmap.Target))
	buckets := []struct {
		title  string
		skills []string
	}{
		{"Immediate (1-3 months)", roadmap.Immediate},
		{"Short term (3-6 months)", roadmap.ShortTerm},
		{"Long term (6+ months)", roadmap.LongTerm},
		{"Additional", roadmap.Additional},
	}
	for _, b := range buckets {
		if len(b.skills) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s:\n", b.title))
		writeList(&sb, b.skills, maxItemsToShow)
	}

	p.printBox("LEARNING ROADMAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidations outputs one line per checked skill name.
func (p *Printer) PrintValidations(results []types.SkillValidation) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for _, r := range results {
		mark := "✗"
		if r.Valid {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %s → %s [%s]\n", mark, r.Original, orDash(r.Normalized), orDash(r.Category)))
		if len(r.Suggestions) > 0 {
			sb.WriteString(fmt.Sprintf("    did you mean: %s\n", strings.Join(r.Suggestions, ", ")))
		}
	}

	p.printBox("SKILL VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTrending outputs trending skills with growth and demand figures.
func (p *Printer) PrintTrending(industry string, trending []types.TrendingSkill) {
	if len(trending) == 0 {
		return
	}

	var sb strings.Builder
	for i, s := range trending {
		sb.WriteString(fmt.Sprintf("#%-2d %-24s +%d%%  demand %d\n", i+1, s.Skill, s.Growth, s.Demand))
	}

	title := "TRENDING SKILLS"
	if industry != "" {
		title += " (" + strings.ToUpper(industry) + ")"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}
