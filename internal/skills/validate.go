package skills

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/jonathan/career-navigator/internal/catalog"
	"github.com/jonathan/career-navigator/internal/parsing"
	"github.com/jonathan/career-navigator/internal/types"
)

const (
	maxSuggestions      = 3
	similarityThreshold = 0.3
)

// NormalizeSkillName returns the canonical spelling of a skill name.
func NormalizeSkillName(name string) string {
	return parsing.NormalizeSkillName(name)
}

// ValidateSkills normalizes user-entered skill names and checks them
// against the catalog. Unknown names get up to three close spellings.
func ValidateSkills(names []string) []types.SkillValidation {
	return validateSkills(catalog.MustLoad(), names)
}

func validateSkills(cat *catalog.Catalog, names []string) []types.SkillValidation {
	out := make([]types.SkillValidation, 0, len(names))
	for _, name := range names {
		normalized := parsing.NormalizeSkillName(name)
		v := types.SkillValidation{
			Original:    name,
			Normalized:  normalized,
			Category:    cat.Category(normalized),
			Valid:       isKnownSkill(cat, normalized),
			Suggestions: []string{},
		}
		if !v.Valid && normalized != "" {
			v.Suggestions = similarSkills(cat, normalized)
		}
		out = append(out, v)
	}
	return out
}

// isKnownSkill reports whether skill equals, contains or is contained by a
// catalog skill.
func isKnownSkill(cat *catalog.Catalog, skill string) bool {
	s := strings.ToLower(skill)
	for _, known := range cat.AllSkills() {
		if overlaps(s, strings.ToLower(known)) {
			return true
		}
	}
	return false
}

type scoredSkill struct {
	name  string
	score float64
}

func similarSkills(cat *catalog.Catalog, skill string) []string {
	s := strings.ToLower(skill)

	var scored []scoredSkill
	for _, known := range cat.AllSkills() {
		if sim := similarity(s, strings.ToLower(known)); sim > similarityThreshold {
			scored = append(scored, scoredSkill{name: known, score: sim})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := []string{}
	for i := 0; i < len(scored) && i < maxSuggestions; i++ {
		out = append(out, scored[i].name)
	}
	return out
}

// similarity is 1 minus the edit distance over the longer length.
func similarity(a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	return float64(longest-levenshtein.ComputeDistance(a, b)) / float64(longest)
}
