package parsing

import (
	"strings"

	"github.com/jonathan/career-navigator/internal/catalog"
)

// maxAcronymLen is the longest all-caps token kept verbatim (AWS, MySQL aside).
const maxAcronymLen = 5

// NormalizeSkillName normalizes a skill name to its canonical form using the
// embedded catalog.
func NormalizeSkillName(skillName string) string {
	return normalizeSkill(catalog.MustLoad(), skillName)
}

func normalizeSkill(cat *catalog.Catalog, skillName string) string {
	normalized := strings.TrimSpace(skillName)
	if normalized == "" {
		return ""
	}

	// Known variants first, then the vocabulary's own spelling
	if canonical, ok := cat.Alias(normalized); ok {
		return canonical
	}
	if canonical, ok := cat.CanonicalSkill(normalized); ok {
		return canonical
	}

	upper := strings.ToUpper(normalized)
	lower := strings.ToLower(normalized)
	singleWord := !strings.Contains(normalized, " ")

	if normalized == upper && len(normalized) > 1 {
		// Short all-caps tokens are acronyms
		if len(normalized) <= maxAcronymLen || !singleWord {
			return normalized
		}
		return normalized[:1] + strings.ToLower(normalized[1:])
	}

	// Mixed case is assumed deliberate
	if normalized != lower {
		return normalized
	}

	if singleWord {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}
	return normalized
}

// NormalizeSkills normalizes each name and drops case-insensitive duplicates,
// keeping the first occurrence.
func NormalizeSkills(names []string) []string {
	cat := catalog.MustLoad()
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		n := normalizeSkill(cat, name)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
