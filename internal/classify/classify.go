// Package classify assigns a career field to a profile.
package classify

import (
	"strings"

	"github.com/jonathan/career-navigator/internal/catalog"
	"github.com/jonathan/career-navigator/internal/types"
)

// Weights for Recommend
const (
	degreeMatchWeight = 40.0
	degreeBaseWeight  = 10.0
	skillWeight       = 35.0
	interestWeight    = 25.0
)

// FieldScore is one field's weighted score.
type FieldScore struct {
	Field types.Field `json:"field"`
	Score float64     `json:"score"`
}

// WeightedInput is the self-reported data Recommend scores.
type WeightedInput struct {
	Degree    string   `json:"degree"`
	Skills    []string `json:"skills"`
	Interests []string `json:"interests"`
}

// Classify counts field indicators present in the profile and returns the
// field with the most. Ties go to the field declared first; a profile with
// no indicators at all is computerScience.
func Classify(p *types.Profile) types.Field {
	return classify(catalog.MustLoad(), p)
}

func classify(cat *catalog.Catalog, p *types.Profile) types.Field {
	skills := make(map[string]bool, len(p.Skills))
	for _, s := range p.Skills {
		skills[strings.ToLower(s)] = true
	}
	text := profileText(p)

	best, bestScore := types.DefaultField, 0
	for _, field := range types.AllFields() {
		fp, ok := cat.Field(field)
		if !ok {
			continue
		}
		score := 0
		for _, ind := range fp.Indicators {
			ind = strings.ToLower(ind)
			if skills[ind] || ContainsWord(text, ind) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = field, score
		}
	}
	return best
}

// profileText lowercases and joins everything an indicator may appear in.
func profileText(p *types.Profile) string {
	var b strings.Builder
	write := func(parts ...string) {
		for _, s := range parts {
			if s != "" {
				b.WriteString(s)
				b.WriteByte('\n')
			}
		}
	}

	write(p.Skills...)
	for _, pos := range p.Experience {
		write(pos.Role, pos.Company, pos.Description)
	}
	for _, pos := range p.Internships {
		write(pos.Role, pos.Company, pos.Description)
	}
	for _, edu := range p.Education {
		write(edu.Degree, edu.Field, edu.Institution)
	}
	for _, proj := range p.Projects {
		write(proj.Name)
	}
	return strings.ToLower(b.String())
}

// ContainsWord reports whether word occurs in text on alphanumeric
// boundaries. Both arguments are expected in lower case.
func ContainsWord(text, word string) bool {
	if word == "" {
		return false
	}
	for start := 0; start+len(word) <= len(text); {
		i := strings.Index(text[start:], word)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(word)
		if (i == 0 || !isWordByte(text[i-1])) && (end == len(text) || !isWordByte(text[end])) {
			return true
		}
		start = i + 1
	}
	return false
}

func isWordByte(c byte) bool {
	return ('a' <= c && c <= 'z') || ('0' <= c && c <= '9')
}

// Recommend scores every field from a degree name, a skill list and
// interests. A degree keyword match is worth 40 (otherwise 10). The share of
// skills overlapping the field's career-path skills adds up to 35, where
// overlap means either name contains the other as whole words. The share of
// interests naming the field adds up to 25. Scores are returned in field
// declaration order; the first maximum wins, and input with no signal for
// any field falls back to computerScience.
func Recommend(in WeightedInput) (types.Field, []FieldScore) {
	return recommend(catalog.MustLoad(), in)
}

func recommend(cat *catalog.Catalog, in WeightedInput) (types.Field, []FieldScore) {
	degree := strings.ToLower(in.Degree)
	skills := lowerAll(in.Skills)
	interests := lowerAll(in.Interests)

	scores := make([]FieldScore, 0, len(types.AllFields()))
	best, bestScore := types.DefaultField, -1.0

	for _, field := range types.AllFields() {
		fp, ok := cat.Field(field)
		if !ok {
			continue
		}

		score := degreeBaseWeight
		if anyWord(degree, fp.DegreeKeywords) {
			score = degreeMatchWeight
		}

		if len(skills) > 0 {
			fieldSkills := lowerAll(fp.CareerPath.Skills)
			matched := 0
			for _, s := range skills {
				for _, fs := range fieldSkills {
					if ContainsWord(fs, s) || ContainsWord(s, fs) {
						matched++
						break
					}
				}
			}
			score += float64(matched) / float64(len(skills)) * skillWeight
		}

		if len(interests) > 0 {
			matched := 0
			for _, interest := range interests {
				if anyWord(interest, fp.InterestKeywords) {
					matched++
				}
			}
			score += float64(matched) / float64(len(interests)) * interestWeight
		}

		scores = append(scores, FieldScore{Field: field, Score: score})
		if score > bestScore {
			best, bestScore = field, score
		}
	}
	if bestScore <= degreeBaseWeight {
		best = types.DefaultField
	}
	return best, scores
}

func anyWord(text string, keywords []string) bool {
	for _, kw := range keywords {
		if ContainsWord(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CareerPath returns the role ladder and certifications for a field.
func CareerPath(field types.Field) (*types.CareerPath, bool) {
	return catalog.MustLoad().CareerPath(field)
}
