package skills

import (
	"sort"
	"strings"

	"github.com/jonathan/career-navigator/internal/catalog"
	"github.com/jonathan/career-navigator/internal/classify"
	"github.com/jonathan/career-navigator/internal/parsing"
	"github.com/jonathan/career-navigator/internal/types"
)

const (
	maxCritical      = 3
	maxHigh          = 5
	maxMedium        = 5
	maxComplementary = 5
	learningPathSize = 8
)

// fieldMappingOrder is the order degree and interest keywords are tried in.
// computerScience is last because its keywords are the most generic.
var fieldMappingOrder = []types.Field{
	types.FieldAI,
	types.FieldDataScience,
	types.FieldCyberSecurity,
	types.FieldWebDevelopment,
	types.FieldMobileDevelopment,
	types.FieldComputerScience,
}

// phase describes one step of the learning path.
type phase struct {
	title       string
	description string
	difficulty  string
	limit       int
}

var learningPhases = []phase{
	{"Foundation Phase (0-3 months)", "Build fundamental skills and understanding", "beginner", 3},
	{"Development Phase (3-8 months)", "Develop practical skills and build projects", "intermediate", 4},
	{"Advanced Phase (8+ months)", "Master advanced concepts and specialize", "advanced", 3},
}

// Recommend works out which field the degree and interests point to and
// what the candidate should learn next for it.
func Recommend(degree string, currentSkills, interests []string) *types.SkillRecommendations {
	return recommend(catalog.MustLoad(), degree, currentSkills, interests)
}

func recommend(cat *catalog.Catalog, degree string, currentSkills, interests []string) *types.SkillRecommendations {
	field := determineField(cat, degree, interests)
	fp, _ := cat.Field(field)

	current := parsing.NormalizeSkills(currentSkills)
	held := lowerAll(current)

	var missing []string
	for _, s := range fp.FieldSkills {
		if !holds(held, s) {
			missing = append(missing, s)
		}
	}
	prioritized := prioritizeSkills(cat, fp, missing)

	recs := &types.SkillRecommendations{
		Field:         field,
		CurrentSkills: current,
		Critical:      filterPriority(prioritized, maxCritical, types.ImportanceCritical),
		High:          filterPriority(prioritized, maxHigh, types.ImportanceHigh),
		Medium:        filterPriority(prioritized, maxMedium, types.ImportanceMedium),
		Complementary: complementary(fp, current, held),
	}

	top := prioritized
	if len(top) > learningPathSize {
		top = top[:learningPathSize]
	}
	recs.LearningPath = learningPath(fp, top)
	return recs
}

// DetermineField maps a degree, then interests, onto a field by keyword.
// Degree keywords win over interests; with no match the default field is
// returned.
func DetermineField(degree string, interests []string) types.Field {
	return determineField(catalog.MustLoad(), degree, interests)
}

func determineField(cat *catalog.Catalog, degree string, interests []string) types.Field {
	degree = strings.ToLower(degree)
	for _, f := range fieldMappingOrder {
		fp, _ := cat.Field(f)
		if matchesAny(degree, fp.MappingKeywords) {
			return f
		}
	}

	for _, f := range fieldMappingOrder {
		fp, _ := cat.Field(f)
		for _, interest := range interests {
			if matchesAny(strings.ToLower(interest), fp.MappingKeywords) {
				return f
			}
		}
	}
	return types.DefaultField
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if classify.ContainsWord(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func prioritizeSkills(cat *catalog.Catalog, fp catalog.FieldProfile, names []string) []types.PrioritizedSkill {
	out := make([]types.PrioritizedSkill, 0, len(names))
	for _, name := range names {
		out = append(out, types.PrioritizedSkill{
			Skill:       name,
			Priority:    types.ParseImportance(fp.SkillPriorities[name]),
			DemandScore: cat.Demand(name),
			Metadata:    cat.Metadata(name),
			Resources:   cat.Resources(name),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Priority.Rank(), out[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return out[i].DemandScore > out[j].DemandScore
	})
	return out
}

func filterPriority(skills []types.PrioritizedSkill, limit int, priority types.Importance) []types.PrioritizedSkill {
	out := []types.PrioritizedSkill{}
	for _, s := range skills {
		if len(out) == limit {
			break
		}
		if s.Priority == priority {
			out = append(out, s)
		}
	}
	return out
}

// complementary collects the companions of skills the candidate already
// has, minus anything they hold.
func complementary(fp catalog.FieldProfile, current, held []string) []string {
	out := []string{}
	for _, skill := range current {
		for _, c := range fp.Complementary[skill] {
			if len(out) == maxComplementary {
				return out
			}
			if holds(held, c) || containsFold(out, c) {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

func learningPath(fp catalog.FieldProfile, skills []types.PrioritizedSkill) types.LearningPath {
	path := types.LearningPath{
		Phases:     make([]types.LearningPhase, 0, len(learningPhases)),
		Milestones: append([]string{}, fp.Milestones...),
		Projects:   append([]string{}, fp.Projects...),
	}
	for _, ph := range learningPhases {
		selected := []types.PrioritizedSkill{}
		for _, s := range skills {
			if len(selected) == ph.limit {
				break
			}
			if s.Metadata.Difficulty == ph.difficulty {
				selected = append(selected, s)
			}
		}
		path.Phases = append(path.Phases, types.LearningPhase{
			Title:       ph.title,
			Description: ph.description,
			Skills:      selected,
		})
	}
	return path
}

func holds(held []string, skill string) bool {
	s := strings.ToLower(skill)
	for _, h := range held {
		if overlaps(h, s) {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
