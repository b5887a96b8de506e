package skills

import (
	"github.com/jonathan/career-navigator/internal/catalog"
	"github.com/jonathan/career-navigator/internal/types"
)

const (
	immediateLimit = 2
	shortTermLimit = 3
	longTermLimit  = 2
)

// BuildRoadmap turns a gap report into a time-boxed plan. Critical gaps are
// immediate, high gaps short term and the rest long term, each taken in
// requirement order. Additional lists the field's extra skills the profile
// does not hold yet. An empty field is resolved from the report's target.
func BuildRoadmap(report *types.GapReport, field types.Field) *types.Roadmap {
	return buildRoadmap(catalog.MustLoad(), report, field)
}

func buildRoadmap(cat *catalog.Catalog, report *types.GapReport, field types.Field) *types.Roadmap {
	rm := &types.Roadmap{
		Target:     report.Target,
		Immediate:  []string{},
		ShortTerm:  []string{},
		LongTerm:   []string{},
		Additional: []string{},
	}

	for _, s := range report.MissingSkills {
		switch s.Importance {
		case types.ImportanceCritical:
			if len(rm.Immediate) < immediateLimit {
				rm.Immediate = append(rm.Immediate, s.Name)
			}
		case types.ImportanceHigh:
			if len(rm.ShortTerm) < shortTermLimit {
				rm.ShortTerm = append(rm.ShortTerm, s.Name)
			}
		default:
			if len(rm.LongTerm) < longTermLimit {
				rm.LongTerm = append(rm.LongTerm, s.Name)
			}
		}
	}

	if field == "" {
		field = targetField(cat, report.Target)
	}
	fp, ok := cat.Field(field)
	if !ok {
		return rm
	}
	held := lowerAll(report.CurrentSkills)
	for _, extra := range fp.AdditionalSkills {
		if !holds(held, extra) {
			rm.Additional = append(rm.Additional, extra)
		}
	}
	return rm
}

func targetField(cat *catalog.Catalog, target types.Target) types.Field {
	if target.Field != "" {
		return target.Field
	}
	if role, ok := cat.Role(target.Role); ok {
		return role.Field
	}
	return types.DefaultField
}
