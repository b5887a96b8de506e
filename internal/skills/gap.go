package skills

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/career-navigator/internal/parsing"
	"github.com/jonathan/career-navigator/internal/types"
)

const (
	readinessSkillWeight      = 80.0
	readinessExperienceWeight = 20.0
)

// Analyze compares profileSkills with required and builds a gap report.
//
// A profile skill satisfies a requirement when either name contains the
// other, ignoring case; a requirement's examples count as well. Missing
// skills are prioritized by importance, then demand, keeping input order
// among equals.
func Analyze(profileSkills []string, required []types.RequiredSkill, target types.Target) *types.GapReport {
	current := parsing.NormalizeSkills(profileSkills)
	held := lowerAll(current)

	report := &types.GapReport{
		Target:             target,
		CurrentSkills:      current,
		RequiredSkills:     append([]types.RequiredSkill{}, required...),
		MatchedSkills:      []types.RequiredSkill{},
		MissingSkills:      []types.RequiredSkill{},
		PrioritizedMissing: []types.RequiredSkill{},
	}

	for _, req := range required {
		if satisfies(held, req) {
			report.MatchedSkills = append(report.MatchedSkills, req)
		} else {
			report.MissingSkills = append(report.MissingSkills, req)
		}
	}

	report.CoveragePercentage = coverage(len(report.MatchedSkills), len(required))
	report.PrioritizedMissing = prioritize(report.MissingSkills)
	return report
}

// AnalyzeSkillGap resolves target against the catalog and analyzes the
// profile's skills. Role targets also get a readiness score that blends
// skill coverage with the profile's years of experience.
func AnalyzeSkillGap(p *types.Profile, target types.Target) (*types.GapReport, error) {
	if p == nil {
		return nil, &TargetError{Message: "profile is required"}
	}

	required, role, err := Requirements(target)
	if err != nil {
		return nil, err
	}

	report := Analyze(p.Skills, required, target)
	if role != nil {
		r := Readiness(len(report.MatchedSkills), len(required), p.ExperienceYears, role.Experience)
		report.Readiness = &r
	}

	if err := report.Validate(); err != nil {
		return nil, fmt.Errorf("gap report for %s failed validation: %w", target, err)
	}
	return report, nil
}

// Readiness scores how ready a candidate is for a role: up to 80 points for
// met requirements and up to 20 for experience relative to the role's
// expected years.
func Readiness(met, total int, years, requiredYears float64) int {
	score := 0.0
	if total > 0 {
		score += float64(met) / float64(total) * readinessSkillWeight
	}
	if requiredYears > 0 {
		score += math.Min(years/requiredYears*readinessExperienceWeight, readinessExperienceWeight)
	} else {
		score += readinessExperienceWeight
	}
	return clampPercent(math.Round(score))
}

// coverage treats an empty requirement set as fully covered.
func coverage(matched, total int) int {
	if total == 0 {
		return 100
	}
	return clampPercent(math.Round(float64(matched) * 100 / float64(total)))
}

func clampPercent(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return int(v)
}

func prioritize(missing []types.RequiredSkill) []types.RequiredSkill {
	out := append([]types.RequiredSkill{}, missing...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Importance.Rank(), out[j].Importance.Rank()
		if ri != rj {
			return ri > rj
		}
		return out[i].Demand > out[j].Demand
	})
	return out
}

// satisfies compares held skills with the requirement's names as given and
// as normalized, since held skills are already normalized.
func satisfies(held []string, req types.RequiredSkill) bool {
	names := requirementNames(req)
	for _, h := range held {
		for _, n := range names {
			if overlaps(h, n) {
				return true
			}
		}
	}
	return false
}

func requirementNames(req types.RequiredSkill) []string {
	raw := append([]string{req.Name}, req.Examples...)
	names := make([]string, 0, 2*len(raw))
	for _, n := range raw {
		lower := strings.ToLower(n)
		names = append(names, lower)
		if norm := strings.ToLower(parsing.NormalizeSkillName(n)); norm != lower {
			names = append(names, norm)
		}
	}
	return names
}

// overlaps is the bidirectional containment test on lower-cased names.
// Single-character names only match exactly so "R" does not hit every
// requirement with an r in it.
func overlaps(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if len(a) == 1 || len(b) == 1 {
		return a == b
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
