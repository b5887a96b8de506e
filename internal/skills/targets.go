// Package skills compares a profile's skills with the requirements of a
// career field or job role and turns the result into learning plans.
package skills

import (
	"strings"

	"github.com/jonathan/career-navigator/internal/catalog"
	"github.com/jonathan/career-navigator/internal/parsing"
	"github.com/jonathan/career-navigator/internal/types"
)

// Requirements resolves a target into its requirement set. Field targets use
// the field's career-path skills; role targets use the role table. The role
// is returned for role targets so callers can compute readiness.
func Requirements(target types.Target) ([]types.RequiredSkill, *catalog.Role, error) {
	return requirements(catalog.MustLoad(), target)
}

func requirements(cat *catalog.Catalog, target types.Target) ([]types.RequiredSkill, *catalog.Role, error) {
	if err := target.Validate(); err != nil {
		return nil, nil, &TargetError{Message: "invalid target", Cause: err}
	}

	if target.Role != "" {
		role, ok := cat.Role(target.Role)
		if !ok {
			return nil, nil, &UnknownRoleError{Role: target.Role, Known: cat.RoleNames()}
		}
		return mergeRequirements(cat.RoleRequirements(role)), &role, nil
	}
	return mergeRequirements(cat.FieldRequirements(target.Field)), nil, nil
}

// mergeRequirements normalizes requirement names and collapses duplicates,
// keeping the highest importance and demand seen. First-seen order is kept.
func mergeRequirements(reqs []types.RequiredSkill) []types.RequiredSkill {
	index := make(map[string]int, len(reqs))
	out := make([]types.RequiredSkill, 0, len(reqs))

	for _, req := range reqs {
		name := parsing.NormalizeSkillName(req.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)

		if i, exists := index[key]; exists {
			existing := &out[i]
			// Take the higher importance
			if req.Importance.Rank() > existing.Importance.Rank() {
				existing.Importance = req.Importance
			}
			if req.Demand > existing.Demand {
				existing.Demand = req.Demand
			}
			existing.Examples = appendUnique(existing.Examples, req.Examples...)
			continue
		}

		req.Name = name
		req.Examples = append([]string(nil), req.Examples...)
		index[key] = len(out)
		out = append(out, req)
	}
	return out
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		dup := false
		for _, d := range dst {
			if strings.EqualFold(d, v) {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}
