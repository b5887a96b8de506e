package catalog

import (
	"net/url"
	"sort"
	"strings"

	"github.com/jonathan/career-navigator/internal/types"
)

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Vocabulary returns the canonical skill names used for extraction.
func (c *Catalog) Vocabulary() []string {
	return c.Skills.Vocabulary
}

// CanonicalSkill returns the vocabulary spelling of name, if any.
func (c *Catalog) CanonicalSkill(name string) (string, bool) {
	s, ok := c.vocabLower[lower(name)]
	return s, ok
}

// Alias resolves a known abbreviation or variant spelling.
func (c *Catalog) Alias(name string) (string, bool) {
	s, ok := c.Skills.Aliases[lower(name)]
	return s, ok
}

// AllSkills returns the deduplicated taxonomy skills in catalog order.
func (c *Catalog) AllSkills() []string {
	return c.flattened
}

// Category returns the taxonomy path of the first group holding skill,
// or "other".
func (c *Catalog) Category(skill string) string {
	for _, g := range c.Skills.Database {
		for _, s := range g.Skills {
			if s == skill {
				return g.Path
			}
		}
	}
	return "other"
}

// Metadata returns difficulty and learning time for skill.
func (c *Catalog) Metadata(skill string) types.SkillMetadata {
	if m, ok := c.Skills.Metadata[skill]; ok {
		return m
	}
	return c.Skills.DefaultMetadata
}

// Demand returns the 0-10 demand score for skill.
func (c *Catalog) Demand(skill string) int {
	if d, ok := c.Skills.Demand[skill]; ok {
		return d
	}
	return c.Skills.DefaultDemand
}

// Resources returns curated resources for skill, or generic search links.
func (c *Catalog) Resources(skill string) []types.LearningResource {
	if r, ok := c.Skills.Resources[skill]; ok {
		return r
	}
	q := url.QueryEscape(skill + " tutorial")
	return []types.LearningResource{
		{Type: "search", Name: "Google Search", URL: "https://google.com/search?q=" + q},
		{Type: "video", Name: "YouTube Tutorials", URL: "https://youtube.com/results?search_query=" + q},
		{Type: "course", Name: "Online Courses", URL: "https://coursera.org/courses?query=" + url.QueryEscape(skill)},
	}
}

// Field returns the profile of a career field.
func (c *Catalog) Field(f types.Field) (FieldProfile, bool) {
	p, ok := c.Fields[f]
	return p, ok
}

// CareerPath returns the roles and certifications for a field.
func (c *Catalog) CareerPath(f types.Field) (*types.CareerPath, bool) {
	p, ok := c.Fields[f]
	if !ok {
		return nil, false
	}
	cp := p.CareerPath
	return &types.CareerPath{
		Field:          f,
		Entry:          cp.Entry,
		Mid:            cp.Mid,
		Senior:         cp.Senior,
		Skills:         cp.Skills,
		Certifications: cp.Certifications,
	}, true
}

// FieldRequirements builds the gap-analysis requirement set of a field from
// its career-path skills. Skills without an explicit priority are low.
func (c *Catalog) FieldRequirements(f types.Field) []types.RequiredSkill {
	p, ok := c.Fields[f]
	if !ok {
		return nil
	}
	reqs := make([]types.RequiredSkill, 0, len(p.CareerPath.Skills))
	for _, name := range p.CareerPath.Skills {
		reqs = append(reqs, types.RequiredSkill{
			Name:       name,
			Importance: types.ParseImportance(p.GapPriorities[lower(name)]),
			Demand:     c.Demand(name),
		})
	}
	return reqs
}

// Role looks up a role case-insensitively.
func (c *Catalog) Role(name string) (Role, bool) {
	key := lower(name)
	for _, r := range c.Roles {
		if lower(r.Name) == key {
			return r, true
		}
	}
	return Role{}, false
}

// RoleNames lists the known roles.
func (c *Catalog) RoleNames() []string {
	names := make([]string, len(c.Roles))
	for i, r := range c.Roles {
		names[i] = r.Name
	}
	return names
}

// RoleRequirements converts a role's skill list to requirement records.
func (c *Catalog) RoleRequirements(r Role) []types.RequiredSkill {
	reqs := make([]types.RequiredSkill, 0, len(r.Skills))
	for _, s := range r.Skills {
		reqs = append(reqs, types.RequiredSkill{
			Name:       s.Name,
			Importance: types.ParseImportance(s.Importance),
			Demand:     c.Demand(s.Name),
			Examples:   s.Examples,
		})
	}
	return reqs
}

// TrendingSkills returns an industry's trending skills sorted by growth,
// falling back to the default industry. A non-positive limit returns all.
func (c *Catalog) TrendingSkills(industry string, limit int) []types.TrendingSkill {
	list, ok := c.Trending.Industries[lower(industry)]
	if !ok {
		list = c.Trending.Industries[c.Trending.DefaultIndustry]
	}

	out := make([]types.TrendingSkill, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Growth > out[j].Growth
	})

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// Industries lists the industries with trending data.
func (c *Catalog) Industries() []string {
	names := make([]string, 0, len(c.Trending.Industries))
	for name := range c.Trending.Industries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
